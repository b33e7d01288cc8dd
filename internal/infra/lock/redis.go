package lock

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Deletes the key only while it still carries our token, so an expired
// lease that was taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisOptions struct {
	Prefix        string
	TTL           time.Duration
	Timeout       time.Duration
	RetryInterval time.Duration
}

// RedisLocker is a lease lock shared by every instance pointed at the same
// Redis. The lease expires after TTL so a crashed holder cannot pin a spot.
type RedisLocker struct {
	client redis.UniversalClient
	opts   RedisOptions
	logger *slog.Logger
}

var _ shared.SpotLocker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, opts RedisOptions, logger *slog.Logger) *RedisLocker {
	if opts.RetryInterval <= 0 {
		opts.RetryInterval = 25 * time.Millisecond
	}
	return &RedisLocker{client: client, opts: opts, logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, spotID uuid.UUID) (func(), error) {
	key := l.opts.Prefix + spotID.String()
	token := uuid.NewString()

	waitCtx, cancel := waitContext(ctx, l.opts.Timeout)
	defer cancel()

	for {
		ok, err := l.client.SetNX(waitCtx, key, token, l.opts.TTL).Result()
		if err == nil && ok {
			return l.releaser(key, token), nil
		}
		if err != nil && waitCtx.Err() == nil {
			return nil, errs.Wrap(err, "redis lock acquire")
		}

		timer := time.NewTimer(l.backoff())
		select {
		case <-waitCtx.Done():
			timer.Stop()
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, ErrTimeout
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) releaser(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled; release must still run.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
				l.logger.Warn("failed to release redis spot lock", "key", key, "error", err.Error())
			}
		})
	}
}

func (l *RedisLocker) backoff() time.Duration {
	base := l.opts.RetryInterval
	return base + time.Duration(rand.Int64N(int64(base)/2+1))
}
