package lock_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"parking-core/internal/infra/lock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLocker_ZeroTimeoutTriesRedis(t *testing.T) {
	// nothing listens on port 1, so any attempt fails with a dial error
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	l := lock.NewRedisLocker(client, lock.RedisOptions{
		Prefix: "test:",
		TTL:    time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := l.Acquire(context.Background(), uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, lock.ErrTimeout, "a zero timeout must not expire before the first attempt")
}
