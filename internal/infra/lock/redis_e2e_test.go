//go:build e2e

package lock_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"parking-core/internal/infra/lock"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/testutil/dbtest"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redisFixture struct {
	addr   string
	prefix string
}

func newRedisFixture(t *testing.T) redisFixture {
	t.Helper()
	return redisFixture{
		addr:   dbtest.StartRedis(t),
		prefix: "test:" + uuid.NewString() + ":",
	}
}

func (f redisFixture) client(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{Addr: f.addr})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// locker returns a locker with its own client, standing in for one service instance.
func (f redisFixture) locker(t *testing.T, ttl, timeout time.Duration) *lock.RedisLocker {
	t.Helper()
	return lock.NewRedisLocker(f.client(t), lock.RedisOptions{
		Prefix:        f.prefix,
		TTL:           ttl,
		Timeout:       timeout,
		RetryInterval: 5 * time.Millisecond,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()

	t.Run("instances exclude each other", func(t *testing.T) {
		f := newRedisFixture(t)
		lockers := []*lock.RedisLocker{
			f.locker(t, 10*time.Second, 10*time.Second),
			f.locker(t, 10*time.Second, 10*time.Second),
		}
		key := uuid.New()

		var inside, maxInside, done int32
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(l *lock.RedisLocker) {
				defer wg.Done()
				release, err := l.Acquire(ctx, key)
				if !assert.NoError(t, err) {
					return
				}
				defer release()
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				atomic.AddInt32(&done, 1)
			}(lockers[i%2])
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxInside)
		assert.Equal(t, int32(16), done)
	})

	t.Run("held lease times out as busy", func(t *testing.T) {
		f := newRedisFixture(t)
		holder := f.locker(t, 10*time.Second, time.Second)
		waiter := f.locker(t, 10*time.Second, 50*time.Millisecond)
		key := uuid.New()

		release, err := holder.Acquire(ctx, key)
		require.NoError(t, err)

		_, err = waiter.Acquire(ctx, key)
		require.ErrorIs(t, err, lock.ErrTimeout)
		assert.Equal(t, errs.KindBusy, errs.KindOf(err))

		other, err := waiter.Acquire(ctx, uuid.New())
		require.NoError(t, err, "other spots are not blocked")
		other()

		release()
		again, err := waiter.Acquire(ctx, key)
		require.NoError(t, err)
		again()
	})

	t.Run("expired holder cannot release the next lease", func(t *testing.T) {
		f := newRedisFixture(t)
		stale := f.locker(t, 100*time.Millisecond, time.Second)
		next := f.locker(t, 10*time.Second, time.Second)
		key := uuid.New()

		releaseStale, err := stale.Acquire(ctx, key)
		require.NoError(t, err)

		// the waiter gets in only once the first lease has expired
		releaseNext, err := next.Acquire(ctx, key)
		require.NoError(t, err)
		defer releaseNext()

		releaseStale()

		exists, err := f.client(t).Exists(ctx, f.prefix+key.String()).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists, "the current lease must survive")

		_, err = f.locker(t, time.Second, 50*time.Millisecond).Acquire(ctx, key)
		assert.ErrorIs(t, err, lock.ErrTimeout)
	})

	t.Run("release runs once", func(t *testing.T) {
		f := newRedisFixture(t)
		l := f.locker(t, 10*time.Second, time.Second)
		key := uuid.New()

		first, err := l.Acquire(ctx, key)
		require.NoError(t, err)
		first()

		second, err := l.Acquire(ctx, key)
		require.NoError(t, err)
		defer second()

		first()

		_, err = f.locker(t, time.Second, 50*time.Millisecond).Acquire(ctx, key)
		assert.ErrorIs(t, err, lock.ErrTimeout, "a repeated release must not drop the current lease")
	})

	t.Run("zero timeout waits for the holder", func(t *testing.T) {
		f := newRedisFixture(t)
		holder := f.locker(t, 10*time.Second, time.Second)
		waiter := f.locker(t, 10*time.Second, 0)
		key := uuid.New()

		release, err := holder.Acquire(ctx, key)
		require.NoError(t, err)
		time.AfterFunc(100*time.Millisecond, release)

		got, err := waiter.Acquire(ctx, key)
		require.NoError(t, err)
		got()
	})

	t.Run("zero timeout still honours cancellation", func(t *testing.T) {
		f := newRedisFixture(t)
		holder := f.locker(t, 10*time.Second, time.Second)
		waiter := f.locker(t, 10*time.Second, 0)
		key := uuid.New()

		release, err := holder.Acquire(ctx, key)
		require.NoError(t, err)
		defer release()

		cctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()
		_, err = waiter.Acquire(cctx, key)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestChainWithRedis(t *testing.T) {
	f := newRedisFixture(t)
	chain := lock.Chain{
		lock.NewKeyedLocker(time.Second),
		f.locker(t, 10*time.Second, time.Second),
	}
	key := uuid.New()

	release, err := chain.Acquire(context.Background(), key)
	require.NoError(t, err)

	exists, err := f.client(t).Exists(context.Background(), f.prefix+key.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)

	release()
	exists, err = f.client(t).Exists(context.Background(), f.prefix+key.String()).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists, "releasing the chain drops the lease")
}
