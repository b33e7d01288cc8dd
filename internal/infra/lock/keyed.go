// Package lock provides the per-spot critical section used by the
// reservation coordinator.
package lock

import (
	"context"
	"sync"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrTimeout = errs.NewKind("spot lock acquisition timed out", errs.ErrBusy)

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyedLocker serializes callers per key inside one process. Entries are
// reference counted and dropped once nobody holds or waits on them.
type KeyedLocker struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	timeout time.Duration
}

var _ shared.SpotLocker = (*KeyedLocker)(nil)

func NewKeyedLocker(timeout time.Duration) *KeyedLocker {
	return &KeyedLocker{
		entries: make(map[uuid.UUID]*entry),
		timeout: timeout,
	}
}

func (l *KeyedLocker) Acquire(ctx context.Context, key uuid.UUID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e := l.ref(key)

	waitCtx, cancel := waitContext(ctx, l.timeout)
	defer cancel()

	select {
	case e.sem <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-e.sem
				l.unref(key, e)
			})
		}, nil
	case <-waitCtx.Done():
		l.unref(key, e)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, ErrTimeout
	}
}

// Len is the number of keys currently held or awaited.
func (l *KeyedLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *KeyedLocker) ref(key uuid.UUID) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *KeyedLocker) unref(key uuid.UUID, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// waitContext bounds a lock wait. A non-positive timeout waits until ctx ends.
func waitContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
