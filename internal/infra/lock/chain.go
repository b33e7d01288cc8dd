package lock

import (
	"context"
	"sync"

	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// Chain acquires every locker in order and releases them in reverse. The
// local locker goes first so waiting in-process callers do not poll Redis.
type Chain []shared.SpotLocker

func (c Chain) Acquire(ctx context.Context, spotID uuid.UUID) (func(), error) {
	releases := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, l := range c {
		release, err := l.Acquire(ctx, spotID)
		if err != nil {
			releaseAll()
			return nil, err
		}
		releases = append(releases, release)
	}

	var once sync.Once
	return func() { once.Do(releaseAll) }, nil
}
