package commands

import (
	"context"
	"log/slog"

	"parking-core/internal/domain/spot"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInconsistentState = errs.NewKind("spot registry and reservation ledger disagree", errs.ErrInternal)

// spotGuard runs spot mutations under the per-spot lock and keeps the
// facility counters in step with every transition.
type spotGuard struct {
	uow    shared.UnitOfWork
	locker shared.SpotLocker
	clock  clock.Clock
	logger *slog.Logger
}

// withSpotLock holds the spot lock for the whole transaction, retries included.
func (g *spotGuard) withSpotLock(ctx context.Context, spotID uuid.UUID, fn func(ctx context.Context, tx shared.Tx) error) error {
	release, err := g.locker.Acquire(ctx, spotID)
	if err != nil {
		return err
	}
	defer release()
	return g.uow.Within(ctx, fn)
}

func (g *spotGuard) transition(ctx context.Context, tx shared.Tx, s *spot.Spot, ev spot.Event, expectedVersion *int64) error {
	if err := s.CheckVersion(expectedVersion); err != nil {
		return err
	}
	from, prevVersion := s.State(), s.Version()
	now := g.clock.Now()
	if err := s.Apply(ev, now); err != nil {
		return err
	}
	if err := tx.Spots().Save(ctx, s, prevVersion); err != nil {
		return err
	}
	if capacityDelta, freeDelta := counterDeltas(ev); capacityDelta != 0 || freeDelta != 0 {
		if err := tx.Facilities().AdjustCounters(ctx, s.FacilityID(), capacityDelta, freeDelta); err != nil {
			return err
		}
	}
	return enqueue(ctx, tx, shared.TopicSpotChanged, newSpotEvent(s, ev, from), now)
}

func counterDeltas(ev spot.Event) (capacity, free int) {
	switch ev {
	case spot.EventReserve:
		return 0, -1
	case spot.EventRelease:
		return 0, 1
	case spot.EventRetire:
		return -1, -1
	case spot.EventRestore:
		return 1, 1
	default:
		return 0, 0
	}
}

func (g *spotGuard) inconsistent(ctx context.Context, s *spot.Spot, detail string) error {
	g.logger.ErrorContext(ctx, "registry and ledger disagree",
		"spot_id", s.ID(),
		"facility_id", s.FacilityID(),
		"state", s.State().String(),
		"detail", detail,
	)
	return errs.Wrapf(ErrInconsistentState, "spot %s: %s", s.ID(), detail)
}
