package queries

import (
	"context"
	"time"

	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type TariffQueries interface {
	// ResolveEffectivePlan uses the clock's now when at is zero.
	ResolveEffectivePlan(ctx context.Context, facilityID *uuid.UUID, at time.Time) (*PlanView, error)
	ListPlans(ctx context.Context, facilityID *uuid.UUID) ([]*PlanView, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*PlanView, error)
}

type tariffQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTariffQueries(uow shared.UnitOfWork, clk clock.Clock) TariffQueries {
	return &tariffQueriesImpl{uow: uow, clock: clk}
}

func (q *tariffQueriesImpl) ResolveEffectivePlan(ctx context.Context, facilityID *uuid.UUID, at time.Time) (*PlanView, error) {
	if at.IsZero() {
		at = q.clock.Now()
	}
	var view *PlanView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if facilityID != nil {
			if _, err := tx.Facilities().FindByID(ctx, *facilityID); err != nil {
				return err
			}
		}
		p, err := ResolvePlan(ctx, tx, facilityID, at)
		if err != nil {
			return err
		}
		view = ToPlanView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *tariffQueriesImpl) ListPlans(ctx context.Context, facilityID *uuid.UUID) ([]*PlanView, error) {
	var views []*PlanView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		plans, err := tx.Plans().List(ctx, facilityID)
		if err != nil {
			return err
		}
		views = make([]*PlanView, 0, len(plans))
		for _, p := range plans {
			views = append(views, ToPlanView(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *tariffQueriesImpl) GetPlan(ctx context.Context, id uuid.UUID) (*PlanView, error) {
	var view *PlanView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Plans().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = ToPlanView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// ResolvePlan picks the plan in effect at `at` inside an open transaction.
// The reservation coordinator shares it so reads and writes resolve alike.
func ResolvePlan(ctx context.Context, tx shared.Tx, facilityID *uuid.UUID, at time.Time) (*tariff.Plan, error) {
	candidates, err := tx.Plans().ListCandidates(ctx, facilityID, at)
	if err != nil {
		return nil, err
	}
	return tariff.SelectEffective(candidates, facilityID, at)
}
