package commands

import (
	"context"
	"time"

	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/ptr"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreatePlanRequest struct {
	FacilityID    *uuid.UUID
	Description   string
	EffectiveFrom *time.Time
	BaseCents     int64
	HourlyCents   int64
	DailyCents    int64
}

// UpdatePlanRequest is a partial update; nil fields keep their value.
type UpdatePlanRequest struct {
	Description   *string
	EffectiveFrom *time.Time
	BaseCents     *int64
	HourlyCents   *int64
	DailyCents    *int64
}

type TariffCommands interface {
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*queries.PlanView, error)
	UpdatePlan(ctx context.Context, planID uuid.UUID, req UpdatePlanRequest) (*queries.PlanView, error)
	RetirePlan(ctx context.Context, planID uuid.UUID) (*queries.PlanView, error)
}

type tariffUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewTariffUseCase(uow shared.UnitOfWork, clk clock.Clock) TariffCommands {
	return &tariffUseCaseImpl{uow: uow, clock: clk}
}

func (uc *tariffUseCaseImpl) CreatePlan(ctx context.Context, req CreatePlanRequest) (*queries.PlanView, error) {
	rates, err := tariff.NewRates(req.BaseCents, req.HourlyCents, req.DailyCents)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	p, err := tariff.NewPlan(req.FacilityID, req.Description, ptr.Deref(req.EffectiveFrom, now), rates, now)
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if req.FacilityID != nil {
			if _, err := tx.Facilities().FindByID(ctx, *req.FacilityID); err != nil {
				return err
			}
		}
		return tx.Plans().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return queries.ToPlanView(p), nil
}

func (uc *tariffUseCaseImpl) UpdatePlan(ctx context.Context, planID uuid.UUID, req UpdatePlanRequest) (*queries.PlanView, error) {
	return uc.mutateUnused(ctx, planID, func(p *tariff.Plan, now time.Time) error {
		current := p.Rates()
		rates, err := tariff.NewRates(
			ptr.Deref(req.BaseCents, current.Base.Cents()),
			ptr.Deref(req.HourlyCents, current.Hourly.Cents()),
			ptr.Deref(req.DailyCents, current.Daily.Cents()),
		)
		if err != nil {
			return err
		}
		return p.Revise(
			ptr.Deref(req.Description, p.Description()),
			ptr.Deref(req.EffectiveFrom, p.EffectiveFrom()),
			rates,
			now,
		)
	})
}

func (uc *tariffUseCaseImpl) RetirePlan(ctx context.Context, planID uuid.UUID) (*queries.PlanView, error) {
	return uc.mutateUnused(ctx, planID, (*tariff.Plan).Retire)
}

// mutateUnused locks the plan row and refuses to touch a plan that any
// reservation has already frozen.
func (uc *tariffUseCaseImpl) mutateUnused(ctx context.Context, planID uuid.UUID, mutate func(p *tariff.Plan, now time.Time) error) (*queries.PlanView, error) {
	var view *queries.PlanView
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		p, err := tx.Plans().FindForUpdate(ctx, planID)
		if err != nil {
			return err
		}
		referenced, err := tx.Plans().IsReferenced(ctx, planID)
		if err != nil {
			return err
		}
		if referenced {
			return tariff.ErrPlanInUse
		}
		if err := mutate(p, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Plans().Update(ctx, p); err != nil {
			return err
		}
		view = queries.ToPlanView(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
