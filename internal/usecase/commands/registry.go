package commands

import (
	"context"
	"log/slog"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/spot"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/usecase/queries"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateFacilityRequest struct {
	Name     string
	Location string
}

type AddSpotRequest struct {
	Number int
	Kind   string
}

type RegistryCommands interface {
	CreateFacility(ctx context.Context, req CreateFacilityRequest) (*queries.FacilityView, error)
	AddSpot(ctx context.Context, facilityID uuid.UUID, req AddSpotRequest) (*queries.SpotView, error)
	RetireSpot(ctx context.Context, spotID uuid.UUID, expectedVersion *int64) (*queries.SpotView, error)
	RestoreSpot(ctx context.Context, spotID uuid.UUID, expectedVersion *int64) (*queries.SpotView, error)
}

type registryUseCaseImpl struct {
	spotGuard
}

func NewRegistryUseCase(uow shared.UnitOfWork, locker shared.SpotLocker, clk clock.Clock, logger *slog.Logger) RegistryCommands {
	return &registryUseCaseImpl{
		spotGuard: spotGuard{
			uow:    uow,
			locker: locker,
			clock:  clk,
			logger: logger,
		},
	}
}

func (uc *registryUseCaseImpl) CreateFacility(ctx context.Context, req CreateFacilityRequest) (*queries.FacilityView, error) {
	f, err := facility.NewFacility(req.Name, req.Location, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Facilities().Create(ctx, f)
	})
	if err != nil {
		return nil, err
	}
	return queries.ToFacilityView(f), nil
}

// AddSpot puts a new free spot in service, growing capacity and free count.
func (uc *registryUseCaseImpl) AddSpot(ctx context.Context, facilityID uuid.UUID, req AddSpotRequest) (*queries.SpotView, error) {
	kind, err := spot.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	s, err := spot.NewSpot(facilityID, req.Number, kind, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Facilities().FindByID(ctx, facilityID); err != nil {
			return err
		}
		if err := tx.Spots().Create(ctx, s); err != nil {
			return err
		}
		return tx.Facilities().AdjustCounters(ctx, facilityID, 1, 1)
	})
	if err != nil {
		return nil, err
	}
	return queries.ToSpotView(s), nil
}

func (uc *registryUseCaseImpl) RetireSpot(ctx context.Context, spotID uuid.UUID, expectedVersion *int64) (*queries.SpotView, error) {
	return uc.administer(ctx, spotID, spot.EventRetire, expectedVersion)
}

func (uc *registryUseCaseImpl) RestoreSpot(ctx context.Context, spotID uuid.UUID, expectedVersion *int64) (*queries.SpotView, error) {
	return uc.administer(ctx, spotID, spot.EventRestore, expectedVersion)
}

func (uc *registryUseCaseImpl) administer(ctx context.Context, spotID uuid.UUID, ev spot.Event, expectedVersion *int64) (*queries.SpotView, error) {
	var view *queries.SpotView
	err := uc.withSpotLock(ctx, spotID, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindForUpdate(ctx, spotID)
		if err != nil {
			return err
		}
		if err := uc.transition(ctx, tx, s, ev, expectedVersion); err != nil {
			return err
		}
		active, err := tx.Ledger().FindActiveBySpot(ctx, spotID)
		if err != nil {
			return err
		}
		if active != nil {
			return uc.inconsistent(ctx, s, "idle spot has active reservation "+active.ID().String())
		}
		view = queries.ToSpotView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
