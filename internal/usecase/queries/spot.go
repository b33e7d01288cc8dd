package queries

import (
	"context"

	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type SpotQueries interface {
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]*SpotView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error)
}

type spotQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewSpotQueries(uow shared.UnitOfWork) SpotQueries {
	return &spotQueriesImpl{uow: uow}
}

// ListByFacility includes retired spots; an unknown facility is not found
// rather than an empty list.
func (q *spotQueriesImpl) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]*SpotView, error) {
	var views []*SpotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Facilities().FindByID(ctx, facilityID); err != nil {
			return err
		}
		spots, err := tx.Spots().ListByFacility(ctx, facilityID)
		if err != nil {
			return err
		}
		views = make([]*SpotView, 0, len(spots))
		for _, s := range spots {
			views = append(views, ToSpotView(s))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *spotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SpotView, error) {
	var view *SpotView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Spots().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = ToSpotView(s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
