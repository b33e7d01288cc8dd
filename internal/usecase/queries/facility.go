package queries

import (
	"context"

	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type FacilityQueries interface {
	List(ctx context.Context) ([]*FacilityView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*FacilityView, error)
}

type facilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewFacilityQueries(uow shared.UnitOfWork) FacilityQueries {
	return &facilityQueriesImpl{uow: uow}
}

func (q *facilityQueriesImpl) List(ctx context.Context) ([]*FacilityView, error) {
	var views []*FacilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		facilities, err := tx.Facilities().List(ctx)
		if err != nil {
			return err
		}
		views = make([]*FacilityView, 0, len(facilities))
		for _, f := range facilities {
			views = append(views, ToFacilityView(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}

func (q *facilityQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*FacilityView, error) {
	var view *FacilityView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		f, err := tx.Facilities().FindByID(ctx, id)
		if err != nil {
			return err
		}
		view = ToFacilityView(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
