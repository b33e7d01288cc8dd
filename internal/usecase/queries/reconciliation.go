package queries

import (
	"context"

	"parking-core/internal/usecase/shared"
)

type ReconciliationQueries interface {
	ListOpen(ctx context.Context) ([]*ReconciliationFlagView, error)
}

type reconciliationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReconciliationQueries(uow shared.UnitOfWork) ReconciliationQueries {
	return &reconciliationQueriesImpl{uow: uow}
}

func (q *reconciliationQueriesImpl) ListOpen(ctx context.Context) ([]*ReconciliationFlagView, error) {
	var views []*ReconciliationFlagView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		flags, err := tx.Reconciliation().ListOpen(ctx)
		if err != nil {
			return err
		}
		views = make([]*ReconciliationFlagView, 0, len(flags))
		for _, f := range flags {
			views = append(views, ToReconciliationFlagView(f))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return views, nil
}
