package repository

import (
	"context"
	"time"

	"parking-core/internal/infra"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/repository/converter"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReconciliationQueries interface {
	InsertFlag(ctx context.Context, db pgquery.DBTX, arg pgquery.FlagRow) (int64, error)
	ListOpenFlags(ctx context.Context, db pgquery.DBTX) ([]pgquery.FlagRow, error)
	ResolveFlag(ctx context.Context, db pgquery.DBTX, id uuid.UUID, at time.Time) error
}

type ReconciliationRepository struct {
	queries ReconciliationQueries
	db      pgquery.DBTX
}

func NewReconciliationRepository(queries ReconciliationQueries, db pgquery.DBTX) *ReconciliationRepository {
	return &ReconciliationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReconciliationRepository) Flag(ctx context.Context, flag shared.ReconciliationFlag) (bool, error) {
	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}
	affected, err := r.queries.InsertFlag(ctx, r.db, pgquery.FlagRow{
		ID:         flag.ID,
		Kind:       string(flag.Kind),
		SubjectID:  flag.SubjectID,
		Detail:     flag.Detail,
		DetectedAt: flag.DetectedAt,
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to record reconciliation flag", err)
	}
	return affected > 0, nil
}

func (r *ReconciliationRepository) ListOpen(ctx context.Context) ([]shared.ReconciliationFlag, error) {
	rows, err := r.queries.ListOpenFlags(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reconciliation flags", err)
	}
	out := make([]shared.ReconciliationFlag, len(rows))
	for i, row := range rows {
		out[i] = converter.FlagFromRow(row)
	}
	return out, nil
}

func (r *ReconciliationRepository) Resolve(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.queries.ResolveFlag(ctx, r.db, id, at); err != nil {
		return infra.WrapRepoErr("failed to resolve reconciliation flag", err)
	}
	return nil
}
