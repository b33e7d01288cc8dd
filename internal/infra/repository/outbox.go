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

type OutboxQueries interface {
	EnqueueOutbox(ctx context.Context, db pgquery.DBTX, arg pgquery.OutboxRow) error
	ClaimOutbox(ctx context.Context, db pgquery.DBTX, arg pgquery.ClaimOutboxParams) ([]pgquery.OutboxRow, error)
	MarkOutboxSent(ctx context.Context, db pgquery.DBTX, id uuid.UUID, at time.Time) error
	MarkOutboxFailed(ctx context.Context, db pgquery.DBTX, arg pgquery.MarkOutboxFailedParams) error
}

type OutboxRepository struct {
	queries OutboxQueries
	db      pgquery.DBTX
}

func NewOutboxRepository(queries OutboxQueries, db pgquery.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, event shared.OutboxEvent) error {
	if err := r.queries.EnqueueOutbox(ctx, r.db, converter.OutboxToRow(event)); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

func (r *OutboxRepository) ClaimPending(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]shared.OutboxEvent, error) {
	rows, err := r.queries.ClaimOutbox(ctx, r.db, pgquery.ClaimOutboxParams{
		Now:        now,
		LeaseUntil: now.Add(lease),
		Limit:      int32(min(max(limit, 1), 1<<30)),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}
	out := make([]shared.OutboxEvent, len(rows))
	for i, row := range rows {
		out[i] = converter.OutboxFromRow(row)
	}
	return out, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	if err := r.queries.MarkOutboxSent(ctx, r.db, id, at); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time, dead bool) error {
	status := shared.OutboxPending
	if dead {
		status = shared.OutboxDead
	}
	err := r.queries.MarkOutboxFailed(ctx, r.db, pgquery.MarkOutboxFailedParams{
		ID:        id,
		LastError: reason,
		RunAt:     retryAt,
		Status:    string(status),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event failed", err)
	}
	return nil
}
