package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type OutboxRow struct {
	ID        uuid.UUID
	Topic     string
	Payload   []byte
	Status    string
	Attempts  int32
	RunAt     time.Time
	LastError pgtype.Text
	CreatedAt time.Time
}

const outboxColumns = `id, topic, payload, status, attempts, run_at, last_error, created_at`

func scanOutbox(row pgx.Row) (OutboxRow, error) {
	var o OutboxRow
	err := row.Scan(&o.ID, &o.Topic, &o.Payload, &o.Status, &o.Attempts, &o.RunAt, &o.LastError, &o.CreatedAt)
	return o, err
}

const enqueueOutbox = `
INSERT INTO outbox_events (` + outboxColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (q *Queries) EnqueueOutbox(ctx context.Context, db DBTX, arg OutboxRow) error {
	_, err := db.Exec(ctx, enqueueOutbox,
		arg.ID, arg.Topic, arg.Payload, arg.Status, arg.Attempts, arg.RunAt, arg.LastError, arg.CreatedAt)
	return err
}

type ClaimOutboxParams struct {
	Now        time.Time
	LeaseUntil time.Time
	Limit      int32
}

// Leased rows move their run_at forward, so a crashed dispatcher's claim
// expires and the event is picked up again.
const claimOutbox = `
UPDATE outbox_events o
SET run_at = $2, attempts = o.attempts + 1
FROM (
    SELECT id FROM outbox_events
    WHERE status = 'pending' AND run_at <= $1
    ORDER BY run_at, created_at
    LIMIT $3
    FOR UPDATE SKIP LOCKED
) due
WHERE o.id = due.id
RETURNING o.id, o.topic, o.payload, o.status, o.attempts, o.run_at, o.last_error, o.created_at`

func (q *Queries) ClaimOutbox(ctx context.Context, db DBTX, arg ClaimOutboxParams) ([]OutboxRow, error) {
	rows, err := db.Query(ctx, claimOutbox, arg.Now, arg.LeaseUntil, arg.Limit)
	return collect(rows, err, scanOutbox)
}

const markOutboxSent = `
UPDATE outbox_events
SET status = 'sent', run_at = $2, last_error = NULL
WHERE id = $1`

func (q *Queries) MarkOutboxSent(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	_, err := db.Exec(ctx, markOutboxSent, id, at)
	return err
}

type MarkOutboxFailedParams struct {
	ID        uuid.UUID
	LastError string
	RunAt     time.Time
	Status    string
}

const markOutboxFailed = `
UPDATE outbox_events
SET last_error = $2, run_at = $3, status = $4
WHERE id = $1`

func (q *Queries) MarkOutboxFailed(ctx context.Context, db DBTX, arg MarkOutboxFailedParams) error {
	_, err := db.Exec(ctx, markOutboxFailed, arg.ID, arg.LastError, arg.RunAt, arg.Status)
	return err
}

type FlagRow struct {
	ID         uuid.UUID
	Kind       string
	SubjectID  uuid.UUID
	Detail     string
	DetectedAt time.Time
}

const insertFlag = `
INSERT INTO reconciliation_flags (id, kind, subject_id, detail, detected_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (kind, subject_id) WHERE resolved_at IS NULL DO NOTHING`

func (q *Queries) InsertFlag(ctx context.Context, db DBTX, arg FlagRow) (int64, error) {
	tag, err := db.Exec(ctx, insertFlag, arg.ID, arg.Kind, arg.SubjectID, arg.Detail, arg.DetectedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listOpenFlags = `
SELECT id, kind, subject_id, detail, detected_at FROM reconciliation_flags
WHERE resolved_at IS NULL
ORDER BY detected_at, subject_id`

func (q *Queries) ListOpenFlags(ctx context.Context, db DBTX) ([]FlagRow, error) {
	rows, err := db.Query(ctx, listOpenFlags)
	return collect(rows, err, func(row pgx.Row) (FlagRow, error) {
		var f FlagRow
		err := row.Scan(&f.ID, &f.Kind, &f.SubjectID, &f.Detail, &f.DetectedAt)
		return f, err
	})
}

const resolveFlag = `UPDATE reconciliation_flags SET resolved_at = $2 WHERE id = $1 AND resolved_at IS NULL`

func (q *Queries) ResolveFlag(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	_, err := db.Exec(ctx, resolveFlag, id, at)
	return err
}
