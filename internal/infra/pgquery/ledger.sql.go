package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRow struct {
	ID          uuid.UUID
	SpotID      uuid.UUID
	FacilityID  uuid.UUID
	UserID      uuid.UUID
	PlanID      uuid.UUID
	StartedAt   time.Time
	EndedAt     pgtype.Timestamptz
	AmountCents pgtype.Int8
}

const reservationColumns = `id, spot_id, facility_id, user_id, plan_id, started_at, ended_at, amount_cents`

func scanReservation(row pgx.Row) (ReservationRow, error) {
	var r ReservationRow
	err := row.Scan(&r.ID, &r.SpotID, &r.FacilityID, &r.UserID, &r.PlanID, &r.StartedAt, &r.EndedAt, &r.AmountCents)
	return r, err
}

const createReservation = `
INSERT INTO reservations (` + reservationColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (q *Queries) CreateReservation(ctx context.Context, db DBTX, arg ReservationRow) error {
	_, err := db.Exec(ctx, createReservation,
		arg.ID, arg.SpotID, arg.FacilityID, arg.UserID, arg.PlanID, arg.StartedAt, arg.EndedAt, arg.AmountCents)
	return err
}

type FinalizeReservationParams struct {
	ID          uuid.UUID
	EndedAt     time.Time
	AmountCents int64
}

const finalizeReservation = `
UPDATE reservations
SET ended_at = $2, amount_cents = $3
WHERE id = $1 AND ended_at IS NULL`

func (q *Queries) FinalizeReservation(ctx context.Context, db DBTX, arg FinalizeReservationParams) (int64, error) {
	tag, err := db.Exec(ctx, finalizeReservation, arg.ID, arg.EndedAt, arg.AmountCents)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const getReservation = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

func (q *Queries) GetReservation(ctx context.Context, db DBTX, id uuid.UUID) (ReservationRow, error) {
	return scanReservation(db.QueryRow(ctx, getReservation, id))
}

const getActiveReservationBySpot = `
SELECT ` + reservationColumns + ` FROM reservations
WHERE spot_id = $1 AND ended_at IS NULL`

func (q *Queries) GetActiveReservationBySpot(ctx context.Context, db DBTX, spotID uuid.UUID) (ReservationRow, error) {
	return scanReservation(db.QueryRow(ctx, getActiveReservationBySpot, spotID))
}

const listActiveReservations = `
SELECT ` + reservationColumns + ` FROM reservations
WHERE ended_at IS NULL
ORDER BY started_at, id`

func (q *Queries) ListActiveReservations(ctx context.Context, db DBTX) ([]ReservationRow, error) {
	rows, err := db.Query(ctx, listActiveReservations)
	return collect(rows, err, scanReservation)
}

type FindReservationsParams struct {
	FacilityID pgtype.UUID
	SpotID     pgtype.UUID
	From       pgtype.Timestamptz
	To         pgtype.Timestamptz
	EndedOnly  bool
	Status     pgtype.Text
	AfterStart pgtype.Timestamptz
	AfterID    pgtype.UUID
	Limit      pgtype.Int4
}

// With ended_only the time bounds apply to ended_at, otherwise to started_at.
const findReservations = `
SELECT ` + reservationColumns + ` FROM reservations
WHERE ($1::uuid IS NULL OR facility_id = $1)
  AND ($2::uuid IS NULL OR spot_id = $2)
  AND (NOT $5::boolean OR ended_at IS NOT NULL)
  AND ($3::timestamptz IS NULL OR CASE WHEN $5 THEN ended_at ELSE started_at END >= $3)
  AND ($4::timestamptz IS NULL OR CASE WHEN $5 THEN ended_at ELSE started_at END <= $4)
  AND ($7::timestamptz IS NULL OR (started_at, id) < ($7, $8::uuid))
  AND ($9::text IS NULL OR (CASE WHEN ended_at IS NULL THEN 'active' ELSE 'ended' END) = $9)
ORDER BY started_at DESC, id DESC
LIMIT $6`

func (q *Queries) FindReservations(ctx context.Context, db DBTX, arg FindReservationsParams) ([]ReservationRow, error) {
	rows, err := db.Query(ctx, findReservations, arg.FacilityID, arg.SpotID, arg.From, arg.To, arg.EndedOnly, arg.Limit, arg.AfterStart, arg.AfterID, arg.Status)
	return collect(rows, err, scanReservation)
}

type PaymentRow struct {
	ID             uuid.UUID
	ReservationID  uuid.UUID
	Method         string
	AmountCents    int64
	PaidAt         time.Time
	IdempotencyKey pgtype.Text
}

const paymentColumns = `id, reservation_id, method, amount_cents, paid_at, idempotency_key`

func scanPayment(row pgx.Row) (PaymentRow, error) {
	var p PaymentRow
	err := row.Scan(&p.ID, &p.ReservationID, &p.Method, &p.AmountCents, &p.PaidAt, &p.IdempotencyKey)
	return p, err
}

const createPayment = `
INSERT INTO payments (` + paymentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)`

func (q *Queries) CreatePayment(ctx context.Context, db DBTX, arg PaymentRow) error {
	_, err := db.Exec(ctx, createPayment,
		arg.ID, arg.ReservationID, arg.Method, arg.AmountCents, arg.PaidAt, arg.IdempotencyKey)
	return err
}

const getPaymentByReservation = `SELECT ` + paymentColumns + ` FROM payments WHERE reservation_id = $1`

func (q *Queries) GetPaymentByReservation(ctx context.Context, db DBTX, reservationID uuid.UUID) (PaymentRow, error) {
	return scanPayment(db.QueryRow(ctx, getPaymentByReservation, reservationID))
}

const listPaymentsByReservations = `
SELECT ` + paymentColumns + ` FROM payments
WHERE reservation_id = ANY($1::uuid[])
ORDER BY paid_at, id`

func (q *Queries) ListPaymentsByReservations(ctx context.Context, db DBTX, reservationIDs []pgtype.UUID) ([]PaymentRow, error) {
	rows, err := db.Query(ctx, listPaymentsByReservations, reservationIDs)
	return collect(rows, err, scanPayment)
}
