package repository

import (
	"context"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/infra"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/repository/converter"
	"parking-core/internal/pkg/pgconv"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	constraintActiveReservation = "reservations_active_spot_key"
	constraintPaymentPerRes     = "payments_reservation_key"
	constraintReservationSpot   = "reservations_spot_id_fkey"
	constraintReservationPlan   = "reservations_plan_id_fkey"
)

type LedgerQueries interface {
	CreateReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.ReservationRow) error
	FinalizeReservation(ctx context.Context, db pgquery.DBTX, arg pgquery.FinalizeReservationParams) (int64, error)
	GetReservation(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.ReservationRow, error)
	GetActiveReservationBySpot(ctx context.Context, db pgquery.DBTX, spotID uuid.UUID) (pgquery.ReservationRow, error)
	ListActiveReservations(ctx context.Context, db pgquery.DBTX) ([]pgquery.ReservationRow, error)
	FindReservations(ctx context.Context, db pgquery.DBTX, arg pgquery.FindReservationsParams) ([]pgquery.ReservationRow, error)
	CreatePayment(ctx context.Context, db pgquery.DBTX, arg pgquery.PaymentRow) error
	GetPaymentByReservation(ctx context.Context, db pgquery.DBTX, reservationID uuid.UUID) (pgquery.PaymentRow, error)
	ListPaymentsByReservations(ctx context.Context, db pgquery.DBTX, reservationIDs []pgtype.UUID) ([]pgquery.PaymentRow, error)
}

type LedgerRepository struct {
	queries LedgerQueries
	db      pgquery.DBTX
}

func NewLedgerRepository(queries LedgerQueries, db pgquery.DBTX) *LedgerRepository {
	return &LedgerRepository{
		queries: queries,
		db:      db,
	}
}

func (r *LedgerRepository) Append(ctx context.Context, res *reservation.Reservation) error {
	err := r.queries.CreateReservation(ctx, r.db, converter.ReservationToRow(res))
	if err == nil {
		return nil
	}
	if constraint, kind, ok := infra.ConstraintViolation(err); ok {
		switch {
		case kind == infra.KindDuplicateKey && constraint == constraintActiveReservation:
			return reservation.ErrActiveReservationExists
		case kind == infra.KindForeignKeyViolated && constraint == constraintReservationSpot:
			return spot.ErrSpotNotFound
		case kind == infra.KindForeignKeyViolated && constraint == constraintReservationPlan:
			return tariff.ErrPlanNotFound
		}
	}
	return infra.WrapRepoErr("failed to append reservation", err)
}

func (r *LedgerRepository) Finalize(ctx context.Context, res *reservation.Reservation) error {
	if res.EndedAt() == nil || res.Amount() == nil {
		return infra.WrapRepoErr("reservation is not closed", nil, infra.KindCheckViolated)
	}
	affected, err := r.queries.FinalizeReservation(ctx, r.db, pgquery.FinalizeReservationParams{
		ID:          res.ID(),
		EndedAt:     *res.EndedAt(),
		AmountCents: res.Amount().Cents(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to finalize reservation", err)
	}
	if affected == 0 {
		if _, err := r.FindByID(ctx, res.ID()); err != nil {
			return err
		}
		return reservation.ErrReservationAlreadyEnded
	}
	return nil
}

func (r *LedgerRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservation(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, infra.WrapRepoErr("failed to find reservation", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *LedgerRepository) FindActiveBySpot(ctx context.Context, spotID uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetActiveReservationBySpot(ctx, r.db, spotID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find active reservation", err)
	}
	return converter.ReservationFromRow(row), nil
}

func (r *LedgerRepository) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	rows, err := r.queries.ListActiveReservations(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active reservations", err)
	}
	return converter.ReservationsFromRows(rows), nil
}

func (r *LedgerRepository) Find(ctx context.Context, filter shared.LedgerFilter) ([]*reservation.Reservation, error) {
	params := pgquery.FindReservationsParams{
		FacilityID: pgconv.UUIDPtrToPgtype(filter.FacilityID),
		SpotID:     pgconv.UUIDPtrToPgtype(filter.SpotID),
		From:       pgconv.TimePtrToPgtype(filter.From),
		To:         pgconv.TimePtrToPgtype(filter.To),
		EndedOnly:  filter.EndedOnly,
		Status:     pgconv.StringToPgtype(filter.Status.String()),
	}
	if c := filter.After; c != nil {
		params.AfterStart = pgconv.TimeToPgtype(c.StartedAt)
		params.AfterID = pgconv.UUIDToPgtype(c.ID)
	}
	if filter.Limit > 0 {
		params.Limit = pgtype.Int4{Int32: int32(min(filter.Limit, 1<<30)), Valid: true}
	}
	rows, err := r.queries.FindReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations", err)
	}
	return converter.ReservationsFromRows(rows), nil
}

func (r *LedgerRepository) AppendPayment(ctx context.Context, p *reservation.Payment) error {
	err := r.queries.CreatePayment(ctx, r.db, converter.PaymentToRow(p))
	if err == nil {
		return nil
	}
	if constraint, kind, ok := infra.ConstraintViolation(err); ok {
		switch {
		case kind == infra.KindDuplicateKey && constraint == constraintPaymentPerRes:
			return reservation.ErrAlreadyPaid
		case kind == infra.KindForeignKeyViolated:
			return reservation.ErrReservationNotFound
		}
	}
	return infra.WrapRepoErr("failed to append payment", err)
}

func (r *LedgerRepository) FindPayment(ctx context.Context, reservationID uuid.UUID) (*reservation.Payment, error) {
	row, err := r.queries.GetPaymentByReservation(ctx, r.db, reservationID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return converter.PaymentFromRow(row), nil
}

func (r *LedgerRepository) ListPayments(ctx context.Context, reservationIDs []uuid.UUID) ([]*reservation.Payment, error) {
	if len(reservationIDs) == 0 {
		return []*reservation.Payment{}, nil
	}
	rows, err := r.queries.ListPaymentsByReservations(ctx, r.db, pgconv.UUIDsToPgtype(reservationIDs))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	out := make([]*reservation.Payment, len(rows))
	for i, row := range rows {
		out[i] = converter.PaymentFromRow(row)
	}
	return out, nil
}
