package queries

import (
	"context"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidRange = errs.NewKind("from must not be after to", errs.ErrInvalidInput)

type ReservationFilter struct {
	FacilityID *uuid.UUID
	SpotID     *uuid.UUID
	From       *time.Time
	To         *time.Time
	Status     reservation.Status
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	List(ctx context.Context, filter ReservationFilter, after string, limit int) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewReservationQueries(uow shared.UnitOfWork) ReservationQueries {
	return &reservationQueriesImpl{uow: uow}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	var view *ReservationView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Ledger().FindByID(ctx, id)
		if err != nil {
			return err
		}
		p, err := tx.Ledger().FindPayment(ctx, id)
		if err != nil {
			return err
		}
		view = ToReservationView(r, p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// List pages through the ledger newest first. The cursor returned in the
// page resumes strictly after its last item.
func (q *reservationQueriesImpl) List(ctx context.Context, filter ReservationFilter, after string, limit int) (*ReservationPage, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, ErrInvalidRange
	}
	cursor, err := DecodeAfterCursor(after)
	if err != nil {
		return nil, err
	}
	limit = ValidateLimit(limit)

	page := &ReservationPage{Items: []*ReservationView{}}
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		rows, err := tx.Ledger().Find(ctx, shared.LedgerFilter{
			FacilityID: filter.FacilityID,
			SpotID:     filter.SpotID,
			From:       filter.From,
			To:         filter.To,
			Status:     filter.Status,
			After:      cursor,
			Limit:      limit + 1,
		})
		if err != nil {
			return err
		}
		if len(rows) > limit {
			last := rows[limit-1]
			page.NextCursor = EncodeAfterCursor(last.StartedAt(), last.ID())
			rows = rows[:limit]
		}

		payments, err := paymentsByReservation(ctx, tx, rows)
		if err != nil {
			return err
		}
		for _, r := range rows {
			page.Items = append(page.Items, ToReservationView(r, payments[r.ID()]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

func paymentsByReservation(ctx context.Context, tx shared.Tx, rows []*reservation.Reservation) (map[uuid.UUID]*reservation.Payment, error) {
	if len(rows) == 0 {
		return map[uuid.UUID]*reservation.Payment{}, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID())
	}
	payments, err := tx.Ledger().ListPayments(ctx, ids)
	if err != nil {
		return nil, err
	}
	byReservation := make(map[uuid.UUID]*reservation.Payment, len(payments))
	for _, p := range payments {
		byReservation[p.ReservationID()] = p
	}
	return byReservation, nil
}
