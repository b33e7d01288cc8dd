package memstore

import (
	"context"
	"sort"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type ledgerRepo struct {
	tx *memTx
}

func (r *ledgerRepo) Append(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, exists := st.reservations[res.ID()]; exists {
		return ErrDuplicateID
	}
	if _, ok := st.spots[res.SpotID()]; !ok {
		return spot.ErrSpotNotFound
	}
	if _, ok := st.plans[res.PlanID()]; !ok {
		return tariff.ErrPlanNotFound
	}
	if res.IsActive() {
		for _, other := range st.reservations {
			if other.spotID == res.SpotID() && other.endedAt == nil {
				return reservation.ErrActiveReservationExists
			}
		}
	}
	st.reservations[res.ID()] = reservationRowOf(res)
	return nil
}

func (r *ledgerRepo) Finalize(_ context.Context, res *reservation.Reservation) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.st.reservations[res.ID()]
	if !ok {
		return reservation.ErrReservationNotFound
	}
	if row.endedAt != nil {
		return reservation.ErrReservationAlreadyEnded
	}
	if res.EndedAt() == nil || res.Amount() == nil {
		return ErrConstraint
	}
	endedAt := *res.EndedAt()
	cents := res.Amount().Cents()
	row.endedAt = &endedAt
	row.amountCents = &cents
	r.tx.st.reservations[res.ID()] = row
	return nil
}

func (r *ledgerRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, ok := r.tx.st.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return row.toDomain(), nil
}

func (r *ledgerRepo) FindActiveBySpot(_ context.Context, spotID uuid.UUID) (*reservation.Reservation, error) {
	for _, row := range r.tx.st.reservations {
		if row.spotID == spotID && row.endedAt == nil {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *ledgerRepo) ListActive(_ context.Context) ([]*reservation.Reservation, error) {
	rows := make([]reservationRow, 0)
	for _, row := range r.tx.st.reservations {
		if row.endedAt == nil {
			rows = append(rows, row)
		}
	}
	sortReservations(rows, false)
	return toReservations(rows), nil
}

func (r *ledgerRepo) Find(_ context.Context, filter shared.LedgerFilter) ([]*reservation.Reservation, error) {
	rows := make([]reservationRow, 0)
	for _, row := range r.tx.st.reservations {
		if matches(row, filter) {
			rows = append(rows, row)
		}
	}
	sortReservations(rows, true)
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return toReservations(rows), nil
}

func matches(row reservationRow, f shared.LedgerFilter) bool {
	if f.FacilityID != nil && row.facilityID != *f.FacilityID {
		return false
	}
	if f.SpotID != nil && row.spotID != *f.SpotID {
		return false
	}
	if f.Status != "" && statusOf(row) != f.Status {
		return false
	}
	at := row.startedAt
	if f.EndedOnly {
		if row.endedAt == nil {
			return false
		}
		at = *row.endedAt
	}
	if f.From != nil && at.Before(*f.From) {
		return false
	}
	if f.To != nil && at.After(*f.To) {
		return false
	}
	if c := f.After; c != nil {
		if row.startedAt.After(c.StartedAt) {
			return false
		}
		if row.startedAt.Equal(c.StartedAt) && row.id.String() >= c.ID.String() {
			return false
		}
	}
	return true
}

func (r *ledgerRepo) AppendPayment(_ context.Context, p *reservation.Payment) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	st := r.tx.st
	if _, exists := st.payments[p.ID()]; exists {
		return ErrDuplicateID
	}
	if _, ok := st.reservations[p.ReservationID()]; !ok {
		return reservation.ErrReservationNotFound
	}
	for _, other := range st.payments {
		if other.reservationID == p.ReservationID() {
			return reservation.ErrAlreadyPaid
		}
	}
	st.payments[p.ID()] = paymentRow{
		id:             p.ID(),
		reservationID:  p.ReservationID(),
		method:         string(p.Method()),
		amountCents:    p.Amount().Cents(),
		paidAt:         p.PaidAt(),
		idempotencyKey: p.IdempotencyKey().String(),
	}
	return nil
}

func (r *ledgerRepo) FindPayment(_ context.Context, reservationID uuid.UUID) (*reservation.Payment, error) {
	for _, row := range r.tx.st.payments {
		if row.reservationID == reservationID {
			return row.toDomain(), nil
		}
	}
	return nil, nil
}

func (r *ledgerRepo) ListPayments(_ context.Context, reservationIDs []uuid.UUID) ([]*reservation.Payment, error) {
	wanted := make(map[uuid.UUID]struct{}, len(reservationIDs))
	for _, id := range reservationIDs {
		wanted[id] = struct{}{}
	}
	rows := make([]paymentRow, 0)
	for _, row := range r.tx.st.payments {
		if _, ok := wanted[row.reservationID]; ok {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].paidAt.Before(rows[j].paidAt) })
	out := make([]*reservation.Payment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// sortReservations orders by start time, newest first when desc is set.
func sortReservations(rows []reservationRow, desc bool) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			a, b = b, a
		}
		if !a.startedAt.Equal(b.startedAt) {
			return a.startedAt.Before(b.startedAt)
		}
		return a.id.String() < b.id.String()
	})
}

func toReservations(rows []reservationRow) []*reservation.Reservation {
	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func reservationRowOf(res *reservation.Reservation) reservationRow {
	row := reservationRow{
		id:         res.ID(),
		spotID:     res.SpotID(),
		facilityID: res.FacilityID(),
		userID:     res.UserID(),
		planID:     res.PlanID(),
		startedAt:  res.StartedAt(),
	}
	if res.EndedAt() != nil {
		endedAt := *res.EndedAt()
		row.endedAt = &endedAt
	}
	if res.Amount() != nil {
		cents := res.Amount().Cents()
		row.amountCents = &cents
	}
	return row
}

func (row reservationRow) toDomain() *reservation.Reservation {
	var amount *money.Money
	if row.amountCents != nil {
		m := money.FromCents(*row.amountCents)
		amount = &m
	}
	return reservation.Reconstruct(row.id, row.spotID, row.facilityID, row.userID, row.planID, row.startedAt, row.endedAt, amount)
}

func (row paymentRow) toDomain() *reservation.Payment {
	return reservation.ReconstructPayment(
		row.id, row.reservationID,
		reservation.PaymentMethod(row.method),
		money.FromCents(row.amountCents),
		row.paidAt,
		reservation.RestoreIdempotencyKey(row.idempotencyKey),
	)
}

func statusOf(row reservationRow) reservation.Status {
	if row.endedAt == nil {
		return reservation.StatusActive
	}
	return reservation.StatusEnded
}
