package converter

import (
	"parking-core/internal/domain/money"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/pkg/pgconv"
	"parking-core/internal/pkg/ptr"
)

func ReservationToRow(r *reservation.Reservation) pgquery.ReservationRow {
	var amount *int64
	if a := r.Amount(); a != nil {
		amount = ptr.Of(a.Cents())
	}
	return pgquery.ReservationRow{
		ID:          r.ID(),
		SpotID:      r.SpotID(),
		FacilityID:  r.FacilityID(),
		UserID:      r.UserID(),
		PlanID:      r.PlanID(),
		StartedAt:   r.StartedAt(),
		EndedAt:     pgconv.TimePtrToPgtype(r.EndedAt()),
		AmountCents: pgconv.Int64PtrToPgtype(amount),
	}
}

func ReservationFromRow(row pgquery.ReservationRow) *reservation.Reservation {
	var amount *money.Money
	if cents := ptr.Int64FromPgtype(row.AmountCents); cents != nil {
		amount = ptr.Of(money.FromCents(*cents))
	}
	return reservation.Reconstruct(
		row.ID, row.SpotID, row.FacilityID, row.UserID, row.PlanID,
		row.StartedAt,
		ptr.TimeFromPgtype(row.EndedAt),
		amount,
	)
}

func ReservationsFromRows(rows []pgquery.ReservationRow) []*reservation.Reservation {
	out := make([]*reservation.Reservation, len(rows))
	for i, row := range rows {
		out[i] = ReservationFromRow(row)
	}
	return out
}

func PaymentToRow(p *reservation.Payment) pgquery.PaymentRow {
	return pgquery.PaymentRow{
		ID:             p.ID(),
		ReservationID:  p.ReservationID(),
		Method:         p.Method().String(),
		AmountCents:    p.Amount().Cents(),
		PaidAt:         p.PaidAt(),
		IdempotencyKey: pgconv.StringToPgtype(p.IdempotencyKey().String()),
	}
}

func PaymentFromRow(row pgquery.PaymentRow) *reservation.Payment {
	return reservation.ReconstructPayment(
		row.ID,
		row.ReservationID,
		reservation.PaymentMethod(row.Method),
		money.FromCents(row.AmountCents),
		row.PaidAt,
		reservation.RestoreIdempotencyKey(pgconv.StringFromPgtype(row.IdempotencyKey)),
	)
}
