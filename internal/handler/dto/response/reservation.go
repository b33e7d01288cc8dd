package response

import (
	"time"

	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID            uuid.UUID `json:"paymentId"`
	ReservationID uuid.UUID `json:"reservationId"`
	Method        string    `json:"method"`
	AmountCents   int64     `json:"amountCents"`
	Amount        string    `json:"amount" copier:"-"`
	PaidAt        time.Time `json:"paidAt"`
	Replayed      bool      `json:"replayed,omitempty" copier:"-"`
}

func FromPaymentView(v *queries.PaymentView) *PaymentResponse {
	if v == nil {
		return nil
	}
	res := copyFrom[PaymentResponse](v)
	res.Amount = formatCents(v.AmountCents)
	return res
}

func FromRecordPaymentResult(r *commands.RecordPaymentResult) *PaymentResponse {
	res := FromPaymentView(r.Payment)
	res.Replayed = r.IsReplayed
	return res
}

type ReservationResponse struct {
	ID              uuid.UUID        `json:"reservationId"`
	SpotID          uuid.UUID        `json:"spotId"`
	FacilityID      uuid.UUID        `json:"facilityId"`
	UserID          uuid.UUID        `json:"userId"`
	PlanID          uuid.UUID        `json:"planId"`
	Status          string           `json:"status"`
	StartedAt       time.Time        `json:"startedAt"`
	EndedAt         *time.Time       `json:"endedAt,omitempty"`
	AmountCents     *int64           `json:"amountCents,omitempty"`
	Amount          *string          `json:"amount,omitempty" copier:"-"`
	DurationMinutes int64            `json:"durationMinutes"`
	Payment         *PaymentResponse `json:"payment,omitempty" copier:"-"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	res := copyFrom[ReservationResponse](v)
	if v.AmountCents != nil {
		amount := formatCents(*v.AmountCents)
		res.Amount = &amount
	}
	res.Payment = FromPaymentView(v.Payment)
	return res
}

type ReservationListResponse struct {
	Items      []*ReservationResponse `json:"items"`
	NextCursor string                 `json:"nextCursor,omitempty"`
}

func FromReservationPage(p *queries.ReservationPage) *ReservationListResponse {
	items := make([]*ReservationResponse, len(p.Items))
	for i, v := range p.Items {
		items[i] = FromReservationView(v)
	}
	return &ReservationListResponse{Items: items, NextCursor: p.NextCursor}
}

type ReserveResponse struct {
	ReservationID  uuid.UUID            `json:"reservationId"`
	AmountDueCents int64                `json:"amountDueCents"`
	AmountDue      string               `json:"amountDue"`
	Plan           *PlanResponse        `json:"plan"`
	Reservation    *ReservationResponse `json:"reservation"`
}

func FromReserveResult(r *commands.ReserveResult) *ReserveResponse {
	return &ReserveResponse{
		ReservationID:  r.Reservation.ID,
		AmountDueCents: r.AmountDueCents,
		AmountDue:      formatCents(r.AmountDueCents),
		Plan:           FromPlanView(r.Plan),
		Reservation:    FromReservationView(r.Reservation),
	}
}

type ReleaseResponse struct {
	ReservationID   uuid.UUID        `json:"reservationId"`
	AmountCents     int64            `json:"amountCents"`
	Amount          string           `json:"amount"`
	DurationMinutes int64            `json:"durationMinutes"`
	StartedAt       time.Time        `json:"startedAt"`
	EndedAt         *time.Time       `json:"endedAt,omitempty"`
	Payment         *PaymentResponse `json:"payment,omitempty"`
}

func FromReleasedReservation(v *queries.ReservationView) *ReleaseResponse {
	var cents int64
	if v.AmountCents != nil {
		cents = *v.AmountCents
	}
	return &ReleaseResponse{
		ReservationID:   v.ID,
		AmountCents:     cents,
		Amount:          formatCents(cents),
		DurationMinutes: v.DurationMinutes,
		StartedAt:       v.StartedAt,
		EndedAt:         v.EndedAt,
		Payment:         FromPaymentView(v.Payment),
	}
}
