package commands

import (
	"context"
	"encoding/json"
	"time"

	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// Event payloads are the public contract of the outbox topics.

type ReservationEvent struct {
	ReservationID uuid.UUID  `json:"reservation_id"`
	SpotID        uuid.UUID  `json:"spot_id"`
	FacilityID    uuid.UUID  `json:"facility_id"`
	UserID        uuid.UUID  `json:"user_id"`
	PlanID        uuid.UUID  `json:"plan_id"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	AmountCents   *int64     `json:"amount_cents,omitempty"`
}

type PaymentEvent struct {
	PaymentID     uuid.UUID `json:"payment_id"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Method        string    `json:"method"`
	AmountCents   int64     `json:"amount_cents"`
	PaidAt        time.Time `json:"paid_at"`
}

type SpotEvent struct {
	SpotID     uuid.UUID `json:"spot_id"`
	FacilityID uuid.UUID `json:"facility_id"`
	Event      string    `json:"event"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	Version    int64     `json:"version"`
}

func newReservationEvent(r *reservation.Reservation) ReservationEvent {
	ev := ReservationEvent{
		ReservationID: r.ID(),
		SpotID:        r.SpotID(),
		FacilityID:    r.FacilityID(),
		UserID:        r.UserID(),
		PlanID:        r.PlanID(),
		StartedAt:     r.StartedAt(),
		EndedAt:       r.EndedAt(),
	}
	if amount := r.Amount(); amount != nil {
		cents := amount.Cents()
		ev.AmountCents = &cents
	}
	return ev
}

func newPaymentEvent(p *reservation.Payment) PaymentEvent {
	return PaymentEvent{
		PaymentID:     p.ID(),
		ReservationID: p.ReservationID(),
		Method:        p.Method().String(),
		AmountCents:   p.Amount().Cents(),
		PaidAt:        p.PaidAt(),
	}
}

func newSpotEvent(s *spot.Spot, ev spot.Event, from spot.State) SpotEvent {
	return SpotEvent{
		SpotID:     s.ID(),
		FacilityID: s.FacilityID(),
		Event:      string(ev),
		From:       from.String(),
		To:         s.State().String(),
		Version:    s.Version(),
	}
}

// enqueue writes the event in the caller's transaction so it commits or
// rolls back with the state change it describes.
func enqueue(ctx context.Context, tx shared.Tx, topic string, payload any, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrapf(err, "marshal %s payload", topic)
	}
	return tx.Outbox().Enqueue(ctx, shared.OutboxEvent{
		ID:        uuid.New(),
		Topic:     topic,
		Payload:   body,
		RunAt:     now,
		Status:    shared.OutboxPending,
		CreatedAt: now,
	})
}
