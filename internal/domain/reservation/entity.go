package reservation

import (
	"math"
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound     = errs.NewKind("reservation not found", errs.ErrNotFound)
	ErrReservationAlreadyEnded = errs.NewKind("reservation already ended", errs.ErrConflict)
	ErrActiveReservationExists = errs.NewKind("spot already has an active reservation", errs.ErrConflict)
	ErrMissingUser             = errs.NewKind("reservation requires a user", errs.ErrInvalidInput)
	ErrEndBeforeStart          = errs.NewKind("reservation cannot end before it started", errs.ErrInvalidInput)
)

// Reservation is an append-only billing record. The plan id is frozen at
// creation and the amount is set exactly once, when the reservation ends.
type Reservation struct {
	id         uuid.UUID
	spotID     uuid.UUID
	facilityID uuid.UUID
	userID     uuid.UUID
	planID     uuid.UUID
	startedAt  time.Time
	endedAt    *time.Time
	amount     *money.Money
}

func NewReservation(spotID, facilityID, userID, planID uuid.UUID, startedAt time.Time) (*Reservation, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	return &Reservation{
		id:         uuid.New(),
		spotID:     spotID,
		facilityID: facilityID,
		userID:     userID,
		planID:     planID,
		startedAt:  startedAt,
	}, nil
}

func Reconstruct(
	id, spotID, facilityID, userID, planID uuid.UUID,
	startedAt time.Time,
	endedAt *time.Time,
	amount *money.Money,
) *Reservation {
	return &Reservation{
		id:         id,
		spotID:     spotID,
		facilityID: facilityID,
		userID:     userID,
		planID:     planID,
		startedAt:  startedAt,
		endedAt:    endedAt,
		amount:     amount,
	}
}

func (r *Reservation) finalize(endedAt time.Time, amount money.Money) error {
	if r.endedAt != nil {
		return ErrReservationAlreadyEnded
	}
	if endedAt.Before(r.startedAt) {
		return ErrEndBeforeStart
	}
	r.endedAt = &endedAt
	r.amount = &amount
	return nil
}

// AmountDue is what a payment must match: the final amount once ended,
// otherwise the prepayable base rate.
func (r *Reservation) AmountDue(baseRate money.Money) money.Money {
	if r.amount != nil {
		return *r.amount
	}
	return baseRate
}

func (r *Reservation) Status() Status {
	if r.endedAt != nil {
		return StatusEnded
	}
	return StatusActive
}

func (r *Reservation) IsActive() bool {
	return r.endedAt == nil
}

// Duration is zero while the reservation is active.
func (r *Reservation) Duration() time.Duration {
	if r.endedAt == nil {
		return 0
	}
	return r.endedAt.Sub(r.startedAt)
}

func (r *Reservation) DurationMinutes() int64 {
	return int64(math.Round(r.Duration().Minutes()))
}

func (r *Reservation) ID() uuid.UUID         { return r.id }
func (r *Reservation) SpotID() uuid.UUID     { return r.spotID }
func (r *Reservation) FacilityID() uuid.UUID { return r.facilityID }
func (r *Reservation) UserID() uuid.UUID     { return r.userID }
func (r *Reservation) PlanID() uuid.UUID     { return r.planID }
func (r *Reservation) StartedAt() time.Time  { return r.startedAt }
func (r *Reservation) EndedAt() *time.Time   { return r.endedAt }
func (r *Reservation) Amount() *money.Money  { return r.amount }
