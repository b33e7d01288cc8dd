package reservation

import (
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrPlanMismatch = errs.NewKind("plan does not match reservation", errs.ErrInternal)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// Open starts a reservation for a spot that has just been reserved.
func (f *Factory) Open(s *spot.Spot, userID uuid.UUID, plan *tariff.Plan) (*Reservation, error) {
	return NewReservation(s.ID(), s.FacilityID(), userID, plan.ID(), f.Clock.Now())
}

// Close ends the reservation now and prices it against its frozen plan.
func (f *Factory) Close(r *Reservation, plan *tariff.Plan) error {
	if plan.ID() != r.planID {
		return ErrPlanMismatch
	}
	if !r.IsActive() {
		return ErrReservationAlreadyEnded
	}
	endedAt := f.Clock.Now()
	amount, err := f.PriceCalculator.Charge(plan, r.startedAt, endedAt)
	if err != nil {
		return err
	}
	return r.finalize(endedAt, amount)
}
