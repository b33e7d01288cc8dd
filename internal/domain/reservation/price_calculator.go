package reservation

import (
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/domain/tariff"
)

type PriceCalculator interface {
	Charge(plan *tariff.Plan, startedAt, endedAt time.Time) (money.Money, error)
}

// PlanPriceCalculator bills against the reservation's frozen plan.
type PlanPriceCalculator struct {
	Policy tariff.BillingPolicy
}

func NewPlanPriceCalculator() *PlanPriceCalculator {
	return &PlanPriceCalculator{
		Policy: tariff.DefaultBillingPolicy,
	}
}

func (pc *PlanPriceCalculator) Charge(plan *tariff.Plan, startedAt, endedAt time.Time) (money.Money, error) {
	return plan.Bill(pc.Policy, startedAt, endedAt)
}
