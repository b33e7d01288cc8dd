package tariff

import (
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/pkg/errs"
)

var ErrNegativeDuration = errs.NewKind("billing duration cannot be negative", errs.ErrInvalidInput)

// BillingPolicy fixes how elapsed time turns into a charge.
//
// Below DailyThreshold: base + hourly * ceil(hours), never fewer than
// MinimumHours. From DailyThreshold on: base + daily * fullDays plus the
// remainder billed hourly, capped at one daily rate when CapRemainder is set.
type BillingPolicy struct {
	DailyThreshold time.Duration
	MinimumHours   int64
	CapRemainder   bool
}

var DefaultBillingPolicy = BillingPolicy{
	DailyThreshold: 24 * time.Hour,
	MinimumHours:   1,
	CapRemainder:   true,
}

func (bp BillingPolicy) Charge(rates Rates, elapsed time.Duration) (money.Money, error) {
	if elapsed < 0 {
		return money.Money{}, ErrNegativeDuration
	}

	if elapsed < bp.DailyThreshold {
		hours := max(ceilHours(elapsed), bp.MinimumHours)
		return rates.Base.Add(rates.Hourly.Mul(hours)), nil
	}

	day := 24 * time.Hour
	fullDays := int64(elapsed / day)
	remainder := rates.Hourly.Mul(ceilHours(elapsed % day))
	if bp.CapRemainder {
		remainder = remainder.Min(rates.Daily)
	}
	return rates.Base.Add(rates.Daily.Mul(fullDays)).Add(remainder), nil
}

// Bill prices an interval against the plan's frozen rates.
func (p *Plan) Bill(policy BillingPolicy, startedAt, endedAt time.Time) (money.Money, error) {
	return policy.Charge(p.rates, endedAt.Sub(startedAt))
}

func ceilHours(d time.Duration) int64 {
	h := int64(d / time.Hour)
	if d%time.Hour != 0 {
		h++
	}
	return h
}
