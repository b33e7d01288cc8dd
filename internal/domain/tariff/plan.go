package tariff

import (
	"strings"
	"time"

	"parking-core/internal/domain/money"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxDescriptionLength = 255

var (
	ErrPlanNotFound       = errs.NewKind("tariff plan not found", errs.ErrNotFound)
	ErrPlanInUse          = errs.NewKind("tariff plan is referenced by a reservation", errs.ErrConflict)
	ErrPlanRetired        = errs.NewKind("tariff plan is retired", errs.ErrConflict)
	ErrInvalidRate        = errs.NewKind("tariff rates cannot be negative", errs.ErrInvalidInput)
	ErrInvalidDate        = errs.NewKind("tariff effective date is in the past", errs.ErrInvalidInput)
	ErrEmptyDescription   = errs.NewKind("tariff description is required", errs.ErrInvalidInput)
	ErrDescriptionTooLong = errs.NewKind("tariff description is too long", errs.ErrInvalidInput)
)

// Rates are the three prices of a plan, in minor units.
type Rates struct {
	Base   money.Money
	Hourly money.Money
	Daily  money.Money
}

func NewRates(baseCents, hourlyCents, dailyCents int64) (Rates, error) {
	if baseCents < 0 || hourlyCents < 0 || dailyCents < 0 {
		return Rates{}, ErrInvalidRate
	}
	return Rates{
		Base:   money.FromCents(baseCents),
		Hourly: money.FromCents(hourlyCents),
		Daily:  money.FromCents(dailyCents),
	}, nil
}

type Plan struct {
	id            uuid.UUID
	facilityID    *uuid.UUID
	description   string
	effectiveFrom time.Time
	rates         Rates
	retiredAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

// NewPlan validates a forward-dated or immediate plan. The id is a v7 uuid so
// that ordering by id follows creation order.
func NewPlan(facilityID *uuid.UUID, description string, effectiveFrom time.Time, rates Rates, now time.Time) (*Plan, error) {
	description, err := validate(description, effectiveFrom, rates, now, true)
	if err != nil {
		return nil, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errs.Wrap(err, "generate plan id")
	}
	return &Plan{
		id:            id,
		facilityID:    facilityID,
		description:   description,
		effectiveFrom: effectiveFrom,
		rates:         rates,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	facilityID *uuid.UUID,
	description string,
	effectiveFrom time.Time,
	rates Rates,
	retiredAt *time.Time,
	createdAt, updatedAt time.Time,
) *Plan {
	return &Plan{
		id:            id,
		facilityID:    facilityID,
		description:   description,
		effectiveFrom: effectiveFrom,
		rates:         rates,
		retiredAt:     retiredAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Revise rewrites an unused plan. Callers check references first.
func (p *Plan) Revise(description string, effectiveFrom time.Time, rates Rates, now time.Time) error {
	if p.IsRetired() {
		return ErrPlanRetired
	}
	// Keeping the current date is allowed even once it has passed.
	dateChanged := !effectiveFrom.Equal(p.effectiveFrom)
	description, err := validate(description, effectiveFrom, rates, now, dateChanged)
	if err != nil {
		return err
	}
	p.description = description
	p.effectiveFrom = effectiveFrom
	p.rates = rates
	p.updatedAt = now
	return nil
}

func (p *Plan) Retire(now time.Time) error {
	if p.IsRetired() {
		return ErrPlanRetired
	}
	p.retiredAt = &now
	p.updatedAt = now
	return nil
}

func validate(description string, effectiveFrom time.Time, rates Rates, now time.Time, checkDate bool) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", ErrEmptyDescription
	}
	if len(description) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	if rates.Base.IsNegative() || rates.Hourly.IsNegative() || rates.Daily.IsNegative() {
		return "", ErrInvalidRate
	}
	if checkDate && effectiveFrom.Before(now) {
		return "", ErrInvalidDate
	}
	return description, nil
}

// IsEffectiveAt reports whether the plan can price a reservation started at.
func (p *Plan) IsEffectiveAt(at time.Time) bool {
	return !p.IsRetired() && !p.effectiveFrom.After(at)
}

// AppliesTo reports whether the plan is global or scoped to facilityID.
func (p *Plan) AppliesTo(facilityID uuid.UUID) bool {
	return p.facilityID == nil || *p.facilityID == facilityID
}

func (p *Plan) IsGlobal() bool  { return p.facilityID == nil }
func (p *Plan) IsRetired() bool { return p.retiredAt != nil }

func (p *Plan) ID() uuid.UUID            { return p.id }
func (p *Plan) FacilityID() *uuid.UUID   { return p.facilityID }
func (p *Plan) Description() string      { return p.description }
func (p *Plan) EffectiveFrom() time.Time { return p.effectiveFrom }
func (p *Plan) Rates() Rates             { return p.rates }
func (p *Plan) RetiredAt() *time.Time    { return p.retiredAt }
func (p *Plan) CreatedAt() time.Time     { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time     { return p.updatedAt }
