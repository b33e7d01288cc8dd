package queries

import (
	"time"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

// FacilityView represents read-optimized facility data
type FacilityView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Capacity         int       `json:"capacity"`
	FreeCount        int       `json:"free_count"`
	OccupancyPercent float64   `json:"occupancy_percent"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type SpotView struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`
	Number     int       `json:"number"`
	Kind       string    `json:"kind"`
	State      string    `json:"state"`
	Version    int64     `json:"version"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PlanView struct {
	ID            uuid.UUID  `json:"id"`
	FacilityID    *uuid.UUID `json:"facility_id,omitempty"`
	Description   string     `json:"description"`
	EffectiveFrom time.Time  `json:"effective_from"`
	BaseCents     int64      `json:"base_cents"`
	HourlyCents   int64      `json:"hourly_cents"`
	DailyCents    int64      `json:"daily_cents"`
	RetiredAt     *time.Time `json:"retired_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PaymentView struct {
	ID             uuid.UUID `json:"id"`
	ReservationID  uuid.UUID `json:"reservation_id"`
	Method         string    `json:"method"`
	AmountCents    int64     `json:"amount_cents"`
	PaidAt         time.Time `json:"paid_at"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

type ReservationView struct {
	ID              uuid.UUID    `json:"id"`
	SpotID          uuid.UUID    `json:"spot_id"`
	FacilityID      uuid.UUID    `json:"facility_id"`
	UserID          uuid.UUID    `json:"user_id"`
	PlanID          uuid.UUID    `json:"plan_id"`
	Status          string       `json:"status"`
	StartedAt       time.Time    `json:"started_at"`
	EndedAt         *time.Time   `json:"ended_at,omitempty"`
	AmountCents     *int64       `json:"amount_cents,omitempty"`
	DurationMinutes int64        `json:"duration_minutes"`
	Payment         *PaymentView `json:"payment,omitempty"`
}

type ReservationPage struct {
	Items      []*ReservationView `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// OccupancyReport is derived from committed state only.
type OccupancyReport struct {
	FacilityID          uuid.UUID  `json:"facility_id"`
	AsOf                time.Time  `json:"as_of"`
	From                *time.Time `json:"from,omitempty"`
	Capacity            int        `json:"capacity"`
	FreeCount           int        `json:"free_count"`
	OccupancyPercent    float64    `json:"occupancy_percent"`
	RevenueTotalCents   int64      `json:"revenue_total_cents"`
	AvgDurationMinutes  float64    `json:"avg_duration_minutes"`
	ReservationsCounted int        `json:"reservations_counted"`
}

type ReconciliationFlagView struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	SubjectID  uuid.UUID `json:"subject_id"`
	Detail     string    `json:"detail"`
	DetectedAt time.Time `json:"detected_at"`
}

func ToFacilityView(f *facility.Facility) *FacilityView {
	return &FacilityView{
		ID:               f.ID(),
		Name:             f.Name(),
		Location:         f.Location(),
		Capacity:         f.Capacity(),
		FreeCount:        f.FreeCount(),
		OccupancyPercent: f.OccupancyPercent(),
		CreatedAt:        f.CreatedAt(),
		UpdatedAt:        f.UpdatedAt(),
	}
}

func ToSpotView(s *spot.Spot) *SpotView {
	return &SpotView{
		ID:         s.ID(),
		FacilityID: s.FacilityID(),
		Number:     s.Number(),
		Kind:       s.Kind().String(),
		State:      s.State().String(),
		Version:    s.Version(),
		UpdatedAt:  s.UpdatedAt(),
	}
}

func ToPlanView(p *tariff.Plan) *PlanView {
	rates := p.Rates()
	return &PlanView{
		ID:            p.ID(),
		FacilityID:    p.FacilityID(),
		Description:   p.Description(),
		EffectiveFrom: p.EffectiveFrom(),
		BaseCents:     rates.Base.Cents(),
		HourlyCents:   rates.Hourly.Cents(),
		DailyCents:    rates.Daily.Cents(),
		RetiredAt:     p.RetiredAt(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToPaymentView(p *reservation.Payment) *PaymentView {
	if p == nil {
		return nil
	}
	return &PaymentView{
		ID:             p.ID(),
		ReservationID:  p.ReservationID(),
		Method:         p.Method().String(),
		AmountCents:    p.Amount().Cents(),
		PaidAt:         p.PaidAt(),
		IdempotencyKey: p.IdempotencyKey().String(),
	}
}

// ToReservationView attaches the payment when one is given.
func ToReservationView(r *reservation.Reservation, p *reservation.Payment) *ReservationView {
	v := &ReservationView{
		ID:              r.ID(),
		SpotID:          r.SpotID(),
		FacilityID:      r.FacilityID(),
		UserID:          r.UserID(),
		PlanID:          r.PlanID(),
		Status:          r.Status().String(),
		StartedAt:       r.StartedAt(),
		EndedAt:         r.EndedAt(),
		DurationMinutes: r.DurationMinutes(),
		Payment:         ToPaymentView(p),
	}
	if amount := r.Amount(); amount != nil {
		cents := amount.Cents()
		v.AmountCents = &cents
	}
	return v
}

func ToReconciliationFlagView(f shared.ReconciliationFlag) *ReconciliationFlagView {
	return &ReconciliationFlagView{
		ID:         f.ID,
		Kind:       string(f.Kind),
		SubjectID:  f.SubjectID,
		Detail:     f.Detail,
		DetectedAt: f.DetectedAt,
	}
}
