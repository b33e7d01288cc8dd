package builder

import (
	"time"

	reqdto "parking-core/internal/handler/dto/request"
	"parking-core/internal/pkg/ptr"
	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

var Start = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

type ReservationBuilder struct {
	ID         uuid.UUID
	SpotID     uuid.UUID
	FacilityID uuid.UUID
	UserID     uuid.UUID
	PlanID     uuid.UUID
	StartedAt  time.Time
	EndedAt    *time.Time
	Amount     *int64
	Payment    *queries.PaymentView
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ID:         uuid.New(),
		SpotID:     uuid.New(),
		FacilityID: uuid.New(),
		UserID:     uuid.New(),
		PlanID:     uuid.New(),
		StartedAt:  Start,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

// Ended closes the reservation after d and bills it.
func (b *ReservationBuilder) Ended(d time.Duration, amountCents int64) *ReservationBuilder {
	b.EndedAt = ptr.Of(b.StartedAt.Add(d))
	b.Amount = ptr.Of(amountCents)
	return b
}

func (b *ReservationBuilder) Paid(method string, amountCents int64) *ReservationBuilder {
	b.Payment = &queries.PaymentView{
		ID:            uuid.New(),
		ReservationID: b.ID,
		Method:        method,
		AmountCents:   amountCents,
		PaidAt:        b.StartedAt.Add(time.Minute),
	}
	return b
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	v := &queries.ReservationView{
		ID:          b.ID,
		SpotID:      b.SpotID,
		FacilityID:  b.FacilityID,
		UserID:      b.UserID,
		PlanID:      b.PlanID,
		Status:      "active",
		StartedAt:   b.StartedAt,
		EndedAt:     b.EndedAt,
		AmountCents: b.Amount,
		Payment:     b.Payment,
	}
	if b.EndedAt != nil {
		v.Status = "ended"
		v.DurationMinutes = int64(b.EndedAt.Sub(b.StartedAt).Minutes())
	}
	return v
}

func (b *ReservationBuilder) BuildReserveRequestDTO() reqdto.ReserveRequest {
	return reqdto.ReserveRequest{
		FacilityID: b.FacilityID,
		SpotID:     b.SpotID,
	}
}

func (b *ReservationBuilder) BuildReserveResult(plan *queries.PlanView) *commands.ReserveResult {
	return &commands.ReserveResult{
		Reservation:    b.BuildView(),
		Plan:           plan,
		AmountDueCents: plan.BaseCents,
	}
}

type PlanBuilder struct {
	ID            uuid.UUID
	FacilityID    *uuid.UUID
	Description   string
	EffectiveFrom time.Time
	Base          int64
	Hourly        int64
	Daily         int64
}

func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		ID:            uuid.New(),
		Description:   "Standard",
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Base:          500,
		Hourly:        200,
		Daily:         3000,
	}
}

func (b *PlanBuilder) With(mutate func(*PlanBuilder)) *PlanBuilder {
	mutate(b)
	return b
}

func (b *PlanBuilder) BuildView() *queries.PlanView {
	return &queries.PlanView{
		ID:            b.ID,
		FacilityID:    b.FacilityID,
		Description:   b.Description,
		EffectiveFrom: b.EffectiveFrom,
		BaseCents:     b.Base,
		HourlyCents:   b.Hourly,
		DailyCents:    b.Daily,
		CreatedAt:     b.EffectiveFrom,
		UpdatedAt:     b.EffectiveFrom,
	}
}

func (b *PlanBuilder) BuildCreateRequestDTO() reqdto.CreatePlanRequest {
	return reqdto.CreatePlanRequest{
		FacilityID:    b.FacilityID,
		Description:   b.Description,
		EffectiveFrom: ptr.Of(b.EffectiveFrom),
		BaseCents:     ptr.Of(b.Base),
		HourlyCents:   ptr.Of(b.Hourly),
		DailyCents:    ptr.Of(b.Daily),
	}
}

func NewSpotView(facilityID uuid.UUID, number int, state string) *queries.SpotView {
	return &queries.SpotView{
		ID:         uuid.New(),
		FacilityID: facilityID,
		Number:     number,
		Kind:       "car",
		State:      state,
		Version:    1,
		UpdatedAt:  Start,
	}
}

func NewFacilityView(name string, capacity, free int) *queries.FacilityView {
	v := &queries.FacilityView{
		ID:        uuid.New(),
		Name:      name,
		Location:  "Rua Augusta 100",
		Capacity:  capacity,
		FreeCount: free,
		CreatedAt: Start,
		UpdatedAt: Start,
	}
	if capacity > 0 {
		v.OccupancyPercent = float64(capacity-free) * 100 / float64(capacity)
	}
	return v
}
