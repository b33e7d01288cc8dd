package response

import (
	"time"

	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type PlanResponse struct {
	ID            uuid.UUID  `json:"id"`
	FacilityID    *uuid.UUID `json:"facilityId,omitempty"`
	Description   string     `json:"description"`
	EffectiveFrom time.Time  `json:"effectiveFrom"`
	BaseCents     int64      `json:"baseCents"`
	HourlyCents   int64      `json:"hourlyCents"`
	DailyCents    int64      `json:"dailyCents"`
	Base          string     `json:"base" copier:"-"`
	Hourly        string     `json:"hourly" copier:"-"`
	Daily         string     `json:"daily" copier:"-"`
	RetiredAt     *time.Time `json:"retiredAt,omitempty"`
}

func FromPlanView(v *queries.PlanView) *PlanResponse {
	if v == nil {
		return nil
	}
	res := copyFrom[PlanResponse](v)
	res.Base = formatCents(v.BaseCents)
	res.Hourly = formatCents(v.HourlyCents)
	res.Daily = formatCents(v.DailyCents)
	return res
}

func FromPlanViews(vs []*queries.PlanView) []*PlanResponse {
	res := make([]*PlanResponse, len(vs))
	for i, v := range vs {
		res[i] = FromPlanView(v)
	}
	return res
}
