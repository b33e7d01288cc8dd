package response

import (
	"time"

	"parking-core/internal/usecase/commands"
	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type FacilityResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Location         string    `json:"location"`
	Capacity         int       `json:"capacity"`
	FreeCount        int       `json:"freeCount"`
	OccupancyPercent float64   `json:"occupancyPercent"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func FromFacilityView(v *queries.FacilityView) *FacilityResponse {
	return copyFrom[FacilityResponse](v)
}

func FromFacilityViews(vs []*queries.FacilityView) []*FacilityResponse {
	return copyEach[FacilityResponse](vs)
}

type SpotResponse struct {
	ID         uuid.UUID `json:"spotId"`
	FacilityID uuid.UUID `json:"facilityId"`
	Number     int       `json:"number"`
	Kind       string    `json:"kind"`
	State      string    `json:"state"`
	Version    int64     `json:"version"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromSpotView(v *queries.SpotView) *SpotResponse {
	return copyFrom[SpotResponse](v)
}

func FromSpotViews(vs []*queries.SpotView) []*SpotResponse {
	return copyEach[SpotResponse](vs)
}

type InconsistencyResponse struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	SubjectID  uuid.UUID `json:"subjectId"`
	Detail     string    `json:"detail"`
	DetectedAt time.Time `json:"detectedAt"`
}

func FromReconciliationFlagViews(vs []*queries.ReconciliationFlagView) []*InconsistencyResponse {
	return copyEach[InconsistencyResponse](vs)
}

type RecoveryResponse struct {
	Flagged  int                      `json:"flagged"`
	Resolved int                      `json:"resolved"`
	Findings []*InconsistencyResponse `json:"findings"`
}

func FromRecoveryResult(r *commands.RecoveryResult) *RecoveryResponse {
	return &RecoveryResponse{
		Flagged:  r.Flagged,
		Resolved: r.Resolved,
		Findings: FromReconciliationFlagViews(r.Findings),
	}
}
