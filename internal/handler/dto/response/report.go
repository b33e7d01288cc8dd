package response

import (
	"time"

	"parking-core/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReportResponse struct {
	FacilityID          uuid.UUID  `json:"facilityId"`
	AsOf                time.Time  `json:"asOf"`
	From                *time.Time `json:"from,omitempty"`
	Capacity            int        `json:"capacity"`
	FreeCount           int        `json:"freeCount"`
	OccupancyPercent    float64    `json:"occupancyPercent"`
	RevenueTotalCents   int64      `json:"revenueTotalCents"`
	RevenueTotal        string     `json:"revenueTotal" copier:"-"`
	AvgDurationMinutes  float64    `json:"avgDurationMinutes"`
	ReservationsCounted int        `json:"reservationsCounted"`
}

func FromOccupancyReport(r *queries.OccupancyReport) *ReportResponse {
	res := copyFrom[ReportResponse](r)
	res.RevenueTotal = formatCents(r.RevenueTotalCents)
	return res
}
