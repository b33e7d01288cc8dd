package converter

import (
	"math"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/spot"
	"parking-core/internal/infra/pgquery"
)

func FacilityToRow(f *facility.Facility) pgquery.FacilityRow {
	return pgquery.FacilityRow{
		ID:        f.ID(),
		Name:      f.Name(),
		Location:  f.Location(),
		Capacity:  toInt32(f.Capacity()),
		FreeCount: toInt32(f.FreeCount()),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}

func FacilityFromRow(row pgquery.FacilityRow) *facility.Facility {
	return facility.Reconstruct(row.ID, row.Name, row.Location, int(row.Capacity), int(row.FreeCount), row.CreatedAt, row.UpdatedAt)
}

func SpotToRow(s *spot.Spot) pgquery.SpotRow {
	return pgquery.SpotRow{
		ID:         s.ID(),
		FacilityID: s.FacilityID(),
		Number:     toInt32(s.Number()),
		Kind:       s.Kind().String(),
		State:      s.State().String(),
		Version:    s.Version(),
		CreatedAt:  s.CreatedAt(),
		UpdatedAt:  s.UpdatedAt(),
	}
}

func SpotFromRow(row pgquery.SpotRow) *spot.Spot {
	return spot.Reconstruct(row.ID, row.FacilityID, int(row.Number),
		spot.Kind(row.Kind), spot.State(row.State), row.Version, row.CreatedAt, row.UpdatedAt)
}

func SpotsFromRows(rows []pgquery.SpotRow) []*spot.Spot {
	out := make([]*spot.Spot, len(rows))
	for i, row := range rows {
		out[i] = SpotFromRow(row)
	}
	return out
}

// toInt32 clamps; domain validation keeps counters and spot numbers far below the limit.
func toInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
