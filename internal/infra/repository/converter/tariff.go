package converter

import (
	"parking-core/internal/domain/money"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/pkg/pgconv"
	"parking-core/internal/pkg/ptr"
)

func PlanToRow(p *tariff.Plan) pgquery.PlanRow {
	rates := p.Rates()
	return pgquery.PlanRow{
		ID:            p.ID(),
		FacilityID:    pgconv.UUIDPtrToPgtype(p.FacilityID()),
		Description:   p.Description(),
		EffectiveFrom: p.EffectiveFrom(),
		BaseCents:     rates.Base.Cents(),
		HourlyCents:   rates.Hourly.Cents(),
		DailyCents:    rates.Daily.Cents(),
		RetiredAt:     pgconv.TimePtrToPgtype(p.RetiredAt()),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func PlanFromRow(row pgquery.PlanRow) *tariff.Plan {
	rates := tariff.Rates{
		Base:   money.FromCents(row.BaseCents),
		Hourly: money.FromCents(row.HourlyCents),
		Daily:  money.FromCents(row.DailyCents),
	}
	return tariff.Reconstruct(
		row.ID,
		pgconv.UUIDPtrFromPgtype(row.FacilityID),
		row.Description,
		row.EffectiveFrom,
		rates,
		ptr.TimeFromPgtype(row.RetiredAt),
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func PlansFromRows(rows []pgquery.PlanRow) []*tariff.Plan {
	out := make([]*tariff.Plan, len(rows))
	for i, row := range rows {
		out[i] = PlanFromRow(row)
	}
	return out
}
