package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/money"
	"parking-core/internal/domain/tariff"

	"github.com/google/uuid"
)

type planRepo struct {
	tx *memTx
}

func (r *planRepo) Create(_ context.Context, p *tariff.Plan) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.st.plans[p.ID()]; exists {
		return ErrDuplicateID
	}
	if scope := p.FacilityID(); scope != nil {
		if _, ok := r.tx.st.facilities[*scope]; !ok {
			return facility.ErrFacilityNotFound
		}
	}
	r.tx.st.plans[p.ID()] = planRowOf(p)
	return nil
}

func (r *planRepo) FindByID(_ context.Context, id uuid.UUID) (*tariff.Plan, error) {
	row, ok := r.tx.st.plans[id]
	if !ok {
		return nil, tariff.ErrPlanNotFound
	}
	return row.toDomain(), nil
}

func (r *planRepo) FindForShare(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	return r.FindByID(ctx, id)
}

func (r *planRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	return r.FindByID(ctx, id)
}

func (r *planRepo) Update(_ context.Context, p *tariff.Plan) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, ok := r.tx.st.plans[p.ID()]; !ok {
		return tariff.ErrPlanNotFound
	}
	r.tx.st.plans[p.ID()] = planRowOf(p)
	return nil
}

func (r *planRepo) ListCandidates(_ context.Context, facilityID *uuid.UUID, at time.Time) ([]*tariff.Plan, error) {
	return r.collect(func(row planRow) bool {
		if row.retiredAt != nil || row.effectiveFrom.After(at) {
			return false
		}
		return row.facilityID == nil || (facilityID != nil && *row.facilityID == *facilityID)
	}), nil
}

// List returns every plan visible to the scope: global plans plus the
// facility's own. A nil scope lists all plans.
func (r *planRepo) List(_ context.Context, facilityID *uuid.UUID) ([]*tariff.Plan, error) {
	return r.collect(func(row planRow) bool {
		return facilityID == nil || row.facilityID == nil || *row.facilityID == *facilityID
	}), nil
}

func (r *planRepo) IsReferenced(_ context.Context, id uuid.UUID) (bool, error) {
	for _, res := range r.tx.st.reservations {
		if res.planID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *planRepo) collect(keep func(planRow) bool) []*tariff.Plan {
	rows := make([]planRow, 0)
	for _, row := range r.tx.st.plans {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].effectiveFrom.Equal(rows[j].effectiveFrom) {
			return rows[i].effectiveFrom.Before(rows[j].effectiveFrom)
		}
		return bytes.Compare(rows[i].id[:], rows[j].id[:]) < 0
	})
	out := make([]*tariff.Plan, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func planRowOf(p *tariff.Plan) planRow {
	rates := p.Rates()
	row := planRow{
		id:            p.ID(),
		description:   p.Description(),
		effectiveFrom: p.EffectiveFrom(),
		baseCents:     rates.Base.Cents(),
		hourlyCents:   rates.Hourly.Cents(),
		dailyCents:    rates.Daily.Cents(),
		createdAt:     p.CreatedAt(),
		updatedAt:     p.UpdatedAt(),
	}
	if scope := p.FacilityID(); scope != nil {
		id := *scope
		row.facilityID = &id
	}
	if retired := p.RetiredAt(); retired != nil {
		at := *retired
		row.retiredAt = &at
	}
	return row
}

func (row planRow) toDomain() *tariff.Plan {
	rates := tariff.Rates{
		Base:   money.FromCents(row.baseCents),
		Hourly: money.FromCents(row.hourlyCents),
		Daily:  money.FromCents(row.dailyCents),
	}
	return tariff.Reconstruct(row.id, row.facilityID, row.description, row.effectiveFrom, rates, row.retiredAt, row.createdAt, row.updatedAt)
}
