package repository

import (
	"context"

	"parking-core/internal/domain/facility"
	"parking-core/internal/infra"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/repository/converter"
	"parking-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type FacilityQueries interface {
	CreateFacility(ctx context.Context, db pgquery.DBTX, arg pgquery.FacilityRow) error
	GetFacility(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.FacilityRow, error)
	ListFacilities(ctx context.Context, db pgquery.DBTX) ([]pgquery.FacilityRow, error)
	AdjustFacilityCounters(ctx context.Context, db pgquery.DBTX, id uuid.UUID, capacityDelta, freeDelta int32) (int64, error)
}

type FacilityRepository struct {
	queries FacilityQueries
	db      pgquery.DBTX
}

func NewFacilityRepository(queries FacilityQueries, db pgquery.DBTX) *FacilityRepository {
	return &FacilityRepository{
		queries: queries,
		db:      db,
	}
}

func (r *FacilityRepository) Create(ctx context.Context, f *facility.Facility) error {
	if err := r.queries.CreateFacility(ctx, r.db, converter.FacilityToRow(f)); err != nil {
		return infra.WrapRepoErr("failed to create facility", err)
	}
	return nil
}

func (r *FacilityRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	row, err := r.queries.GetFacility(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, facility.ErrFacilityNotFound
		}
		return nil, infra.WrapRepoErr("failed to find facility", err)
	}
	return converter.FacilityFromRow(row), nil
}

func (r *FacilityRepository) List(ctx context.Context) ([]*facility.Facility, error) {
	rows, err := r.queries.ListFacilities(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list facilities", err)
	}
	out := make([]*facility.Facility, len(rows))
	for i, row := range rows {
		out[i] = converter.FacilityFromRow(row)
	}
	return out, nil
}

func (r *FacilityRepository) AdjustCounters(ctx context.Context, id uuid.UUID, capacityDelta, freeDelta int) error {
	affected, err := r.queries.AdjustFacilityCounters(ctx, r.db, id, int32(capacityDelta), int32(freeDelta))
	if err != nil {
		return infra.WrapRepoErr("failed to adjust facility counters", err)
	}
	if affected == 0 {
		return facility.ErrFacilityNotFound
	}
	return nil
}
