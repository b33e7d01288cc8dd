package repository

import (
	"context"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/spot"
	"parking-core/internal/infra"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/repository/converter"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const constraintSpotNumber = "spots_facility_number_key"

type SpotQueries interface {
	CreateSpot(ctx context.Context, db pgquery.DBTX, arg pgquery.SpotRow) error
	GetSpot(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.SpotRow, error)
	GetSpotForUpdate(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.SpotRow, error)
	UpdateSpotState(ctx context.Context, db pgquery.DBTX, arg pgquery.UpdateSpotStateParams) (int64, error)
	ListSpotsByFacility(ctx context.Context, db pgquery.DBTX, facilityID uuid.UUID) ([]pgquery.SpotRow, error)
	ListSpots(ctx context.Context, db pgquery.DBTX) ([]pgquery.SpotRow, error)
}

type SpotRepository struct {
	queries SpotQueries
	db      pgquery.DBTX
}

func NewSpotRepository(queries SpotQueries, db pgquery.DBTX) *SpotRepository {
	return &SpotRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SpotRepository) Create(ctx context.Context, s *spot.Spot) error {
	err := r.queries.CreateSpot(ctx, r.db, converter.SpotToRow(s))
	if err == nil {
		return nil
	}
	if constraint, kind, ok := infra.ConstraintViolation(err); ok {
		switch {
		case kind == infra.KindDuplicateKey && constraint == constraintSpotNumber:
			return spot.ErrDuplicateNumber
		case kind == infra.KindForeignKeyViolated:
			return facility.ErrFacilityNotFound
		}
	}
	return infra.WrapRepoErr("failed to create spot", err)
}

func (r *SpotRepository) FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error) {
	return r.find(ctx, id, r.queries.GetSpot)
}

func (r *SpotRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*spot.Spot, error) {
	return r.find(ctx, id, r.queries.GetSpotForUpdate)
}

func (r *SpotRepository) find(
	ctx context.Context,
	id uuid.UUID,
	get func(context.Context, pgquery.DBTX, uuid.UUID) (pgquery.SpotRow, error),
) (*spot.Spot, error) {
	row, err := get(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, spot.ErrSpotNotFound
		}
		return nil, infra.WrapRepoErr("failed to find spot", err)
	}
	return converter.SpotFromRow(row), nil
}

func (r *SpotRepository) Save(ctx context.Context, s *spot.Spot, prevVersion int64) error {
	affected, err := r.queries.UpdateSpotState(ctx, r.db, pgquery.UpdateSpotStateParams{
		ID:          s.ID(),
		State:       s.State().String(),
		Version:     s.Version(),
		PrevVersion: prevVersion,
		UpdatedAt:   s.UpdatedAt(),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to save spot", err)
	}
	if affected == 0 {
		return errs.Wrapf(spot.ErrVersionMismatch, "spot %s is no longer at version %d", s.ID(), prevVersion)
	}
	return nil
}

func (r *SpotRepository) ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]*spot.Spot, error) {
	rows, err := r.queries.ListSpotsByFacility(ctx, r.db, facilityID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spots", err)
	}
	return converter.SpotsFromRows(rows), nil
}

func (r *SpotRepository) ListAll(ctx context.Context) ([]*spot.Spot, error) {
	rows, err := r.queries.ListSpots(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list spots", err)
	}
	return converter.SpotsFromRows(rows), nil
}
