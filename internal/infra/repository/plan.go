package repository

import (
	"context"
	"time"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/tariff"
	"parking-core/internal/infra"
	"parking-core/internal/infra/pgquery"
	"parking-core/internal/infra/repository/converter"
	"parking-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PlanQueries interface {
	CreatePlan(ctx context.Context, db pgquery.DBTX, arg pgquery.PlanRow) error
	GetPlan(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.PlanRow, error)
	GetPlanForShare(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.PlanRow, error)
	GetPlanForUpdate(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (pgquery.PlanRow, error)
	UpdatePlan(ctx context.Context, db pgquery.DBTX, arg pgquery.PlanRow) (int64, error)
	ListPlanCandidates(ctx context.Context, db pgquery.DBTX, facilityID pgtype.UUID, at time.Time) ([]pgquery.PlanRow, error)
	ListPlans(ctx context.Context, db pgquery.DBTX, facilityID pgtype.UUID) ([]pgquery.PlanRow, error)
	PlanIsReferenced(ctx context.Context, db pgquery.DBTX, id uuid.UUID) (bool, error)
}

type PlanRepository struct {
	queries PlanQueries
	db      pgquery.DBTX
}

func NewPlanRepository(queries PlanQueries, db pgquery.DBTX) *PlanRepository {
	return &PlanRepository{
		queries: queries,
		db:      db,
	}
}

func (r *PlanRepository) Create(ctx context.Context, p *tariff.Plan) error {
	err := r.queries.CreatePlan(ctx, r.db, converter.PlanToRow(p))
	if err == nil {
		return nil
	}
	if _, kind, ok := infra.ConstraintViolation(err); ok && kind == infra.KindForeignKeyViolated {
		return facility.ErrFacilityNotFound
	}
	return infra.WrapRepoErr("failed to create plan", err)
}

func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	return r.find(ctx, id, r.queries.GetPlan)
}

func (r *PlanRepository) FindForShare(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	return r.find(ctx, id, r.queries.GetPlanForShare)
}

func (r *PlanRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*tariff.Plan, error) {
	return r.find(ctx, id, r.queries.GetPlanForUpdate)
}

func (r *PlanRepository) find(
	ctx context.Context,
	id uuid.UUID,
	get func(context.Context, pgquery.DBTX, uuid.UUID) (pgquery.PlanRow, error),
) (*tariff.Plan, error) {
	row, err := get(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, tariff.ErrPlanNotFound
		}
		return nil, infra.WrapRepoErr("failed to find plan", err)
	}
	return converter.PlanFromRow(row), nil
}

func (r *PlanRepository) Update(ctx context.Context, p *tariff.Plan) error {
	affected, err := r.queries.UpdatePlan(ctx, r.db, converter.PlanToRow(p))
	if err != nil {
		return infra.WrapRepoErr("failed to update plan", err)
	}
	if affected == 0 {
		return tariff.ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) ListCandidates(ctx context.Context, facilityID *uuid.UUID, at time.Time) ([]*tariff.Plan, error) {
	rows, err := r.queries.ListPlanCandidates(ctx, r.db, pgconv.UUIDPtrToPgtype(facilityID), at)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list plan candidates", err)
	}
	return converter.PlansFromRows(rows), nil
}

func (r *PlanRepository) List(ctx context.Context, facilityID *uuid.UUID) ([]*tariff.Plan, error) {
	rows, err := r.queries.ListPlans(ctx, r.db, pgconv.UUIDPtrToPgtype(facilityID))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list plans", err)
	}
	return converter.PlansFromRows(rows), nil
}

func (r *PlanRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	referenced, err := r.queries.PlanIsReferenced(ctx, r.db, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check plan references", err)
	}
	return referenced, nil
}
