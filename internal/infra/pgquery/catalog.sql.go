package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PlanRow struct {
	ID            uuid.UUID
	FacilityID    pgtype.UUID
	Description   string
	EffectiveFrom time.Time
	BaseCents     int64
	HourlyCents   int64
	DailyCents    int64
	RetiredAt     pgtype.Timestamptz
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const planColumns = `id, facility_id, description, effective_from, base_cents, hourly_cents, daily_cents, retired_at, created_at, updated_at`

func scanPlan(row pgx.Row) (PlanRow, error) {
	var p PlanRow
	err := row.Scan(&p.ID, &p.FacilityID, &p.Description, &p.EffectiveFrom,
		&p.BaseCents, &p.HourlyCents, &p.DailyCents, &p.RetiredAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const createPlan = `
INSERT INTO tariff_plans (` + planColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (q *Queries) CreatePlan(ctx context.Context, db DBTX, arg PlanRow) error {
	_, err := db.Exec(ctx, createPlan,
		arg.ID, arg.FacilityID, arg.Description, arg.EffectiveFrom,
		arg.BaseCents, arg.HourlyCents, arg.DailyCents, arg.RetiredAt, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getPlan = `SELECT ` + planColumns + ` FROM tariff_plans WHERE id = $1`

func (q *Queries) GetPlan(ctx context.Context, db DBTX, id uuid.UUID) (PlanRow, error) {
	return scanPlan(db.QueryRow(ctx, getPlan, id))
}

func (q *Queries) GetPlanForShare(ctx context.Context, db DBTX, id uuid.UUID) (PlanRow, error) {
	return scanPlan(db.QueryRow(ctx, getPlan+` FOR SHARE`, id))
}

func (q *Queries) GetPlanForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (PlanRow, error) {
	return scanPlan(db.QueryRow(ctx, getPlan+` FOR UPDATE`, id))
}

const updatePlan = `
UPDATE tariff_plans
SET description = $2, effective_from = $3, base_cents = $4, hourly_cents = $5,
    daily_cents = $6, retired_at = $7, updated_at = $8
WHERE id = $1`

func (q *Queries) UpdatePlan(ctx context.Context, db DBTX, arg PlanRow) (int64, error) {
	tag, err := db.Exec(ctx, updatePlan,
		arg.ID, arg.Description, arg.EffectiveFrom, arg.BaseCents, arg.HourlyCents,
		arg.DailyCents, arg.RetiredAt, arg.UpdatedAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listPlanCandidates = `
SELECT ` + planColumns + ` FROM tariff_plans
WHERE retired_at IS NULL
  AND effective_from <= $2
  AND (facility_id IS NULL OR facility_id = $1)
ORDER BY effective_from, id`

func (q *Queries) ListPlanCandidates(ctx context.Context, db DBTX, facilityID pgtype.UUID, at time.Time) ([]PlanRow, error) {
	rows, err := db.Query(ctx, listPlanCandidates, facilityID, at)
	return collect(rows, err, scanPlan)
}

const listPlans = `
SELECT ` + planColumns + ` FROM tariff_plans
WHERE $1::uuid IS NULL OR facility_id IS NULL OR facility_id = $1
ORDER BY effective_from, id`

func (q *Queries) ListPlans(ctx context.Context, db DBTX, facilityID pgtype.UUID) ([]PlanRow, error) {
	rows, err := db.Query(ctx, listPlans, facilityID)
	return collect(rows, err, scanPlan)
}

const planIsReferenced = `SELECT EXISTS (SELECT 1 FROM reservations WHERE plan_id = $1)`

func (q *Queries) PlanIsReferenced(ctx context.Context, db DBTX, id uuid.UUID) (bool, error) {
	var referenced bool
	err := db.QueryRow(ctx, planIsReferenced, id).Scan(&referenced)
	return referenced, err
}
