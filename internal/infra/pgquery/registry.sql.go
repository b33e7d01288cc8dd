package pgquery

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FacilityRow struct {
	ID        uuid.UUID
	Name      string
	Location  string
	Capacity  int32
	FreeCount int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

const facilityColumns = `id, name, location, capacity, free_count, created_at, updated_at`

func scanFacility(row pgx.Row) (FacilityRow, error) {
	var f FacilityRow
	err := row.Scan(&f.ID, &f.Name, &f.Location, &f.Capacity, &f.FreeCount, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const createFacility = `
INSERT INTO facilities (` + facilityColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

func (q *Queries) CreateFacility(ctx context.Context, db DBTX, arg FacilityRow) error {
	_, err := db.Exec(ctx, createFacility,
		arg.ID, arg.Name, arg.Location, arg.Capacity, arg.FreeCount, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getFacility = `SELECT ` + facilityColumns + ` FROM facilities WHERE id = $1`

func (q *Queries) GetFacility(ctx context.Context, db DBTX, id uuid.UUID) (FacilityRow, error) {
	return scanFacility(db.QueryRow(ctx, getFacility, id))
}

const listFacilities = `SELECT ` + facilityColumns + ` FROM facilities ORDER BY name, id`

func (q *Queries) ListFacilities(ctx context.Context, db DBTX) ([]FacilityRow, error) {
	rows, err := db.Query(ctx, listFacilities)
	return collect(rows, err, scanFacility)
}

// Deltas are applied in one statement so concurrent transitions never lose
// an update; the table's CHECK constraints reject out-of-range results.
const adjustFacilityCounters = `
UPDATE facilities
SET capacity = capacity + $2, free_count = free_count + $3
WHERE id = $1`

func (q *Queries) AdjustFacilityCounters(ctx context.Context, db DBTX, id uuid.UUID, capacityDelta, freeDelta int32) (int64, error) {
	tag, err := db.Exec(ctx, adjustFacilityCounters, id, capacityDelta, freeDelta)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type SpotRow struct {
	ID         uuid.UUID
	FacilityID uuid.UUID
	Number     int32
	Kind       string
	State      string
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const spotColumns = `id, facility_id, number, kind, state, version, created_at, updated_at`

func scanSpot(row pgx.Row) (SpotRow, error) {
	var s SpotRow
	err := row.Scan(&s.ID, &s.FacilityID, &s.Number, &s.Kind, &s.State, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const createSpot = `
INSERT INTO spots (` + spotColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (q *Queries) CreateSpot(ctx context.Context, db DBTX, arg SpotRow) error {
	_, err := db.Exec(ctx, createSpot,
		arg.ID, arg.FacilityID, arg.Number, arg.Kind, arg.State, arg.Version, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const getSpot = `SELECT ` + spotColumns + ` FROM spots WHERE id = $1`

func (q *Queries) GetSpot(ctx context.Context, db DBTX, id uuid.UUID) (SpotRow, error) {
	return scanSpot(db.QueryRow(ctx, getSpot, id))
}

func (q *Queries) GetSpotForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (SpotRow, error) {
	return scanSpot(db.QueryRow(ctx, getSpot+` FOR UPDATE`, id))
}

type UpdateSpotStateParams struct {
	ID          uuid.UUID
	State       string
	Version     int64
	PrevVersion int64
	UpdatedAt   time.Time
}

const updateSpotState = `
UPDATE spots
SET state = $2, version = $3, updated_at = $4
WHERE id = $1 AND version = $5`

func (q *Queries) UpdateSpotState(ctx context.Context, db DBTX, arg UpdateSpotStateParams) (int64, error) {
	tag, err := db.Exec(ctx, updateSpotState, arg.ID, arg.State, arg.Version, arg.UpdatedAt, arg.PrevVersion)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const listSpotsByFacility = `SELECT ` + spotColumns + ` FROM spots WHERE facility_id = $1 ORDER BY number`

func (q *Queries) ListSpotsByFacility(ctx context.Context, db DBTX, facilityID uuid.UUID) ([]SpotRow, error) {
	rows, err := db.Query(ctx, listSpotsByFacility, facilityID)
	return collect(rows, err, scanSpot)
}

const listSpots = `SELECT ` + spotColumns + ` FROM spots ORDER BY facility_id, number`

func (q *Queries) ListSpots(ctx context.Context, db DBTX) ([]SpotRow, error) {
	rows, err := db.Query(ctx, listSpots)
	return collect(rows, err, scanSpot)
}
