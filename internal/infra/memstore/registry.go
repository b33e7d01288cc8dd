package memstore

import (
	"context"
	"sort"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/spot"
	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type facilityRepo struct {
	tx *memTx
}

func (r *facilityRepo) Create(_ context.Context, f *facility.Facility) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.st.facilities[f.ID()]; exists {
		return ErrDuplicateID
	}
	r.tx.st.facilities[f.ID()] = facilityRow{
		id:        f.ID(),
		name:      f.Name(),
		location:  f.Location(),
		capacity:  f.Capacity(),
		freeCount: f.FreeCount(),
		createdAt: f.CreatedAt(),
		updatedAt: f.UpdatedAt(),
	}
	return nil
}

func (r *facilityRepo) FindByID(_ context.Context, id uuid.UUID) (*facility.Facility, error) {
	row, ok := r.tx.st.facilities[id]
	if !ok {
		return nil, facility.ErrFacilityNotFound
	}
	return row.toDomain(), nil
}

func (r *facilityRepo) List(_ context.Context) ([]*facility.Facility, error) {
	rows := make([]facilityRow, 0, len(r.tx.st.facilities))
	for _, row := range r.tx.st.facilities {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].name != rows[j].name {
			return rows[i].name < rows[j].name
		}
		return rows[i].id.String() < rows[j].id.String()
	})
	out := make([]*facility.Facility, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *facilityRepo) AdjustCounters(_ context.Context, id uuid.UUID, capacityDelta, freeDelta int) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.st.facilities[id]
	if !ok {
		return facility.ErrFacilityNotFound
	}
	row.capacity += capacityDelta
	row.freeCount += freeDelta
	if row.capacity < 0 || row.freeCount < 0 || row.freeCount > row.capacity {
		return errs.Wrapf(ErrConstraint, "facility %s counters capacity=%d free=%d", id, row.capacity, row.freeCount)
	}
	r.tx.st.facilities[id] = row
	return nil
}

func (row facilityRow) toDomain() *facility.Facility {
	return facility.Reconstruct(row.id, row.name, row.location, row.capacity, row.freeCount, row.createdAt, row.updatedAt)
}

type spotRepo struct {
	tx *memTx
}

func (r *spotRepo) Create(_ context.Context, s *spot.Spot) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.st.spots[s.ID()]; exists {
		return ErrDuplicateID
	}
	if _, ok := r.tx.st.facilities[s.FacilityID()]; !ok {
		return facility.ErrFacilityNotFound
	}
	for _, other := range r.tx.st.spots {
		if other.facilityID == s.FacilityID() && other.number == s.Number() {
			return spot.ErrDuplicateNumber
		}
	}
	r.tx.st.spots[s.ID()] = spotRowOf(s)
	return nil
}

func (r *spotRepo) FindByID(_ context.Context, id uuid.UUID) (*spot.Spot, error) {
	row, ok := r.tx.st.spots[id]
	if !ok {
		return nil, spot.ErrSpotNotFound
	}
	return row.toDomain(), nil
}

// FindForUpdate needs no row lock: write transactions are serialized by the store.
func (r *spotRepo) FindForUpdate(ctx context.Context, id uuid.UUID) (*spot.Spot, error) {
	return r.FindByID(ctx, id)
}

func (r *spotRepo) Save(_ context.Context, s *spot.Spot, prevVersion int64) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.st.spots[s.ID()]
	if !ok {
		return spot.ErrSpotNotFound
	}
	if row.version != prevVersion {
		return errs.Wrapf(spot.ErrVersionMismatch, "stored version %d, expected %d", row.version, prevVersion)
	}
	row.state = string(s.State())
	row.version = s.Version()
	row.updatedAt = s.UpdatedAt()
	r.tx.st.spots[s.ID()] = row
	return nil
}

func (r *spotRepo) ListByFacility(_ context.Context, facilityID uuid.UUID) ([]*spot.Spot, error) {
	return r.collect(func(row spotRow) bool { return row.facilityID == facilityID }), nil
}

func (r *spotRepo) ListAll(_ context.Context) ([]*spot.Spot, error) {
	return r.collect(func(spotRow) bool { return true }), nil
}

func (r *spotRepo) collect(keep func(spotRow) bool) []*spot.Spot {
	rows := make([]spotRow, 0)
	for _, row := range r.tx.st.spots {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].facilityID != rows[j].facilityID {
			return rows[i].facilityID.String() < rows[j].facilityID.String()
		}
		return rows[i].number < rows[j].number
	})
	out := make([]*spot.Spot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func spotRowOf(s *spot.Spot) spotRow {
	return spotRow{
		id:         s.ID(),
		facilityID: s.FacilityID(),
		number:     s.Number(),
		kind:       string(s.Kind()),
		state:      string(s.State()),
		version:    s.Version(),
		createdAt:  s.CreatedAt(),
		updatedAt:  s.UpdatedAt(),
	}
}

func (row spotRow) toDomain() *spot.Spot {
	return spot.Reconstruct(
		row.id, row.facilityID, row.number,
		spot.Kind(row.kind), spot.State(row.state), row.version,
		row.createdAt, row.updatedAt,
	)
}
