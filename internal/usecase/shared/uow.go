package shared

import (
	"context"
	"time"

	"parking-core/internal/domain/facility"
	"parking-core/internal/domain/reservation"
	"parking-core/internal/domain/spot"
	"parking-core/internal/domain/tariff"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Facilities() FacilityRepository
	Spots() SpotRepository
	Plans() PlanRepository
	Ledger() LedgerRepository
	Outbox() OutboxRepository
	Reconciliation() ReconciliationRepository
}

type FacilityRepository interface {
	Create(ctx context.Context, f *facility.Facility) error
	FindByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error)
	List(ctx context.Context) ([]*facility.Facility, error)
	// AdjustCounters applies deltas atomically in storage, never read-modify-write.
	AdjustCounters(ctx context.Context, id uuid.UUID, capacityDelta, freeDelta int) error
}

type SpotRepository interface {
	Create(ctx context.Context, s *spot.Spot) error
	FindByID(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
	// FindForUpdate locks the spot row until the transaction ends.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*spot.Spot, error)
	// Save persists a transition; it fails when the stored version is not prevVersion.
	Save(ctx context.Context, s *spot.Spot, prevVersion int64) error
	ListByFacility(ctx context.Context, facilityID uuid.UUID) ([]*spot.Spot, error)
	ListAll(ctx context.Context) ([]*spot.Spot, error)
}

type PlanRepository interface {
	Create(ctx context.Context, p *tariff.Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*tariff.Plan, error)
	// FindForShare blocks concurrent updates of the plan while a reservation references it.
	FindForShare(ctx context.Context, id uuid.UUID) (*tariff.Plan, error)
	FindForUpdate(ctx context.Context, id uuid.UUID) (*tariff.Plan, error)
	Update(ctx context.Context, p *tariff.Plan) error
	// ListCandidates returns non-retired plans effective at or before `at`
	// that are global or scoped to facilityID.
	ListCandidates(ctx context.Context, facilityID *uuid.UUID, at time.Time) ([]*tariff.Plan, error)
	List(ctx context.Context, facilityID *uuid.UUID) ([]*tariff.Plan, error)
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, r *reservation.Reservation) error
	// Finalize only touches a reservation that has not ended yet.
	Finalize(ctx context.Context, r *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// FindActiveBySpot returns nil without error when the spot has no active reservation.
	FindActiveBySpot(ctx context.Context, spotID uuid.UUID) (*reservation.Reservation, error)
	ListActive(ctx context.Context) ([]*reservation.Reservation, error)
	Find(ctx context.Context, filter LedgerFilter) ([]*reservation.Reservation, error)

	AppendPayment(ctx context.Context, p *reservation.Payment) error
	// FindPayment returns nil without error when the reservation is unpaid.
	FindPayment(ctx context.Context, reservationID uuid.UUID) (*reservation.Payment, error)
	ListPayments(ctx context.Context, reservationIDs []uuid.UUID) ([]*reservation.Payment, error)
}

// LedgerFilter narrows ledger reads. From/To bound started_at, or ended_at
// when EndedOnly is set. Nil fields do not filter. Results are ordered by
// started_at descending; After resumes strictly past a previous page.
// An empty Status matches both active and ended reservations.
type LedgerFilter struct {
	FacilityID *uuid.UUID
	SpotID     *uuid.UUID
	From       *time.Time
	To         *time.Time
	EndedOnly  bool
	Status     reservation.Status
	After      *LedgerCursor
	Limit      int
}

type LedgerCursor struct {
	StartedAt time.Time
	ID        uuid.UUID
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	// ClaimPending leases up to limit due events until now+lease and counts
	// the attempt; concurrent dispatchers skip leased rows.
	ClaimPending(ctx context.Context, now time.Time, lease time.Duration, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string, retryAt time.Time, dead bool) error
}

type ReconciliationRepository interface {
	// Flag records a finding once; repeated detections of an open flag are ignored.
	Flag(ctx context.Context, flag ReconciliationFlag) (bool, error)
	ListOpen(ctx context.Context) ([]ReconciliationFlag, error)
	// Resolve closes an open flag whose condition is no longer detected.
	Resolve(ctx context.Context, id uuid.UUID, at time.Time) error
}
