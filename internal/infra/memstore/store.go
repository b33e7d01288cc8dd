// Package memstore is an in-process implementation of the unit of work.
// Each write transaction runs against a private copy of the committed state
// that replaces it on success, so a failed transaction leaves no trace.
package memstore

import (
	"context"
	"maps"
	"sync"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrReadOnly    = errs.NewKind("write attempted in read-only transaction", errs.ErrInternal)
	ErrConstraint  = errs.NewKind("storage constraint violated", errs.ErrInternal)
	ErrDuplicateID = errs.NewKind("duplicate primary key", errs.ErrInternal)
	ErrForeignKey  = errs.NewKind("referenced row does not exist", errs.ErrInternal)
)

type facilityRow struct {
	id        uuid.UUID
	name      string
	location  string
	capacity  int
	freeCount int
	createdAt time.Time
	updatedAt time.Time
}

type spotRow struct {
	id         uuid.UUID
	facilityID uuid.UUID
	number     int
	kind       string
	state      string
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

type planRow struct {
	id            uuid.UUID
	facilityID    *uuid.UUID
	description   string
	effectiveFrom time.Time
	baseCents     int64
	hourlyCents   int64
	dailyCents    int64
	retiredAt     *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type reservationRow struct {
	id          uuid.UUID
	spotID      uuid.UUID
	facilityID  uuid.UUID
	userID      uuid.UUID
	planID      uuid.UUID
	startedAt   time.Time
	endedAt     *time.Time
	amountCents *int64
}

type paymentRow struct {
	id             uuid.UUID
	reservationID  uuid.UUID
	method         string
	amountCents    int64
	paidAt         time.Time
	idempotencyKey string
}

type flagRow struct {
	flag       shared.ReconciliationFlag
	resolvedAt *time.Time
}

type state struct {
	facilities   map[uuid.UUID]facilityRow
	spots        map[uuid.UUID]spotRow
	plans        map[uuid.UUID]planRow
	reservations map[uuid.UUID]reservationRow
	payments     map[uuid.UUID]paymentRow
	outbox       map[uuid.UUID]shared.OutboxEvent
	flags        map[uuid.UUID]flagRow
}

func newState() *state {
	return &state{
		facilities:   make(map[uuid.UUID]facilityRow),
		spots:        make(map[uuid.UUID]spotRow),
		plans:        make(map[uuid.UUID]planRow),
		reservations: make(map[uuid.UUID]reservationRow),
		payments:     make(map[uuid.UUID]paymentRow),
		outbox:       make(map[uuid.UUID]shared.OutboxEvent),
		flags:        make(map[uuid.UUID]flagRow),
	}
}

// clone copies every table. Rows are values and their pointer fields are
// replaced, never written through, so the copy is isolated from the
// committed state.
func (s *state) clone() *state {
	return &state{
		facilities:   maps.Clone(s.facilities),
		spots:        maps.Clone(s.spots),
		plans:        maps.Clone(s.plans),
		reservations: maps.Clone(s.reservations),
		payments:     maps.Clone(s.payments),
		outbox:       maps.Clone(s.outbox),
		flags:        maps.Clone(s.flags),
	}
}

type Store struct {
	mu        sync.RWMutex
	committed *state
}

var _ shared.UnitOfWork = (*Store)(nil)

func NewStore() *Store {
	return &Store{committed: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.committed.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	s.committed = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(ctx, &memTx{st: s.committed, readOnly: true})
}

type memTx struct {
	st       *state
	readOnly bool
}

func (t *memTx) writable() error {
	if t.readOnly {
		return ErrReadOnly
	}
	return nil
}

func (t *memTx) Facilities() shared.FacilityRepository           { return &facilityRepo{tx: t} }
func (t *memTx) Spots() shared.SpotRepository                    { return &spotRepo{tx: t} }
func (t *memTx) Plans() shared.PlanRepository                    { return &planRepo{tx: t} }
func (t *memTx) Ledger() shared.LedgerRepository                 { return &ledgerRepo{tx: t} }
func (t *memTx) Outbox() shared.OutboxRepository                 { return &outboxRepo{tx: t} }
func (t *memTx) Reconciliation() shared.ReconciliationRepository { return &reconciliationRepo{tx: t} }
