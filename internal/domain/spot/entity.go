package spot

import (
	"time"

	"parking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrSpotNotFound        = errs.NewKind("spot not found", errs.ErrNotFound)
	ErrSpotNotAvailable    = errs.NewKind("spot is not available", errs.ErrConflict)
	ErrSpotBusy            = errs.NewKind("spot has an active reservation", errs.ErrConflict)
	ErrInvalidTransition   = errs.NewKind("invalid spot state transition", errs.ErrConflict)
	ErrVersionMismatch     = errs.Mark(errs.NewKind("spot version does not match", errs.ErrConflict), ErrInvalidTransition)
	ErrNoActiveReservation = errs.NewKind("spot has no active reservation", errs.ErrConflict)
	ErrDuplicateNumber     = errs.NewKind("spot number already exists in facility", errs.ErrConflict)
	ErrInvalidNumber       = errs.NewKind("spot number must be positive", errs.ErrInvalidInput)
	ErrInvalidKind         = errs.NewKind("spot kind must be car or motorcycle", errs.ErrInvalidInput)
	ErrInvalidState        = errs.NewKind("unknown spot state", errs.ErrInvalidInput)
)

// transitions is the closed state machine; anything not listed is rejected.
var transitions = map[State]map[Event]State{
	StateFree: {
		EventReserve: StateReserved,
		EventRetire:  StateRetired,
	},
	StateReserved: {
		EventCheckIn: StateOccupied,
		EventRelease: StateFree,
	},
	StateOccupied: {
		EventRelease: StateFree,
	},
	StateRetired: {
		EventRestore: StateFree,
	},
}

type Spot struct {
	id         uuid.UUID
	facilityID uuid.UUID
	number     int
	kind       Kind
	state      State
	version    int64
	createdAt  time.Time
	updatedAt  time.Time
}

func NewSpot(facilityID uuid.UUID, number int, kind Kind, now time.Time) (*Spot, error) {
	if number <= 0 {
		return nil, ErrInvalidNumber
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	return &Spot{
		id:         uuid.New(),
		facilityID: facilityID,
		number:     number,
		kind:       kind,
		state:      StateFree,
		version:    1,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(id, facilityID uuid.UUID, number int, kind Kind, state State, version int64, createdAt, updatedAt time.Time) *Spot {
	return &Spot{
		id:         id,
		facilityID: facilityID,
		number:     number,
		kind:       kind,
		state:      state,
		version:    version,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Apply moves the spot through ev and bumps the version. The error tells the
// caller why the current state refuses the event.
func (s *Spot) Apply(ev Event, now time.Time) error {
	next, ok := transitions[s.state][ev]
	if !ok {
		return rejection(s.state, ev)
	}
	s.state = next
	s.version++
	s.updatedAt = now
	return nil
}

// CheckVersion guards optimistic callers holding a stale read.
func (s *Spot) CheckVersion(expected *int64) error {
	if expected == nil || *expected == s.version {
		return nil
	}
	return errs.Wrapf(ErrVersionMismatch, "expected version %d, current %d", *expected, s.version)
}

func rejection(from State, ev Event) error {
	switch ev {
	case EventReserve:
		return errs.Wrapf(ErrSpotNotAvailable, "spot is %s", from)
	case EventCheckIn, EventRelease:
		if !from.IsActive() {
			return ErrNoActiveReservation
		}
	case EventRetire, EventRestore:
		if from.IsActive() {
			return ErrSpotBusy
		}
	}
	return errs.Wrapf(ErrInvalidTransition, "%s from %s", ev, from)
}

func (s *Spot) BelongsTo(facilityID uuid.UUID) bool {
	return s.facilityID == facilityID
}

func (s *Spot) IsFree() bool   { return s.state == StateFree }
func (s *Spot) IsActive() bool { return s.state.IsActive() }

func (s *Spot) ID() uuid.UUID         { return s.id }
func (s *Spot) FacilityID() uuid.UUID { return s.facilityID }
func (s *Spot) Number() int           { return s.number }
func (s *Spot) Kind() Kind            { return s.kind }
func (s *Spot) State() State          { return s.state }
func (s *Spot) Version() int64        { return s.version }
func (s *Spot) CreatedAt() time.Time  { return s.createdAt }
func (s *Spot) UpdatedAt() time.Time  { return s.updatedAt }
