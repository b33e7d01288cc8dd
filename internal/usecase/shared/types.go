package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SpotLocker gives mutual exclusion per spot id. release must be called
// exactly once on every path; calling it again is a no-op.
type SpotLocker interface {
	Acquire(ctx context.Context, spotID uuid.UUID) (release func(), err error)
}

// EventPublisher delivers outbox events to the outside world. Delivery is
// at least once; consumers deduplicate on the event id.
type EventPublisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

type OutboxStatus string

const (
	OutboxPending OutboxStatus = "pending"
	OutboxSent    OutboxStatus = "sent"
	OutboxDead    OutboxStatus = "dead"
)

const (
	TopicReservationCreated  = "reservation.created"
	TopicReservationReleased = "reservation.released"
	TopicPaymentRecorded     = "payment.recorded"
	TopicSpotChanged         = "spot.changed"
)

type OutboxEvent struct {
	ID        uuid.UUID
	Topic     string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	Status    OutboxStatus
	LastError string
	CreatedAt time.Time
}

type FlagKind string

const (
	// FlagOrphanSpot: spot reserved/occupied without an active reservation.
	FlagOrphanSpot FlagKind = "orphan_spot"
	// FlagOrphanReservation: active reservation whose spot is free or retired.
	FlagOrphanReservation FlagKind = "orphan_reservation"
	// FlagCounterDrift: facility counters disagree with its spots.
	FlagCounterDrift FlagKind = "counter_drift"
)

type ReconciliationFlag struct {
	ID         uuid.UUID
	Kind       FlagKind
	SubjectID  uuid.UUID
	Detail     string
	DetectedAt time.Time
}
