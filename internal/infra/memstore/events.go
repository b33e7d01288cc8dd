package memstore

import (
	"context"
	"sort"
	"time"

	"parking-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type outboxRepo struct {
	tx *memTx
}

func (r *outboxRepo) Enqueue(_ context.Context, event shared.OutboxEvent) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	if _, exists := r.tx.st.outbox[event.ID]; exists {
		return ErrDuplicateID
	}
	if event.Status == "" {
		event.Status = shared.OutboxPending
	}
	event.Payload = append([]byte(nil), event.Payload...)
	r.tx.st.outbox[event.ID] = event
	return nil
}

func (r *outboxRepo) ClaimPending(_ context.Context, now time.Time, lease time.Duration, limit int) ([]shared.OutboxEvent, error) {
	if err := r.tx.writable(); err != nil {
		return nil, err
	}
	due := make([]shared.OutboxEvent, 0)
	for _, ev := range r.tx.st.outbox {
		if ev.Status == shared.OutboxPending && !ev.RunAt.After(now) {
			due = append(due, ev)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].RunAt.Equal(due[j].RunAt) {
			return due[i].RunAt.Before(due[j].RunAt)
		}
		return due[i].CreatedAt.Before(due[j].CreatedAt)
	})
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	for i := range due {
		due[i].RunAt = now.Add(lease)
		due[i].Attempts++
		r.tx.st.outbox[due[i].ID] = due[i]
	}
	return due, nil
}

func (r *outboxRepo) MarkSent(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	ev, ok := r.tx.st.outbox[id]
	if !ok {
		return ErrForeignKey
	}
	ev.Status = shared.OutboxSent
	ev.RunAt = at
	ev.LastError = ""
	r.tx.st.outbox[id] = ev
	return nil
}

func (r *outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string, retryAt time.Time, dead bool) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	ev, ok := r.tx.st.outbox[id]
	if !ok {
		return ErrForeignKey
	}
	ev.LastError = reason
	ev.RunAt = retryAt
	if dead {
		ev.Status = shared.OutboxDead
	}
	r.tx.st.outbox[id] = ev
	return nil
}

// Events returns a snapshot of the outbox in creation order.
func (s *Store) Events() []shared.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]shared.OutboxEvent, 0, len(s.committed.outbox))
	for _, ev := range s.committed.outbox {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

type reconciliationRepo struct {
	tx *memTx
}

func (r *reconciliationRepo) Flag(_ context.Context, flag shared.ReconciliationFlag) (bool, error) {
	if err := r.tx.writable(); err != nil {
		return false, err
	}
	for _, row := range r.tx.st.flags {
		if row.resolvedAt == nil && row.flag.Kind == flag.Kind && row.flag.SubjectID == flag.SubjectID {
			return false, nil
		}
	}
	if flag.ID == uuid.Nil {
		flag.ID = uuid.New()
	}
	r.tx.st.flags[flag.ID] = flagRow{flag: flag}
	return true, nil
}

func (r *reconciliationRepo) ListOpen(_ context.Context) ([]shared.ReconciliationFlag, error) {
	out := make([]shared.ReconciliationFlag, 0)
	for _, row := range r.tx.st.flags {
		if row.resolvedAt == nil {
			out = append(out, row.flag)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DetectedAt.Equal(out[j].DetectedAt) {
			return out[i].DetectedAt.Before(out[j].DetectedAt)
		}
		return out[i].SubjectID.String() < out[j].SubjectID.String()
	})
	return out, nil
}

func (r *reconciliationRepo) Resolve(_ context.Context, id uuid.UUID, at time.Time) error {
	if err := r.tx.writable(); err != nil {
		return err
	}
	row, ok := r.tx.st.flags[id]
	if !ok || row.resolvedAt != nil {
		return nil
	}
	row.resolvedAt = &at
	r.tx.st.flags[id] = row
	return nil
}
