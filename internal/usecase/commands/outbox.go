package commands

import (
	"context"
	"log/slog"
	"time"

	"parking-core/internal/pkg/clock"
	"parking-core/internal/pkg/config"
	"parking-core/internal/usecase/shared"
)

const (
	outboxLease       = 30 * time.Second
	outboxBaseBackoff = 5 * time.Second
	outboxMaxBackoff  = 10 * time.Minute
)

type DispatchResult struct {
	Claimed int
	Sent    int
	Failed  int
	Dead    int
}

// OutboxDispatcher moves committed outbox events to the publisher. A crash
// between publish and mark leaves the lease to expire, so the event is
// published again.
type OutboxDispatcher interface {
	Dispatch(ctx context.Context) (*DispatchResult, error)
}

type outboxDispatcherImpl struct {
	uow         shared.UnitOfWork
	publisher   shared.EventPublisher
	clock       clock.Clock
	logger      *slog.Logger
	batchSize   int
	maxAttempts int
}

func NewOutboxDispatcher(uow shared.UnitOfWork, publisher shared.EventPublisher, jobs config.JobsConfig, clk clock.Clock, logger *slog.Logger) OutboxDispatcher {
	return &outboxDispatcherImpl{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		logger:      logger,
		batchSize:   max(jobs.OutboxBatchSize, 1),
		maxAttempts: max(jobs.OutboxMaxAttempts, 1),
	}
}

func (d *outboxDispatcherImpl) Dispatch(ctx context.Context) (*DispatchResult, error) {
	var claimed []shared.OutboxEvent
	err := d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		claimed, err = tx.Outbox().ClaimPending(ctx, d.clock.Now(), outboxLease, d.batchSize)
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{Claimed: len(claimed)}
	for _, ev := range claimed {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		pubErr := d.publisher.Publish(ctx, ev)
		if pubErr == nil {
			if err := d.markSent(ctx, ev); err != nil {
				return result, err
			}
			result.Sent++
			continue
		}

		dead := ev.Attempts >= d.maxAttempts
		if err := d.markFailed(ctx, ev, pubErr, dead); err != nil {
			return result, err
		}
		if dead {
			result.Dead++
			d.logger.ErrorContext(ctx, "outbox event dead-lettered",
				"event_id", ev.ID, "topic", ev.Topic, "attempts", ev.Attempts, "error", pubErr.Error())
		} else {
			result.Failed++
			d.logger.WarnContext(ctx, "outbox publish failed",
				"event_id", ev.ID, "topic", ev.Topic, "attempts", ev.Attempts, "error", pubErr.Error())
		}
	}
	return result, nil
}

func (d *outboxDispatcherImpl) markSent(ctx context.Context, ev shared.OutboxEvent) error {
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().MarkSent(ctx, ev.ID, d.clock.Now())
	})
}

func (d *outboxDispatcherImpl) markFailed(ctx context.Context, ev shared.OutboxEvent, cause error, dead bool) error {
	retryAt := d.clock.Now().Add(retryBackoff(ev.Attempts))
	return d.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Outbox().MarkFailed(ctx, ev.ID, cause.Error(), retryAt, dead)
	})
}

// retryBackoff doubles per attempt from outboxBaseBackoff up to outboxMaxBackoff.
func retryBackoff(attempts int) time.Duration {
	backoff := outboxBaseBackoff
	for i := 1; i < attempts && backoff < outboxMaxBackoff; i++ {
		backoff *= 2
	}
	return min(backoff, outboxMaxBackoff)
}
