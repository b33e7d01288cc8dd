package messaging

import (
	"context"
	"log/slog"

	"parking-core/internal/usecase/shared"
)

// LogPublisher writes events to the structured log. It is used when no
// broker URL is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ shared.EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event shared.OutboxEvent) error {
	p.logger.InfoContext(ctx, "domain event",
		slog.String("event_id", event.ID.String()),
		slog.String("topic", event.Topic),
		slog.Int("attempt", event.Attempts),
		slog.String("payload", string(event.Payload)),
	)
	return nil
}
