package bootstrap

import (
	"context"
	"log/slog"

	"parking-core/internal/infra/messaging"
	"parking-core/internal/pkg/config"
	"parking-core/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if cfg.Messaging.AMQPURL == "" {
		logger.Info("AMQP_URL not set, domain events are written to the log")
		return messaging.NewLogPublisher(logger)
	}

	publisher := messaging.NewAMQPPublisher(cfg.Messaging.AMQPURL, cfg.Messaging.Exchange, logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
