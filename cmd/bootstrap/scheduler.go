package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"parking-core/internal/pkg/config"
	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

const jobTimeout = time.Minute

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(
		StartScheduler,
	),
)

// StartScheduler runs the recovery pass once before traffic is served and
// then keeps recovery and outbox dispatch on their cron schedules.
func StartScheduler(
	lc fx.Lifecycle,
	jobs config.JobsConfig,
	recovery commands.RecoveryCommands,
	dispatcher commands.OutboxDispatcher,
	logger *slog.Logger,
) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	if _, err := c.AddFunc(jobs.RecoverySchedule, func() {
		runRecovery(recovery, logger)
	}); err != nil {
		return errs.Wrapf(err, "invalid RECOVERY_SCHEDULE %q", jobs.RecoverySchedule)
	}
	if _, err := c.AddFunc(jobs.OutboxSchedule, func() {
		runDispatch(dispatcher, logger)
	}); err != nil {
		return errs.Wrapf(err, "invalid OUTBOX_SCHEDULE %q", jobs.OutboxSchedule)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			result, err := recovery.Run(ctx)
			if err != nil {
				return errs.Wrap(err, "startup recovery pass")
			}
			logger.Info("startup recovery pass finished",
				"flagged", result.Flagged,
				"resolved", result.Resolved,
			)
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			done := c.Stop()
			select {
			case <-done.Done():
			case <-ctx.Done():
				logger.Warn("scheduled jobs still running at shutdown")
			}
			return nil
		},
	})
	return nil
}

func runRecovery(recovery commands.RecoveryCommands, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := recovery.Run(ctx)
	if err != nil {
		logger.Error("recovery pass failed", "error", err)
		return
	}
	if result.Flagged > 0 || result.Resolved > 0 {
		logger.Warn("recovery pass found inconsistencies",
			"flagged", result.Flagged,
			"resolved", result.Resolved,
		)
	}
}

func runDispatch(dispatcher commands.OutboxDispatcher, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	result, err := dispatcher.Dispatch(ctx)
	if err != nil {
		logger.Error("outbox dispatch failed", "error", err)
		return
	}
	if result.Claimed > 0 {
		logger.Debug("outbox dispatched",
			"claimed", result.Claimed,
			"sent", result.Sent,
			"failed", result.Failed,
			"dead", result.Dead,
		)
	}
}
