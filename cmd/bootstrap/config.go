package bootstrap

import (
	"parking-core/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the sections use cases take directly. Tests that
// supply their own config.Config reuse it.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.BillingConfig { return cfg.Billing },
	func(cfg config.Config) config.JobsConfig { return cfg.Jobs },
)
