package bootstrap

import (
	"collabflow/cmd/bootstrap/components"
	"collabflow/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule loads the environment once and hands narrower slices to the
// components that only need one section.
var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	),
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	fx.Provide(NewStorage),
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
