package components

import (
	"time"

	"collabflow/internal/domain/trust"
	"collabflow/internal/infra/payment"
	"collabflow/internal/infra/reference"
	"collabflow/internal/infra/tier"
	"collabflow/internal/pkg/clock"
	"collabflow/internal/pkg/config"
	"collabflow/internal/usecase/commands"
	"collabflow/internal/usecase/queries"
	"collabflow/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseAdaptersModule,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewSettings,
	NewTrustPolicy,
	func(s commands.Settings) *time.Location { return s.CalendarLocation },
)

var usecaseAdaptersModule = fx.Module("usecase/adapters",
	fx.Provide(
		fx.Annotate(
			NewReferenceGenerator,
			fx.As(new(shared.ReferenceGenerator)),
		),
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			NewTierProvider,
			fx.As(new(shared.TierProvider)),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewRequestUseCase,
		commands.NewPaymentUseCase,
		commands.NewAvailabilityUseCase,
		commands.NewExpiryUseCase,
		func(e commands.ExpiryCommands) shared.LazyExpirer { return e },
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewRequestQueries,
		queries.NewAvailabilityQueries,
		queries.NewTrustQueries,
	),
)

func NewSettings(cfg config.Config) (commands.Settings, error) {
	loc, err := cfg.Engine.Location()
	if err != nil {
		return commands.Settings{}, err
	}
	return commands.Settings{
		ResponseWindow:      cfg.Engine.ResponseWindow,
		DefaultMaxRevisions: cfg.Engine.DefaultMaxRevisions,
		MinBudgetMinor:      cfg.Engine.MinBudgetMinor,
		DefaultCurrency:     cfg.Engine.DefaultCurrency,
		CalendarLocation:    loc,
	}, nil
}

func NewTrustPolicy(cfg config.Config) (trust.Policy, error) {
	p := trust.Policy{
		Window:              cfg.Trust.Window,
		WarningThreshold:    cfg.Trust.WarningThreshold,
		SuspensionThreshold: cfg.Trust.SuspensionThreshold,
		SuspensionDurations: cfg.Trust.SuspensionDurations,
	}
	if err := p.Validate(); err != nil {
		return trust.Policy{}, err
	}
	return p, nil
}

func NewReferenceGenerator(cfg config.Config) (*reference.Generator, error) {
	return reference.NewGenerator(cfg.Snowflake.NodeID)
}

func NewPaymentGateway(cfg config.PaymentConfig) (*payment.Sandbox, error) {
	return payment.NewSandbox(cfg.SandboxMode)
}

func NewTierProvider(lookup tier.Lookup, cfg config.Config) (*tier.Provider, error) {
	return tier.NewProvider(lookup, cfg.Tier.Fees, cfg.Tier.DefaultTier)
}
