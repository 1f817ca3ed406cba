package bootstrap

import (
	"log/slog"

	"collabflow/internal/infra/db"
	"collabflow/internal/infra/memstore"
	"collabflow/internal/infra/messaging"
	"collabflow/internal/infra/notify"
	"collabflow/internal/infra/tier"
	"collabflow/internal/infra/uow"
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/errs"
	"collabflow/internal/usecase/shared"

	"go.uber.org/fx"
)

// Storage bundles the ports whose implementation depends on STORE_DRIVER.
type Storage struct {
	fx.Out

	UoW       shared.UnitOfWork
	Notifier  shared.Notifier
	Messenger shared.Messenger
	Tiers     tier.Lookup
}

func NewStorage(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, cleanup, err := db.Connect(cfg.DB)
		if err != nil {
			return Storage{}, err
		}
		lc.Append(fx.StopHook(cleanup))
		return Storage{
			UoW:       uow.NewPostgresUoW(pool),
			Notifier:  notify.NewJobNotifier(pool),
			Messenger: messaging.NewPostgresMessenger(pool),
			Tiers:     tier.NewPostgresLookup(pool),
		}, nil
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store; state is lost on restart")
		return Storage{
			UoW:       memstore.New(),
			Notifier:  notify.NewLogNotifier(),
			Messenger: messaging.NewMemoryMessenger(),
			Tiers:     tier.NewMemoryLookup(),
		}, nil
	default:
		return Storage{}, errs.Newf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}
