//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"collabflow/cmd/bootstrap"
	"collabflow/cmd/bootstrap/components"
	"collabflow/internal/infra/messaging"
	"collabflow/internal/infra/notify"
	"collabflow/internal/infra/tier"
	"collabflow/internal/infra/uow"
	"collabflow/internal/pkg/config"
	"collabflow/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// SharedSuite serves the real router over a private Postgres database.
// Every subtest starts from empty tables.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	pool, dbCfg := sharedPostgres(t).freshDatabase(t)
	s.DB = pool
	s.Config = testConfig(dbCfg)
	s.Router = startApp(t, pool, s.Config)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "failed to reset database state")
}

func testConfig(dbCfg config.DBConfig) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Store.Driver = config.StoreDriverPostgres
	// expiry is driven by reads in these tests, never by the background sweep
	cfg.Sweep.Enabled = false
	return cfg
}

// startApp wires the production modules around the given pool and stops
// the app when the test finishes.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()
	var router *gin.Engine

	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(
			func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
			func(cfg config.Config) config.SweepConfig { return cfg.Sweep },
			func() bootstrap.Storage {
				return bootstrap.Storage{
					UoW:       uow.NewPostgresUoW(pool),
					Notifier:  notify.NewJobNotifier(pool),
					Messenger: messaging.NewPostgresMessenger(pool),
					Tiers:     tier.NewPostgresLookup(pool),
				}
			},
			func() *gin.Engine { return gin.New() },
		),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "failed to start app")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop app", "error", err.Error())
		}
	})
	return router
}
