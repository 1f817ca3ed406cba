//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"collabflow/internal/infra/db"
	"collabflow/internal/pkg/config"
	"collabflow/internal/pkg/errs"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	pgUser     = "collab"
	pgPassword = "collab"
	pgPort     = nat.Port("5432/tcp")
)

// postgresServer is one container shared by every suite in the process.
// Each suite gets its own database inside it.
type postgresServer struct {
	container testcontainers.Container
	host      string
	port      nat.Port
}

var (
	serverOnce sync.Once
	server     *postgresServer
	serverErr  error
)

func sharedPostgres(t *testing.T) *postgresServer {
	t.Helper()
	serverOnce.Do(func() {
		server, serverErr = startPostgres()
	})
	require.NoError(t, serverErr, "failed to start postgres container")
	return server
}

func startPostgres() (*postgresServer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:17",
		ExposedPorts: []string{string(pgPort)},
		Env: map[string]string{
			"POSTGRES_USER":     pgUser,
			"POSTGRES_PASSWORD": pgPassword,
			"POSTGRES_DB":       "postgres",
		},
		Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
		// durability is irrelevant for throwaway data
		Cmd: []string{
			"postgres",
			"-c", "fsync=off",
			"-c", "full_page_writes=off",
			"-c", "synchronous_commit=off",
			"-c", "max_connections=200",
		},
		WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
			return dsn(host, port, "postgres")
		}).WithStartupTimeout(time.Minute),
		Labels: map[string]string{"purpose": "collabflow-e2e"},
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, errs.Wrap(err, "start container")
	}
	host, err := c.Host(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "container host")
	}
	port, err := c.MappedPort(ctx, pgPort)
	if err != nil {
		return nil, errs.Wrap(err, "container port")
	}
	slog.Info("postgres container ready", "host", host, "port", port.Port())
	return &postgresServer{container: c, host: host, port: port}, nil
}

func dsn(host string, port nat.Port, database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port.Port(), database)
}

// freshDatabase creates an empty database with the schema applied and drops
// it when the test finishes.
func (p *postgresServer) freshDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()
	name := "collab_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin := dsn(p.host, p.port, "postgres")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	adminPool, err := pgxpool.New(ctx, admin)
	require.NoError(t, err, "admin connection failed")
	defer adminPool.Close()

	// template1 can be briefly locked while other suites create databases
	var createErr error
	for attempt := 0; attempt < 5; attempt++ {
		if _, createErr = adminPool.Exec(ctx, "CREATE DATABASE "+name); createErr == nil {
			break
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	require.NoError(t, createErr, "failed to create test database")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		cleanupPool, err := pgxpool.New(ctx, admin)
		if err != nil {
			slog.Warn("cleanup connection failed", "database", name, "error", err.Error())
			return
		}
		defer cleanupPool.Close()
		if _, err := cleanupPool.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	cfg := config.DBConfig{
		Host:     p.host,
		Port:     p.port.Port(),
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
	}
	pool, closePool, err := db.Connect(cfg)
	require.NoError(t, err, "database connection failed")
	t.Cleanup(closePool)

	require.NoError(t, applyMigrations(ctx, pool), "migrations failed")
	return pool, cfg
}

// applyMigrations runs db/migrations/*.sql in file name order. Atlas owns
// migrations in deployments; tests only need the resulting schema.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", file)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return errs.Wrapf(err, "apply migration %s", file)
		}
	}
	return nil
}

// findMigrationsDir walks up from the package directory go test runs in.
func findMigrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		cand := filepath.Join(dir, "db", "migrations")
		if info, err := os.Stat(cand); err == nil && info.IsDir() {
			return cand, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New("db/migrations not found above the test directory")
		}
		dir = parent
	}
}
