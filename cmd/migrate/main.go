// Command migrate applies db/migrations with the atlas CLI.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"collabflow/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	dir := flag.String("dir", "db/migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending files without applying them")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(*dir, *bin, *dryRun, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir, bin string, dryRun bool, logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), bin)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.MigrationURL(),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}
	for _, f := range res.Applied {
		logger.Info("applied", "file", f.Name, "statements", len(f.Applied))
	}
	logger.Info("migrations complete", "current", res.Current, "target", res.Target, "dry_run", dryRun)
	return nil
}
