// Command migrate applies the embedded schema to the configured database.
//
// The default mode runs the embedded migrations in order, the same pass the
// service runs with DB_AUTO_MIGRATE. The atlas modes shell out to the atlas
// CLI: "inspect" prints the live schema and "atlas-apply" diffs the live
// schema against the embedded SQL and applies the plan.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"parking-core/internal/infra/db"
	"parking-core/internal/pkg/config"
	"parking-core/internal/pkg/errs"
	"parking-core/migrations"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	modeApply      = "apply"
	modeInspect    = "inspect"
	modeAtlasApply = "atlas-apply"
)

type options struct {
	mode     string
	devURL   string
	atlasBin string
	dryRun   bool
	timeout  time.Duration
}

func main() {
	var opts options
	flag.StringVar(&opts.mode, "mode", modeApply, "apply | inspect | atlas-apply")
	flag.StringVar(&opts.devURL, "dev-url", "docker://postgres/17/dev?search_path=public", "atlas dev database used to compute diffs")
	flag.StringVar(&opts.atlasBin, "atlas", "atlas", "path to the atlas binary")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "print the atlas plan without applying it")
	flag.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	var dbCfg config.DBConfig
	if err := envconfig.Process("", &dbCfg); err != nil {
		slog.Error("failed to read database config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := run(ctx, opts, dbCfg); err != nil {
		slog.Error("migration failed", "mode", opts.mode, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, dbCfg config.DBConfig) error {
	switch opts.mode {
	case modeApply:
		return applyEmbedded(ctx, dbCfg)
	case modeInspect:
		return inspect(ctx, opts, dbCfg)
	case modeAtlasApply:
		return atlasApply(ctx, opts, dbCfg)
	default:
		return errs.Newf("unknown mode %q", opts.mode)
	}
}

func applyEmbedded(ctx context.Context, dbCfg config.DBConfig) error {
	pool, cleanup, err := db.Connect(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := migrations.Apply(ctx, pool); err != nil {
		return err
	}
	slog.Info("migrations applied", "database", dbCfg.DBName)
	return nil
}

func inspect(ctx context.Context, opts options, dbCfg config.DBConfig) error {
	client, err := atlasexec.NewClient(".", opts.atlasBin)
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}
	out, err := client.SchemaInspect(ctx, &atlasexec.SchemaInspectParams{
		URL:    dbCfg.BuildDSN(),
		Format: "sql",
	})
	if err != nil {
		return errs.Wrap(err, "inspect schema")
	}
	fmt.Println(out)
	return nil
}

func atlasApply(ctx context.Context, opts options, dbCfg config.DBConfig) error {
	schemaFile, cleanup, err := writeDesiredSchema()
	if err != nil {
		return err
	}
	defer cleanup()

	client, err := atlasexec.NewClient(".", opts.atlasBin)
	if err != nil {
		return errs.Wrap(err, "init atlas client")
	}
	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         dbCfg.BuildDSN(),
		To:          "file://" + schemaFile,
		DevURL:      opts.devURL,
		DryRun:      opts.dryRun,
		AutoApprove: true,
	})
	if err != nil {
		return errs.Wrap(err, "atlas schema apply")
	}

	if opts.dryRun {
		for _, stmt := range res.Changes.Pending {
			fmt.Println(stmt)
		}
		slog.Info("atlas plan computed", "pending", len(res.Changes.Pending))
		return nil
	}
	slog.Info("atlas schema applied", "statements", len(res.Changes.Applied))
	return nil
}

// writeDesiredSchema concatenates the embedded migrations into one file so
// atlas can treat it as the desired state.
func writeDesiredSchema() (string, func(), error) {
	names, err := migrations.Names()
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString(migrations.BookkeepingTable)
	b.WriteString("\n")
	for _, name := range names {
		sql, err := migrations.Read(name)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(sql)
		b.WriteString("\n")
	}

	dir, err := os.MkdirTemp("", "parking-schema-")
	if err != nil {
		return "", nil, errs.Wrap(err, "create temp dir")
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	path := filepath.Join(dir, "schema.sql")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		cleanup()
		return "", nil, errs.Wrap(err, "write schema")
	}
	return path, cleanup, nil
}
