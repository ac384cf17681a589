// Command import copies a project list from a JSON file or URL into the
// SQLite store that the "sqlite" source kind serves from.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rpggio/listings/internal/config"
	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/repository"
	"github.com/rpggio/listings/internal/source"
	"github.com/rpggio/listings/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	from := flag.String("from", "", "JSON file path or http(s) URL to import (defaults to source.location)")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite database path")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	srcCfg, err := importSource(cfg.Source, *from)
	if err != nil {
		logger.Error("invalid import source", "error", err)
		os.Exit(2)
	}
	src, err := source.New(srcCfg, nil)
	if err != nil {
		logger.Error("invalid import source", "error", err)
		os.Exit(2)
	}

	if dir := filepath.Dir(*dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to prepare database path", "error", err)
			os.Exit(1)
		}
	}
	db, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	n, err := importProjects(ctx, sqlite.NewProjectRepository(db), src)
	if err != nil {
		logger.Error("import failed", "error", err)
		os.Exit(1)
	}
	logger.Info("import complete", "projects", n, "db", *dbPath, "source", fmt.Sprint(src))
}

// importSource picks the source to copy from. An explicit location wins and
// its kind follows its scheme; otherwise the configured file or http source
// is used.
func importSource(cfg config.SourceConfig, from string) (config.SourceConfig, error) {
	if from != "" {
		kind := config.SourceFile
		if strings.HasPrefix(from, "http://") || strings.HasPrefix(from, "https://") {
			kind = config.SourceHTTP
		}
		return config.SourceConfig{Kind: kind, Location: from}, nil
	}
	if cfg.Kind == config.SourceSQLite {
		return config.SourceConfig{}, errors.New("configured source is sqlite; pass -from")
	}
	return cfg, nil
}

// importProjects replaces the stored list with the source's projects and
// returns how many were stored.
func importProjects(ctx context.Context, store repository.ProjectStore, src project.Source) (int, error) {
	projects, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch projects: %w", err)
	}
	if err := store.Replace(ctx, projects); err != nil {
		return 0, fmt.Errorf("store projects: %w", err)
	}
	return store.Count(ctx)
}
