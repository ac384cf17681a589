package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/listings/internal/config"
	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/domain/session"
	"github.com/rpggio/listings/internal/mcp"
	"github.com/rpggio/listings/internal/source"
	"github.com/rpggio/listings/internal/sqlite"
	"github.com/rpggio/listings/internal/transport"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.ModeStdio {
		logWriter = os.Stderr
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open project store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	src, err := source.New(cfg.Source, store)
	if err != nil {
		logger.Error("failed to configure project source", "error", err)
		os.Exit(1)
	}
	logger.Info("project source configured", "kind", cfg.Source.Kind, "source", fmt.Sprint(src))

	sessions := session.NewService(session.Config{
		Source:  src,
		Catalog: project.Options{PageSize: cfg.Catalog.PageSize},
		TTL:     cfg.Catalog.SessionTTL,
		Logger:  logger,
	})

	mcpServer := mcp.NewServer(mcp.Config{
		Sessions: sessions,
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Transport.Mode == config.ModeStdio {
		err = runStdioMode(ctx, logger, mcpServer)
	} else {
		err = runHTTPMode(ctx, logger, cfg, sessions, mcpServer)
	}
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openStore opens the SQLite project table when the catalog reads from it.
// Other source kinds get a nil store and a no-op close.
func openStore(cfg config.Config, logger *slog.Logger) (project.Source, func(), error) {
	if cfg.Source.Kind != config.SourceSQLite {
		return nil, func() {}, nil
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	logger.Info("database ready", "path", cfg.DB.Path)

	return sqlite.NewProjectRepository(db), func() { _ = db.Close() }, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is canceled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(ctx context.Context, logger *slog.Logger, cfg config.Config, sessions *session.Service, mcpServer *sdkmcp.Server) error {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(r *http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: cfg.Catalog.SessionTTL,
		},
	)

	router := transport.NewServer(sessions, logger)
	mountMCP(router, mcpHandler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.RunJanitor(ctx, cfg.Catalog.SessionTTL/2)
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func mountMCP(router chi.Router, handler http.Handler) {
	router.Handle("/mcp", handler)
	router.Handle("/mcp/*", handler)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
