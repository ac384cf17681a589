package mcp

import (
	"context"
	"log/slog"

	"github.com/rpggio/listings/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// SessionService defines session operations needed by MCP.
type SessionService interface {
	Ensure(ctx context.Context, id string) (*session.Session, error)
	Get(id string) (*session.Session, error)
	Reload(ctx context.Context, id string) (*session.Session, error)
}

// Config contains server configuration.
type Config struct {
	Sessions SessionService
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "listings",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(sessionMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Sessions)

	return server
}
