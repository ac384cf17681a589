// Package testserver runs the full HTTP surface (REST API and streamable MCP
// endpoint) in-process for end-to-end tests.
package testserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/domain/session"
	"github.com/rpggio/listings/internal/mcp"
	"github.com/rpggio/listings/internal/sqlite"
	"github.com/rpggio/listings/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	Sessions *session.Service
	Store    *sqlite.ProjectRepository
}

// New starts a server whose catalogs load from an in-memory SQLite store
// seeded with projects.
func New(t *testing.T, projects []project.Project) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	store := sqlite.NewProjectRepository(db)
	require.NoError(t, store.Replace(t.Context(), projects))

	ts := NewWithSource(t, store)
	ts.Store = store
	return ts
}

// NewWithSource starts a server whose catalogs load from src.
func NewWithSource(t *testing.T, src project.Source) *TestServer {
	t.Helper()

	sessions := session.NewService(session.Config{Source: src})
	mcpServer := mcp.NewServer(mcp.Config{Sessions: sessions})

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	router := transport.NewServer(sessions, nil)
	router.Handle("/mcp", mcpHandler)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Sessions: sessions}
}

// ConnectMCP opens an MCP client session against the server's /mcp endpoint.
func (ts *TestServer) ConnectMCP(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(t.Context(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}
