package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/domain/session"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, sessions SessionService) {
	h := &toolHandlers{sessions: sessions}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_catalog",
		Description: "Load the project catalog for this session and return page 1. Reuses the catalog if already open.",
	}, h.openCatalog)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_page",
		Description: "Return the current page, summary and pagination without changing anything.",
	}, h.getPage)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_filter",
		Description: "Constrain one dimension (status, propertyType, group, city) to an exact value. Empty value clears it. Resets to page 1.",
	}, h.setFilter)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "clear_filters",
		Description: "Remove all filters and the search query. Resets to page 1.",
	}, h.clearFilters)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_projects",
		Description: "Case-insensitive text search over name, location and builder. Ignores dimension filters. Resets to page 1.",
	}, h.searchProjects)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "go_to_page",
		Description: "Jump to a 1-based page. Out-of-range pages leave the view unchanged.",
	}, h.goToPage)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "next_page",
		Description: "Advance one page if there is one.",
	}, h.nextPage)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "prev_page",
		Description: "Go back one page if there is one.",
	}, h.prevPage)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_facets",
		Description: "List the distinct values of each filter dimension in the loaded catalog.",
	}, h.listFacets)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reload_catalog",
		Description: "Fetch the projects again. Filters, search and page are reset.",
	}, h.reloadCatalog)
}

type toolHandlers struct {
	sessions SessionService
}

// resolve finds the catalog session for a call. An explicit id must exist;
// otherwise the transport session keys the catalog, opening it on first use.
func (h *toolHandlers) resolve(ctx context.Context, req *sdkmcp.CallToolRequest, explicit string) (*session.Session, error) {
	if explicit != "" {
		return h.sessions.Get(explicit)
	}

	id := getSessionID(ctx)
	if id == "" && req != nil && req.Session != nil {
		id = req.Session.ID()
	}
	if id == "" {
		id = defaultSessionID
	}
	return h.sessions.Ensure(ctx, id)
}

func (h *toolHandlers) openCatalog(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return viewResult(sess, nil)
}

func (h *toolHandlers) getPage(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return viewResult(sess, nil)
}

func (h *toolHandlers) setFilter(ctx context.Context, req *sdkmcp.CallToolRequest, in SetFilterParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	changed := sess.Catalog.SetFilter(project.Dimension(in.Dimension), in.Value)
	return viewResult(sess, &changed)
}

func (h *toolHandlers) clearFilters(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	sess.Catalog.ClearFilters()
	return viewResult(sess, nil)
}

func (h *toolHandlers) searchProjects(ctx context.Context, req *sdkmcp.CallToolRequest, in SearchProjectsParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	sess.Catalog.Search(in.Query)
	return viewResult(sess, nil)
}

func (h *toolHandlers) goToPage(ctx context.Context, req *sdkmcp.CallToolRequest, in GoToPageParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	changed := sess.Catalog.GoToPage(in.Page)
	return viewResult(sess, &changed)
}

func (h *toolHandlers) nextPage(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	changed := sess.Catalog.NextPage()
	return viewResult(sess, &changed)
}

func (h *toolHandlers) prevPage(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	changed := sess.Catalog.PrevPage()
	return viewResult(sess, &changed)
}

func (h *toolHandlers) listFacets(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return jsonResult(FacetsResult{SessionID: sess.ID, Facets: sess.Catalog.Facets()})
}

func (h *toolHandlers) reloadCatalog(ctx context.Context, req *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, any, error) {
	sess, err := h.resolve(ctx, req, in.SessionID)
	if err != nil {
		return nil, nil, toolError(err)
	}
	if _, err := h.sessions.Reload(ctx, sess.ID); err != nil {
		return nil, nil, toolError(err)
	}
	return viewResult(sess, nil)
}

func viewResult(sess *session.Session, changed *bool) (*sdkmcp.CallToolResult, any, error) {
	return jsonResult(CatalogView{
		SessionID: sess.ID,
		Changed:   changed,
		View:      sess.Catalog.View(),
	})
}

func jsonResult(v any) (*sdkmcp.CallToolResult, any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, nil, fmt.Errorf("encode tool result: %w", err)
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil, nil
}
