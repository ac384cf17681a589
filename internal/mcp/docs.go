package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `listings serves a real-estate project catalog, one catalog per session.

Workflow:
1) open_catalog (or any tool without session_id) loads the project list for your session.
2) Narrow it with set_filter (exact match on status, propertyType, group, city) or search_projects
   (case-insensitive text over name, location and builder).
3) Page through results with get_page, go_to_page, next_page, prev_page. Pages hold 6 projects by default.
4) list_facets returns the values each filter dimension accepts.

Filters and search do not combine: whichever ran last decides the list. clear_filters resets both.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "listings://docs/filtering",
		Name:        "filtering",
		Title:       "Catalog filtering and paging",
		Description: "How filters, search and pagination interact",
		Content: `# Filtering and paging

## Dimension filters

- Dimensions: ` + "`status`, `propertyType`, `group`, `city`" + `.
- A project is kept when every constrained dimension equals its field exactly (case-sensitive).
- An empty value removes the constraint. Unknown dimensions are ignored (` + "`changed: false`" + `).

## Search

- Matches when name, location or builder contains the query, ignoring case.
- A blank query matches every project.
- Search ignores dimension filters, and a later filter change ignores the query.
  The view's ` + "`predicate`" + ` field says which one produced the list.

## Paging

- Any filter or search change returns to page 1.
- Out-of-range page numbers are ignored (` + "`changed: false`" + `).
- ` + "`pagination.hidden`" + ` is true when there is at most one page.

## Empty results

` + "`page.outcome`" + ` tells why a page is empty: ` + "`no_matches`, `empty_catalog`, `loading`, `not_loaded`, `load_failed`" + `.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
