package functional_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/mcp"
	"github.com/rpggio/listings/internal/testserver"
	"github.com/rpggio/listings/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

var cities = []string{"Mumbai", "Thane", "Pune"}

func seedProjects(n int) []project.Project {
	projects := make([]project.Project, n)
	for i := range projects {
		status := project.StatusUnderConstruction
		switch i % 3 {
		case 1:
			status = project.StatusReadyToMove
		case 2:
			status = project.StatusUpcoming
		}
		city := cities[i%len(cities)]
		projects[i] = project.Project{
			Name:         fmt.Sprintf("Residency %02d", i+1),
			Image:        fmt.Sprintf("images/residency-%02d.jpg", i+1),
			Status:       status,
			Location:     "Sector 5, " + city,
			Builder:      "Sunteck",
			BHK:          "2, 3 BHK",
			PriceRange:   "₹1.2 Cr - ₹2.4 Cr",
			PropertyType: "Apartment",
			Group:        "Premium",
			City:         city,
			DetailsURL:   fmt.Sprintf("projects/residency-%02d.html", i+1),
		}
	}
	return projects
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) mcp.CatalogView {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	require.False(t, result.IsError, "%s returned error: %s", name, text.Text)

	var view mcp.CatalogView
	require.NoError(t, json.Unmarshal([]byte(text.Text), &view))
	return view
}

func getREST(t *testing.T, url string) transport.SessionView {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view transport.SessionView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestFunctional_BrowseOverMCP(t *testing.T) {
	ts := testserver.New(t, seedProjects(14))
	session := ts.ConnectMCP(t)

	view := callTool(t, session, "open_catalog", nil)
	require.Equal(t, project.StateReady, view.State)
	require.Equal(t, "Showing 1-6 of 14 projects", view.Summary)
	require.Equal(t, 3, view.Pagination.TotalPages)
	require.Equal(t, "Residency 01", view.Page.Items[0].Name)
	require.Equal(t, "₹1.2 Cr - ₹2.4 Cr", view.Page.Items[0].PriceRange)
	require.Equal(t, 100, view.Page.Items[0].AnimationDelayMS)

	view = callTool(t, session, "go_to_page", map[string]any{"page": 3})
	require.Equal(t, "Showing 13-14 of 14 projects", view.Summary)

	view = callTool(t, session, "set_filter", map[string]any{"dimension": "city", "value": "Thane"})
	require.Equal(t, 1, view.Pagination.CurrentPage)
	require.Equal(t, 5, view.Page.Total)
	require.True(t, view.Pagination.Hidden)
	for _, card := range view.Page.Items {
		require.Equal(t, "Thane", card.City)
	}

	view = callTool(t, session, "set_filter", map[string]any{"dimension": "status", "value": project.StatusReadyToMove})
	require.Equal(t, 5, view.Page.Total)

	view = callTool(t, session, "search_projects", map[string]any{"query": "sector 5, pune"})
	require.Equal(t, project.PredicateSearch, view.Predicate)
	require.Equal(t, 4, view.Page.Total)
}

func TestFunctional_MCPSessionVisibleOverREST(t *testing.T) {
	ts := testserver.New(t, seedProjects(8))
	session := ts.ConnectMCP(t)

	view := callTool(t, session, "next_page", nil)
	require.True(t, *view.Changed)

	rest := getREST(t, ts.Server.URL+"/api/sessions/"+view.SessionID)
	require.Equal(t, view.SessionID, rest.SessionID)
	require.Equal(t, 2, rest.Pagination.CurrentPage)
	require.Equal(t, "Showing 7-8 of 8 projects", rest.Summary)
}

func TestFunctional_SeparateClientsSeparateCatalogs(t *testing.T) {
	ts := testserver.New(t, seedProjects(10))
	first := ts.ConnectMCP(t)
	second := ts.ConnectMCP(t)

	a := callTool(t, first, "set_filter", map[string]any{"dimension": "city", "value": "Pune"})
	b := callTool(t, second, "get_page", nil)

	require.NotEqual(t, a.SessionID, b.SessionID)
	require.Equal(t, 3, a.Page.Total)
	require.Equal(t, 10, b.Page.Total)
	require.Equal(t, 2, ts.Sessions.Count())
}

func TestFunctional_EmptyStore(t *testing.T) {
	ts := testserver.New(t, nil)
	session := ts.ConnectMCP(t)

	view := callTool(t, session, "open_catalog", nil)
	require.Equal(t, project.StateReady, view.State)
	require.Equal(t, project.OutcomeEmptyCatalog, view.Page.Outcome)
	require.Equal(t, "No projects found", view.Summary)
	require.True(t, view.Pagination.Hidden)
}

func TestFunctional_MCPProtocolCompliance(t *testing.T) {
	ts := testserver.New(t, seedProjects(2))
	session := ts.ConnectMCP(t)

	initResult := session.InitializeResult()
	require.NotNil(t, initResult)
	require.Equal(t, "listings", initResult.ServerInfo.Name)
	require.NotEmpty(t, initResult.Instructions)

	resources, err := session.ListResources(context.Background(), nil)
	require.NoError(t, err)
	require.NotEmpty(t, resources.Resources)
	require.Equal(t, "listings://docs/filtering", resources.Resources[0].URI)
}
