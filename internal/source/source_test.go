package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpggio/listings/internal/config"
	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `{
  "projects": [
    {
      "name": "Lodha Amara",
      "image": "images/amara.webp",
      "status": "Under Construction",
      "location": "Kolshet Road, Thane",
      "builder": "Lodha Group",
      "bhk": "1, 2, 3 BHK",
      "priceRange": "₹75 L - ₹1.6 Cr",
      "propertyType": "Apartment",
      "group": "Premium",
      "city": "Thane",
      "detailsUrl": "lodha-amara.html"
    },
    {"name": "Godrej Woods", "status": "Ready to Move"}
  ]
}`

func TestDecode(t *testing.T) {
	projects, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)
	require.Len(t, projects, 2)
	require.Equal(t, "Kolshet Road, Thane", projects[0].Location)
	require.Equal(t, "₹75 L - ₹1.6 Cr", projects[0].PriceRange)
	require.Equal(t, "lodha-amara.html", projects[0].DetailsURL)
	require.Equal(t, "Godrej Woods", projects[1].Name)
	require.Empty(t, projects[1].City)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: `<html>`},
		{name: "missing field", doc: `{"items": []}`},
		{name: "null field", doc: `{"projects": null}`},
		{name: "wrong type", doc: `{"projects": {"name": "x"}}`},
		{name: "empty body", doc: ``},
		{name: "trailing data", doc: `{"projects": [{"name": "A"}]} <html>oops`},
		{name: "second document", doc: `{"projects": []}{"projects": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader(`{}`))
	require.ErrorIs(t, err, ErrMissingProjects)
}

func TestDecode_EmptyArray(t *testing.T) {
	projects, err := Decode(strings.NewReader(`{"projects": []}`))
	require.NoError(t, err)
	require.NotNil(t, projects)
	require.Empty(t, projects)
}

func TestEncodeRoundTrip(t *testing.T) {
	want, err := Decode(strings.NewReader(sampleDocument))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, want))

	got, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects-data.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleDocument), 0o644))

	projects, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}.Fetch(context.Background())
	require.Error(t, err)
}

func TestHTTPSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/projects-data.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleDocument))
		case "/broken.json":
			_, _ = w.Write([]byte(`{"projects": [`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	ctx := context.Background()

	projects, err := HTTPSource{URL: server.URL + "/projects-data.json"}.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	_, err = HTTPSource{URL: server.URL + "/missing.json"}.Fetch(ctx)
	require.ErrorContains(t, err, "404")

	_, err = HTTPSource{URL: server.URL + "/broken.json"}.Fetch(ctx)
	require.Error(t, err)
}

func TestHTTPSource_LoadErrorInCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	catalog := project.NewCatalog(project.Options{})
	err := catalog.Load(context.Background(), HTTPSource{URL: server.URL})
	require.True(t, project.IsLoadError(err))
	require.Equal(t, project.OutcomeLoadFailed, catalog.Page().Outcome)
}

func TestNew(t *testing.T) {
	src, err := New(config.SourceConfig{Kind: config.SourceFile, Location: "a.json"}, nil)
	require.NoError(t, err)
	require.Equal(t, FileSource{Path: "a.json"}, src)

	src, err = New(config.SourceConfig{Kind: config.SourceHTTP, Location: "http://x/p.json"}, nil)
	require.NoError(t, err)
	require.IsType(t, HTTPSource{}, src)

	store := &mocks.Source{}
	src, err = New(config.SourceConfig{Kind: config.SourceSQLite}, store)
	require.NoError(t, err)
	require.Same(t, store, src)

	_, err = New(config.SourceConfig{Kind: config.SourceSQLite}, nil)
	require.ErrorIs(t, err, ErrNoStore)

	_, err = New(config.SourceConfig{Kind: "ftp"}, nil)
	require.Error(t, err)
}
