package source

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rpggio/listings/internal/domain/project"
)

// HTTPSource fetches a project document with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch implements project.Source. Non-2xx responses are failures.
func (s HTTPSource) Fetch(ctx context.Context) ([]project.Project, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch projects: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch projects: unexpected status %s", resp.Status)
	}
	return Decode(resp.Body)
}

func (s HTTPSource) String() string {
	return s.URL
}
