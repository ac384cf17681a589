package source

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rpggio/listings/internal/domain/project"
)

// ErrMissingProjects indicates a document without a "projects" array.
var ErrMissingProjects = errors.New(`document has no "projects" array`)

// Document is the shape of projects-data.json.
type Document struct {
	Projects []project.Project `json:"projects"`
}

// Decode reads a project document. Entries are passed through without
// validation; a missing or null "projects" field is an error.
func Decode(r io.Reader) ([]project.Project, error) {
	var raw struct {
		Projects json.RawMessage `json:"projects"`
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode project document: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode project document: trailing data")
	}
	if len(raw.Projects) == 0 || string(raw.Projects) == "null" {
		return nil, ErrMissingProjects
	}

	var projects []project.Project
	if err := json.Unmarshal(raw.Projects, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return projects, nil
}

// Encode writes projects as a project document.
func Encode(w io.Writer, projects []project.Project) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Document{Projects: projects}); err != nil {
		return fmt.Errorf("encode project document: %w", err)
	}
	return nil
}
