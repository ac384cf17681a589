package mcp

import "github.com/rpggio/listings/internal/domain/project"

type SessionParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"catalog session id; defaults to the MCP session"`
}

type SetFilterParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"catalog session id; defaults to the MCP session"`
	Dimension string `json:"dimension" jsonschema:"one of status, propertyType, group, city"`
	Value     string `json:"value,omitempty" jsonschema:"exact value to keep; empty removes the constraint"`
}

type SearchProjectsParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"catalog session id; defaults to the MCP session"`
	Query     string `json:"query,omitempty" jsonschema:"case-insensitive text matched against name, location and builder"`
}

type GoToPageParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"catalog session id; defaults to the MCP session"`
	Page      int    `json:"page" jsonschema:"1-based page number"`
}

// CatalogView is the result of every catalog tool.
type CatalogView struct {
	SessionID string `json:"session_id"`
	Changed   *bool  `json:"changed,omitempty"`
	project.View
}

// FacetsResult lists selectable filter values.
type FacetsResult struct {
	SessionID string         `json:"session_id"`
	Facets    project.Facets `json:"facets"`
}
