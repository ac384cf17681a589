package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/listings/internal/domain/project"
	"github.com/rpggio/listings/internal/domain/session"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "catalog session not found", RecoveryHint: "Call open_catalog to start a new session", cause: err}
	case errors.Is(err, session.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid session input", cause: err}
	case project.IsLoadError(err):
		return &APIError{Code: "LOAD_FAILED", Message: err.Error(), RecoveryHint: "Check the project source, then call reload_catalog", cause: err}
	case errors.Is(err, project.ErrSuperseded):
		return &APIError{Code: "SUPERSEDED", Message: "a newer reload replaced this one", RecoveryHint: "Call get_page", cause: err}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
