package session

import (
	"time"

	"github.com/rpggio/listings/internal/domain/project"
)

// Session is one visitor's catalog. ID and CreatedAt never change; last
// activity is tracked by the Service.
type Session struct {
	ID        string
	CreatedAt time.Time
	Catalog   *project.Catalog

	lastActivity time.Time
}

// SessionInfo describes a live session.
type SessionInfo struct {
	SessionID    string            `json:"session_id"`
	State        project.LoadState `json:"state"`
	CreatedAt    time.Time         `json:"created_at"`
	LastActivity time.Time         `json:"last_activity"`
}
