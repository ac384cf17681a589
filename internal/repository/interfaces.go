package repository

import (
	"context"

	"github.com/rpggio/listings/internal/domain/project"
)

// ProjectStore persists an ordered project list.
type ProjectStore interface {
	// Replace swaps the stored list for projects, keeping their order.
	Replace(ctx context.Context, projects []project.Project) error
	// Fetch returns the stored list in order. It satisfies project.Source.
	Fetch(ctx context.Context) ([]project.Project, error)
	Count(ctx context.Context) (int, error)
}
