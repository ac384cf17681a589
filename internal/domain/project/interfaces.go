package project

import "context"

// Source supplies the full project list in display order.
type Source interface {
	Fetch(ctx context.Context) ([]Project, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) ([]Project, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) ([]Project, error) {
	return f(ctx)
}
