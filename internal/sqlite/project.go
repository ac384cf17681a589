package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/listings/internal/domain/project"
)

// ProjectRepository implements repository.ProjectStore for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Replace swaps all stored projects for the given list in one transaction
func (r *ProjectRepository) Replace(ctx context.Context, projects []project.Project) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("failed to clear projects: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (
			position, name, image, status, location, builder, bhk,
			price_range, property_type, grp, city, details_url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range projects {
		_, err := stmt.ExecContext(ctx,
			i,
			p.Name,
			p.Image,
			p.Status,
			p.Location,
			p.Builder,
			p.BHK,
			p.PriceRange,
			p.PropertyType,
			p.Group,
			p.City,
			p.DetailsURL,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Fetch returns all stored projects in their original order
func (r *ProjectRepository) Fetch(ctx context.Context) ([]project.Project, error) {
	query := `
		SELECT name, image, status, location, builder, bhk,
			price_range, property_type, grp, city, details_url
		FROM projects
		ORDER BY position ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		var p project.Project
		err := rows.Scan(
			&p.Name,
			&p.Image,
			&p.Status,
			&p.Location,
			&p.Builder,
			&p.BHK,
			&p.PriceRange,
			&p.PropertyType,
			&p.Group,
			&p.City,
			&p.DetailsURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return projects, nil
}

// Count returns the number of stored projects
func (r *ProjectRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}
