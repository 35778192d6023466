package postgres

import (
	"context"
	"fmt"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProjectStore = (*ProjectStore)(nil)

// ProjectStore implements driven.ProjectStore using PostgreSQL
type ProjectStore struct {
	db *DB
}

// NewProjectStore creates a new PostgreSQL-backed ProjectStore
func NewProjectStore(db *DB) *ProjectStore {
	return &ProjectStore{db: db}
}

// List returns all registered projects
func (s *ProjectStore) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	projects := []domain.Project{}
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: scan project: %v", domain.ErrStorage, err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list projects: %v", domain.ErrStorage, err)
	}
	return projects, nil
}
