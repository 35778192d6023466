package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
	"github.com/mutabaa-labs/mutabaa-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EntryStore = (*EntryStore)(nil)

// EntryStore implements driven.EntryStore using PostgreSQL
type EntryStore struct {
	db *DB
}

// NewEntryStore creates a new PostgreSQL-backed EntryStore
func NewEntryStore(db *DB) *EntryStore {
	return &EntryStore{db: db}
}

// List returns all entries for a project in insertion order.
// A project with no rows is domain.ErrNotFound, matching a missing log file.
func (s *EntryStore) List(ctx context.Context, projectID string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT project_id, text, ts
		FROM entries
		WHERE project_id = $1
		ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ProjectID, &e.Text, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", domain.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", domain.ErrStorage, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entry log for project %s", domain.ErrNotFound, projectID)
	}
	return entries, nil
}

// Append adds one entry to its project's log
func (s *EntryStore) Append(ctx context.Context, entry domain.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (project_id, text, ts)
		VALUES ($1, $2, $3)`, entry.ProjectID, entry.Text, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("%w: append entry: %v", domain.ErrStorage, err)
	}
	return nil
}

// Replace overwrites a project's log wholesale within one transaction
func (s *EntryStore) Replace(ctx context.Context, projectID string, entries []domain.Entry) error {
	err := s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE project_id = $1`, projectID); err != nil {
			return fmt.Errorf("delete entries: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO entries (project_id, text, ts)
			VALUES ($1, $2, $3)`)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, projectID, e.Text, e.Timestamp); err != nil {
				return fmt.Errorf("insert entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: replace entries: %v", domain.ErrStorage, err)
	}
	return nil
}

// ProjectIDs lists every project that has at least one entry
func (s *EntryStore) ProjectIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT project_id
		FROM entries
		ORDER BY project_id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list project IDs: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scan project ID: %v", domain.ErrStorage, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list project IDs: %v", domain.ErrStorage, err)
	}
	return ids, nil
}
