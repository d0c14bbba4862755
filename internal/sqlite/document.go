package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/repository"
)

// DocumentStore implements project.DocumentStore for SQLite. Save rewrites
// every row inside one transaction, matching the whole-document overwrite
// contract of the file store.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Load reassembles the application document from the database.
func (s *DocumentStore) Load(ctx context.Context) (*project.Document, error) {
	doc := &project.Document{}

	err := s.db.QueryRowContext(ctx, `SELECT active_project_id FROM app_state WHERE id = 1`).
		Scan(&doc.ActiveProjectID)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load app state: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, source_directory, auxiliary_label, current_round, last_viewed_file, created_at
		FROM projects
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &project.Project{Rounds: map[int][]string{}}
		if err := rows.Scan(&p.ID, &p.Name, &p.SourceDir, &p.AuxLabel, &p.CurrentRound, &p.LastViewedFile, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		doc.Projects = append(doc.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	for _, p := range doc.Projects {
		if err := s.loadSelections(ctx, p); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (s *DocumentStore) loadSelections(ctx context.Context, p *project.Project) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT round, filename
		FROM round_selections
		WHERE project_id = ?
		ORDER BY round ASC, position ASC
	`, p.ID)
	if err != nil {
		return fmt.Errorf("failed to load selections for %s: %w", p.ID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var round int
		var filename string
		if err := rows.Scan(&round, &filename); err != nil {
			return fmt.Errorf("failed to scan selection: %w", err)
		}
		p.Rounds[round] = append(p.Rounds[round], filename)
	}
	return rows.Err()
}

// Save replaces the stored document in one transaction.
func (s *DocumentStore) Save(ctx context.Context, doc *project.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM round_selections`,
		`DELETE FROM projects`,
		`DELETE FROM app_state`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear state: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO app_state (id, active_project_id) VALUES (1, ?)`,
		doc.ActiveProjectID,
	); err != nil {
		return fmt.Errorf("failed to save app state: %w", err)
	}

	for i, p := range doc.Projects {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, source_directory, auxiliary_label, current_round, last_viewed_file, position, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.SourceDir, p.AuxLabel, p.CurrentRound, p.LastViewedFile, i, p.CreatedAt); err != nil {
			return fmt.Errorf("failed to save project %s: %w", p.ID, err)
		}

		for round, selections := range p.Rounds {
			for pos, filename := range selections {
				if _, err := tx.ExecContext(ctx, `
					INSERT INTO round_selections (project_id, round, position, filename)
					VALUES (?, ?, ?, ?)
				`, p.ID, round, pos, filename); err != nil {
					return fmt.Errorf("failed to save selections for %s: %w", p.ID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state: %w", err)
	}
	return nil
}
