// Package filestore persists the application document as a single JSON file,
// rewritten in full on every save.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/repository"
)

// Store implements project.DocumentStore over one JSON file.
type Store struct {
	path string
}

// New creates a Store writing to the given path.
func New(path string) *Store {
	return &Store{path: path}
}

// Load reads and decodes the stored document. A missing file reports
// repository.ErrNotFound.
func (s *Store) Load(ctx context.Context) (*project.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var doc project.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return &doc, nil
}

// Save overwrites the stored document in full.
func (s *Store) Save(ctx context.Context, doc *project.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
