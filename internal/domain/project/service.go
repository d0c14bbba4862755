package project

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service handles project lifecycle operations. Every mutation is written
// through to the store; on a failed write the in-memory document keeps the
// mutation and the error is surfaced so the caller can retry.
type Service struct {
	store            DocumentStore
	defaultSourceDir string
	logger           *slog.Logger
}

// NewService creates a new project service.
func NewService(store DocumentStore, defaultSourceDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, defaultSourceDir: defaultSourceDir, logger: logger}
}

// Active resolves the active project. A dangling active id is repaired to
// the first project and the repair persisted best-effort; an empty document
// yields nil.
func (s *Service) Active(ctx context.Context, doc *Document) *Project {
	if p := doc.Find(doc.ActiveProjectID); p != nil {
		return p
	}
	if len(doc.Projects) == 0 {
		return nil
	}
	first := doc.Projects[0]
	doc.ActiveProjectID = first.ID
	if err := s.store.Save(ctx, doc); err != nil {
		s.logger.Warn("persisting active project repair failed", "error", err)
	}
	return first
}

// Create adds a new project, makes it active, and persists. Missing name or
// source directory fall back to safe defaults.
func (s *Service) Create(ctx context.Context, doc *Document, name, sourceDir string) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		name = "New Project"
	}
	if strings.TrimSpace(sourceDir) == "" {
		sourceDir = s.defaultSourceDir
	}

	p := NewProject(name, sourceDir)
	doc.Projects = append(doc.Projects, p)
	doc.ActiveProjectID = p.ID

	if err := s.store.Save(ctx, doc); err != nil {
		return p, fmt.Errorf("saving state: %w", err)
	}
	return p, nil
}

// Switch makes the project with the given id active. Unknown ids are
// rejected without touching the document.
func (s *Service) Switch(ctx context.Context, doc *Document, id string) error {
	if doc.Find(id) == nil {
		return ErrProjectNotFound
	}
	doc.ActiveProjectID = id
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Delete removes the project with the given id. Deleting the last remaining
// project is rejected. If the removed project was active, the first
// remaining project becomes active.
func (s *Service) Delete(ctx context.Context, doc *Document, id string) error {
	if len(doc.Projects) <= 1 {
		return ErrLastProject
	}

	idx := -1
	for i, p := range doc.Projects {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProjectNotFound
	}

	doc.Projects = append(doc.Projects[:idx], doc.Projects[idx+1:]...)
	if doc.ActiveProjectID == id {
		doc.ActiveProjectID = doc.Projects[0].ID
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// UpdateSettings mutates the active project's label and source directory.
// A document without a resolvable active project makes this a no-op.
func (s *Service) UpdateSettings(ctx context.Context, doc *Document, auxLabel, sourceDir string) error {
	p := s.Active(ctx, doc)
	if p == nil {
		return nil
	}
	p.AuxLabel = auxLabel
	if strings.TrimSpace(sourceDir) != "" {
		p.SourceDir = sourceDir
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}
