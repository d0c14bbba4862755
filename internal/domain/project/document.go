package project

import (
	"context"
	"errors"
	"log/slog"

	"github.com/avenclark/photosift/internal/repository"
)

// Document is the whole persisted application state: every project plus the
// identifier of the active one.
type Document struct {
	ActiveProjectID string     `json:"active_project_id"`
	Projects        []*Project `json:"projects"`
}

// Find returns the project with the given id, or nil.
func (d *Document) Find(id string) *Project {
	for _, p := range d.Projects {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// DefaultDocument builds the state used when no stored document exists: a
// single project at round 1 pointing at the configured source directory.
func DefaultDocument(sourceDir string) *Document {
	p := NewProject("Default", sourceDir)
	return &Document{
		ActiveProjectID: p.ID,
		Projects:        []*Project{p},
	}
}

// Migrate upgrades documents written by older releases. It is applied on
// every load and is safe to run repeatedly: projects without a round map get
// an empty one, and a legacy flat selection list is moved into the entry for
// the project's current round.
func Migrate(doc *Document) {
	for _, p := range doc.Projects {
		if p.CurrentRound < 1 {
			p.CurrentRound = 1
		}
		if p.Rounds == nil {
			p.Rounds = map[int][]string{}
		}
		if len(p.LegacySelected) > 0 {
			if len(p.Rounds[p.CurrentRound]) == 0 {
				p.Rounds[p.CurrentRound] = p.LegacySelected
			}
		}
		p.LegacySelected = nil
	}
}

// LoadDocument reads the stored document, falling back to a fresh default
// when the store is empty or unreadable. Read failures are logged, never
// returned: losing the file means starting over, not crashing.
func LoadDocument(ctx context.Context, store DocumentStore, defaultSourceDir string, logger *slog.Logger) *Document {
	if logger == nil {
		logger = slog.Default()
	}
	doc, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.Warn("stored state unreadable, starting fresh", "error", err)
		}
		doc = DefaultDocument(defaultSourceDir)
	}
	Migrate(doc)
	return doc
}
