// Package app wires the project and round services around the single shared
// application document and exposes the operation surface consumed by the
// web and MCP layers. Every operation runs under one mutex so concurrent
// callers serialize the full read-modify-write-persist cycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/domain/round"
	"github.com/avenclark/photosift/internal/media"
)

// App owns the loaded document and the services operating on it.
type App struct {
	mu       sync.Mutex
	doc      *project.Document
	projects *project.Service
	rounds   *round.Service
	logger   *slog.Logger
}

// New creates the application façade around an already-loaded document.
func New(doc *project.Document, projects *project.Service, rounds *round.Service, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{doc: doc, projects: projects, rounds: rounds, logger: logger}
}

// ProjectInfo is a list entry for the project switcher.
type ProjectInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// View is everything the UI needs to render the active project's current
// round.
type View struct {
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name"`
	SourceDir   string          `json:"source_directory"`
	AuxLabel    string          `json:"auxiliary_label"`
	Round       int             `json:"round"`
	Candidates  []string        `json:"candidates"`
	Selections  []string        `json:"selections"`
	Selected    map[string]bool `json:"-"`
	ViewedFile  string          `json:"viewed_file"`
	Projects    []ProjectInfo   `json:"projects"`
}

// GetActiveProjectView resolves the active project and assembles its round
// view, applying the viewed-file auto-pick policy.
func (a *App) GetActiveProjectView(ctx context.Context) *View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buildView(ctx)
}

func (a *App) buildView(ctx context.Context) *View {
	v := &View{Candidates: []string{}, Selections: []string{}, Selected: map[string]bool{}}
	for _, p := range a.doc.Projects {
		v.Projects = append(v.Projects, ProjectInfo{ID: p.ID, Name: p.Name, Active: p.ID == a.doc.ActiveProjectID})
	}

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return v
	}

	v.ProjectID = p.ID
	v.ProjectName = p.Name
	v.SourceDir = p.SourceDir
	v.AuxLabel = p.AuxLabel
	v.Round = p.CurrentRound
	if c := a.rounds.Candidates(p); c != nil {
		v.Candidates = c
	}
	if s := a.rounds.Selections(p); s != nil {
		v.Selections = s
	}
	for _, f := range v.Selections {
		v.Selected[f] = true
	}
	v.ViewedFile = a.rounds.ResolveViewed(ctx, a.doc, p, "")
	return v
}

// CreateProject adds a project and makes it active.
func (a *App) CreateProject(ctx context.Context, name, sourceDir string) (*project.Project, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.projects.Create(ctx, a.doc, name, sourceDir)
}

// SwitchProject makes the given project active.
func (a *App) SwitchProject(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.projects.Switch(ctx, a.doc, id)
}

// DeleteProject removes the given project, refusing to remove the last one.
func (a *App) DeleteProject(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.projects.Delete(ctx, a.doc, id)
}

// UpdateSettings mutates the active project's label and source directory.
func (a *App) UpdateSettings(ctx context.Context, auxLabel, sourceDir string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.projects.UpdateSettings(ctx, a.doc, auxLabel, sourceDir)
}

// ToggleSelection flips membership of filename in the active project's
// current round and reports the new state.
func (a *App) ToggleSelection(ctx context.Context, filename string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return false, project.ErrProjectNotFound
	}
	return a.rounds.Toggle(ctx, a.doc, p, filename)
}

// SetViewedFile remembers filename as the one being shown.
func (a *App) SetViewedFile(ctx context.Context, filename string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return "", project.ErrProjectNotFound
	}
	return a.rounds.ResolveViewed(ctx, a.doc, p, filename), nil
}

// NextRound advances the active project to the next round.
func (a *App) NextRound(ctx context.Context, force bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return project.ErrProjectNotFound
	}
	return a.rounds.Advance(ctx, a.doc, p, force)
}

// FinishRound exports the active project's current round snapshot and
// returns the path written.
func (a *App) FinishRound(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return "", project.ErrProjectNotFound
	}
	return a.rounds.ExportSnapshot(p)
}

// SwitchRound jumps the active project to the given round.
func (a *App) SwitchRound(ctx context.Context, roundNumber int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return project.ErrProjectNotFound
	}
	return a.rounds.Switch(ctx, a.doc, p, roundNumber)
}

// ImagePath resolves filename against the active project's source directory
// for serving. Only bare image filenames are accepted; anything that could
// escape the directory is rejected.
func (a *App) ImagePath(ctx context.Context, filename string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	p := a.projects.Active(ctx, a.doc)
	if p == nil {
		return "", project.ErrProjectNotFound
	}
	if filename == "" || filepath.Base(filename) != filename || !media.IsImage(filename) {
		return "", fmt.Errorf("%w: bad filename %q", round.ErrInvalidInput, filename)
	}
	return filepath.Join(p.SourceDir, filename), nil
}
