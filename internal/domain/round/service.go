package round

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/avenclark/photosift/internal/domain/project"
)

// Service is the round state machine for a single project: candidate
// resolution, selection toggling, viewed-file tracking, snapshot export, and
// round advancement. The caller owns the document and passes it in so every
// mutation can be written through as a whole.
type Service struct {
	store     project.DocumentStore
	source    CandidateSource
	snapshots SnapshotWriter
	logger    *slog.Logger
}

// NewService creates a new round service.
func NewService(store project.DocumentStore, source CandidateSource, snapshots SnapshotWriter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, source: source, snapshots: snapshots, logger: logger}
}

// Candidates resolves the current round's candidate list. Round 1 scans the
// project's source directory; later rounds are exactly the selections kept
// in the previous round, independent of the filesystem.
func (s *Service) Candidates(p *project.Project) []string {
	if p.CurrentRound <= 1 {
		return s.source.List(p.SourceDir)
	}
	return p.Rounds[p.CurrentRound-1]
}

// Selections returns the current round's kept set, creating an empty entry
// on first touch.
func (s *Service) Selections(p *project.Project) []string {
	if p.Rounds == nil {
		p.Rounds = map[int][]string{}
	}
	if _, ok := p.Rounds[p.CurrentRound]; !ok {
		p.Rounds[p.CurrentRound] = []string{}
	}
	return p.Rounds[p.CurrentRound]
}

// Toggle flips membership of filename in the current round's kept set and
// persists. It reports the new membership state. The filename is not checked
// against the candidate list.
func (s *Service) Toggle(ctx context.Context, doc *project.Document, p *project.Project, filename string) (bool, error) {
	if filename == "" {
		return false, fmt.Errorf("%w: filename required", ErrInvalidInput)
	}

	sel := s.Selections(p)
	selected := true
	if i := slices.Index(sel, filename); i >= 0 {
		sel = slices.Delete(sel, i, i+1)
		selected = false
	} else {
		sel = append(sel, filename)
	}
	p.Rounds[p.CurrentRound] = sel

	if err := s.store.Save(ctx, doc); err != nil {
		return selected, fmt.Errorf("saving state: %w", err)
	}
	return selected, nil
}

// ResolveViewed determines which candidate the UI should show. An explicit
// request wins unconditionally and is remembered. Otherwise a remembered
// file that is empty or no longer among the candidates is replaced by the
// first candidate, or cleared when there are none. Repairs are persisted
// best-effort.
func (s *Service) ResolveViewed(ctx context.Context, doc *project.Document, p *project.Project, requested string) string {
	if requested != "" {
		if p.LastViewedFile != requested {
			p.LastViewedFile = requested
			s.saveBestEffort(ctx, doc)
		}
		return p.LastViewedFile
	}

	candidates := s.Candidates(p)
	if p.LastViewedFile != "" && slices.Contains(candidates, p.LastViewedFile) {
		return p.LastViewedFile
	}

	resolved := ""
	if len(candidates) > 0 {
		resolved = candidates[0]
	}
	if p.LastViewedFile != resolved {
		p.LastViewedFile = resolved
		s.saveBestEffort(ctx, doc)
	}
	return resolved
}

type snapshot struct {
	Round      int      `json:"round"`
	Selections []string `json:"selections"`
}

// ExportSnapshot writes the current round's kept set to a JSON file inside
// the project's source directory and returns the path written.
func (s *Service) ExportSnapshot(p *project.Project) (string, error) {
	sel := p.Rounds[p.CurrentRound]
	if sel == nil {
		sel = []string{}
	}

	data, err := json.MarshalIndent(snapshot{Round: p.CurrentRound, Selections: sel}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	path := filepath.Join(p.SourceDir, fmt.Sprintf("round_%d_selections.json", p.CurrentRound))
	if err := s.snapshots.Write(path, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	s.logger.Info("round snapshot exported", "project", p.ID, "round", p.CurrentRound, "path", path)
	return path, nil
}

// Advance moves the project to the next round. It fails with
// ErrEmptySelection when nothing is kept in the current round, and with
// ErrConfirmRequired when the next round already holds selections and force
// is false. A forced advance clears exactly the next round's stale
// selections; rounds further ahead are left untouched.
func (s *Service) Advance(ctx context.Context, doc *project.Document, p *project.Project, force bool) error {
	if len(s.Selections(p)) == 0 {
		return ErrEmptySelection
	}

	next := p.CurrentRound + 1
	if len(p.Rounds[next]) > 0 {
		if !force {
			return ErrConfirmRequired
		}
		p.Rounds[next] = []string{}
	}

	p.CurrentRound = next
	p.LastViewedFile = ""

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// Switch jumps directly to the given round. The jump is unguarded: any
// positive round is accepted, backward jumps included, and selections
// already recorded there are preserved as-is.
func (s *Service) Switch(ctx context.Context, doc *project.Document, p *project.Project, roundNumber int) error {
	if roundNumber < 1 {
		return fmt.Errorf("%w: round must be >= 1", ErrInvalidInput)
	}

	p.CurrentRound = roundNumber
	p.LastViewedFile = ""

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (s *Service) saveBestEffort(ctx context.Context, doc *project.Document) {
	if err := s.store.Save(ctx, doc); err != nil {
		s.logger.Warn("persisting viewed file failed", "error", err)
	}
}
