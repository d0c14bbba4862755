package project

import (
	"time"

	"github.com/google/uuid"
)

// Project is one culling workspace: a source directory plus the per-round
// history of kept filenames.
type Project struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	SourceDir      string           `json:"source_directory"`
	AuxLabel       string           `json:"auxiliary_label,omitempty"`
	CurrentRound   int              `json:"current_round"`
	Rounds         map[int][]string `json:"round_selections"`
	LastViewedFile string           `json:"last_viewed_file,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`

	// LegacySelected carries the flat selection list written by pre-round
	// releases. Migrate moves it into Rounds and clears it; it is never
	// written back.
	LegacySelected []string `json:"selected,omitempty"`
}

// NewProject creates a project open at round 1 with an empty round history.
func NewProject(name, sourceDir string) *Project {
	return &Project{
		ID:           uuid.NewString(),
		Name:         name,
		SourceDir:    sourceDir,
		CurrentRound: 1,
		Rounds:       map[int][]string{},
		CreatedAt:    time.Now(),
	}
}
