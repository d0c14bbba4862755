package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/repository"
)

func TestLoad_AbsentFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "state.json"))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := New(path).Load(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrNotFound)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "state.json"))

	p := project.NewProject("Wedding", "/photos/wedding")
	p.CurrentRound = 2
	p.Rounds[1] = []string{"a.png", "b.jpg"}
	p.Rounds[2] = []string{"a.png"}
	p.LastViewedFile = "a.png"
	doc := &project.Document{ActiveProjectID: p.ID, Projects: []*project.Project{p}}

	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, doc.ActiveProjectID, loaded.ActiveProjectID)
	require.Len(t, loaded.Projects, 1)

	got := loaded.Projects[0]
	require.Equal(t, p.ID, got.ID)
	require.Equal(t, "Wedding", got.Name)
	require.Equal(t, 2, got.CurrentRound)
	require.Equal(t, []string{"a.png", "b.jpg"}, got.Rounds[1])
	require.Equal(t, []string{"a.png"}, got.Rounds[2])
	require.Equal(t, "a.png", got.LastViewedFile)
}

func TestSave_OverwritesInFull(t *testing.T) {
	ctx := context.Background()
	store := New(filepath.Join(t.TempDir(), "state.json"))

	first := project.NewProject("First", "/a")
	require.NoError(t, store.Save(ctx, &project.Document{
		ActiveProjectID: first.ID,
		Projects:        []*project.Project{first},
	}))

	second := project.NewProject("Second", "/b")
	require.NoError(t, store.Save(ctx, &project.Document{
		ActiveProjectID: second.ID,
		Projects:        []*project.Project{second},
	}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Projects, 1)
	require.Equal(t, "Second", loaded.Projects[0].Name)
}

func TestLegacySelectedRoundTrips(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")

	// document written by a pre-round release
	legacy := `{"active_project_id":"p1","projects":[{"id":"p1","name":"Old","source_directory":"/a","current_round":1,"selected":["x.png"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	loaded, err := New(path).Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"x.png"}, loaded.Projects[0].LegacySelected)

	project.Migrate(loaded)
	require.NoError(t, New(path).Save(ctx, loaded))

	reloaded, err := New(path).Load(ctx)
	require.NoError(t, err)
	require.Nil(t, reloaded.Projects[0].LegacySelected)
	require.Equal(t, []string{"x.png"}, reloaded.Projects[0].Rounds[1])
}
