package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avenclark/photosift/internal/domain/project"
	"github.com/avenclark/photosift/internal/repository"
)

func TestDocumentStore_LoadEmpty(t *testing.T) {
	store := NewDocumentStore(NewTestDB(t))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDocumentStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t))

	p1 := &project.Project{
		ID:           "p1",
		Name:         "Wedding",
		SourceDir:    "/photos/wedding",
		AuxLabel:     "client picks",
		CurrentRound: 3,
		Rounds: map[int][]string{
			1: {"a.png", "b.jpg", "c.gif"},
			2: {"b.jpg", "a.png"},
		},
		LastViewedFile: "b.jpg",
		CreatedAt:      time.Now().UTC(),
	}
	p2 := &project.Project{
		ID:           "p2",
		Name:         "Travel",
		SourceDir:    "/photos/travel",
		CurrentRound: 1,
		Rounds:       map[int][]string{},
		CreatedAt:    time.Now().UTC(),
	}
	doc := &project.Document{ActiveProjectID: "p2", Projects: []*project.Project{p1, p2}}

	require.NoError(t, store.Save(ctx, doc))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "p2", loaded.ActiveProjectID)
	require.Len(t, loaded.Projects, 2)

	// project order follows document order
	require.Equal(t, "p1", loaded.Projects[0].ID)
	require.Equal(t, "p2", loaded.Projects[1].ID)

	got := loaded.Projects[0]
	require.Equal(t, "Wedding", got.Name)
	require.Equal(t, "client picks", got.AuxLabel)
	require.Equal(t, 3, got.CurrentRound)
	require.Equal(t, "b.jpg", got.LastViewedFile)
	require.Equal(t, []string{"a.png", "b.jpg", "c.gif"}, got.Rounds[1])
	require.Equal(t, []string{"b.jpg", "a.png"}, got.Rounds[2], "selection order preserved")
}

func TestDocumentStore_SaveReplacesEverything(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(NewTestDB(t))

	first := &project.Project{ID: "p1", Name: "First", SourceDir: "/a", CurrentRound: 1,
		Rounds: map[int][]string{1: {"x.png"}}, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, &project.Document{ActiveProjectID: "p1", Projects: []*project.Project{first}}))

	second := &project.Project{ID: "p2", Name: "Second", SourceDir: "/b", CurrentRound: 1,
		Rounds: map[int][]string{}, CreatedAt: time.Now().UTC()}
	require.NoError(t, store.Save(ctx, &project.Document{ActiveProjectID: "p2", Projects: []*project.Project{second}}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "p2", loaded.ActiveProjectID)
	require.Len(t, loaded.Projects, 1)
	require.Equal(t, "Second", loaded.Projects[0].Name)
	require.Empty(t, loaded.Projects[0].Rounds)
}
