package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_FiltersToImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.JPG", "c.jpeg", "d.webp", "notes.txt", "state.json", "e.gif", "f.bmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.png"), 0o755))

	got := NewLister(nil).List(dir)
	require.ElementsMatch(t, []string{"a.png", "b.JPG", "c.jpeg", "d.webp", "e.gif", "f.bmp"}, got)
}

func TestList_MissingDirectory(t *testing.T) {
	require.Empty(t, NewLister(nil).List(filepath.Join(t.TempDir(), "nope")))
}

func TestIsImage(t *testing.T) {
	require.True(t, IsImage("photo.PNG"))
	require.True(t, IsImage("photo.webp"))
	require.False(t, IsImage("photo.txt"))
	require.False(t, IsImage("photo"))
}

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "round_1_selections.json")
	require.NoError(t, Writer{}.Write(path, []byte(`{"round":1}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, `{"round":1}`, string(data))
}
