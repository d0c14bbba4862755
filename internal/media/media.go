// Package media supplies the filesystem collaborators of the selection
// engine: the candidate lister and the snapshot writer.
package media

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// IsImage reports whether the filename carries a recognized image extension.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

// Lister lists image files in a directory. A missing or unreadable
// directory yields an empty list, never an error.
type Lister struct {
	logger *slog.Logger
}

// NewLister creates a new Lister.
func NewLister(logger *slog.Logger) *Lister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lister{logger: logger}
}

// List returns the image filenames in dir, in directory order.
func (l *Lister) List(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		l.logger.Debug("candidate directory unreadable", "dir", dir, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if IsImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names
}

// Writer writes snapshot files to disk.
type Writer struct{}

// Write overwrites path with data.
func (Writer) Write(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
