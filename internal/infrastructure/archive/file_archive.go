// Package archive persists rendered documents on the local filesystem.
package archive

import (
	"fmt"
	"os"
	"path/filepath"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
)

var _ appbilling.DocumentArchive = (*FileArchive)(nil)

// FileArchive writes rendered documents into a flat output directory,
// overwriting any previous run's file of the same name.
type FileArchive struct {
	dir string
}

// NewFileArchive builds the archive rooted at dir, creating it if needed.
func NewFileArchive(dir string) (*FileArchive, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("archive: create output dir %s: %w", dir, err)
	}
	return &FileArchive{dir: dir}, nil
}

// Save writes the document and returns its archived path.
func (a *FileArchive) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(a.dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("archive: write %s: %w", path, err)
	}
	return path, nil
}
