package results

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klejdi94/simscore/core"
)

// FileWriter writes the result set as one JSON document at a fixed path.
type FileWriter struct {
	path string
}

// NewFileWriter creates a writer for path (DefaultFile when empty).
func NewFileWriter(path string) *FileWriter {
	if path == "" {
		path = DefaultFile
	}
	return &FileWriter{path: path}
}

// Location returns the output path.
func (f *FileWriter) Location() string {
	return f.path
}

// Write implements Writer. The parent directory is created if absent.
func (f *FileWriter) Write(ctx context.Context, rs core.ResultSet) error {
	data, err := Marshal(rs)
	if err != nil {
		return fmt.Errorf("file results encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("file results: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("file results: %w", err)
	}
	return nil
}
