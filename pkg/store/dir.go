package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir reads templates from a directory tree. Template names are
// slash-separated paths relative to the root with the extension removed.
type Dir struct {
	dir string
	ext string
}

// NewDir creates a directory store. An empty extension defaults to ".hbs".
func NewDir(dir, ext string) *Dir {
	if ext == "" {
		ext = ".hbs"
	}
	return &Dir{dir: dir, ext: ext}
}

// List walks the directory and returns every template with the store's
// extension.
func (s *Dir) List(ctx context.Context) ([]Template, error) {
	var templates []Template

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(path, s.ext) {
			return nil
		}

		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template %q: %w", path, err)
		}

		templates = append(templates, Template{
			Name:   filepath.ToSlash(strings.TrimSuffix(rel, s.ext)),
			Source: string(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template directory %q: %w", s.dir, err)
	}
	return templates, nil
}
