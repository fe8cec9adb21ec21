// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbillard/fieldpress/internal/platform/constants"
)

// FSRepository is the filesystem-backed [Repository]: one JSON file per
// article inside a single store directory.
//
// # Concurrency
//
// No in-process locking is performed. Writes are whole-file creates with
// O_EXCL, so concurrent uploads racing on the same filename degrade to a
// benign first-writer-wins; readers never observe partial documents on the
// happy path.
type FSRepository struct {
	dir string
}

// NewFSRepository constructs the store rooted at dir, creating it if needed.
func NewFSRepository(dir string) (*FSRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("article: failed to create store directory %s: %w", dir, err)
	}
	return &FSRepository{dir: dir}, nil
}

// Dir returns the store root, used by the readiness probe.
func (repo *FSRepository) Dir() string {
	return repo.dir
}

// ListFilenames implements [Repository].
func (repo *FSRepository) ListFilenames(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(repo.dir)
	if err != nil {
		return nil, fmt.Errorf("article: failed to scan store directory: %w", err)
	}

	filenames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.ArticleFileExtension) {
			continue
		}
		filenames = append(filenames, entry.Name())
	}

	return filenames, nil
}

// Read implements [Repository].
func (repo *FSRepository) Read(_ context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(repo.path(filename))
	if err != nil {
		return nil, fmt.Errorf("article: failed to read %s: %w", filename, err)
	}
	return data, nil
}

// Write implements [Repository]. O_EXCL guarantees no silent overwrite.
func (repo *FSRepository) Write(_ context.Context, filename string, data []byte) error {
	file, err := os.OpenFile(repo.path(filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.StoreFileMode)
	if err != nil {
		return fmt.Errorf("article: failed to create %s: %w", filename, err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("article: failed to write %s: %w", filename, err)
	}

	return file.Close()
}

// Delete implements [Repository].
func (repo *FSRepository) Delete(_ context.Context, filename string) error {
	if err := os.Remove(repo.path(filename)); err != nil {
		return fmt.Errorf("article: failed to delete %s: %w", filename, err)
	}
	return nil
}

// path joins the store root with a bare filename. Callers validate the
// filename against the naming convention before it gets here; Base is a
// second line of defense against traversal.
func (repo *FSRepository) path(filename string) string {
	return filepath.Join(repo.dir, filepath.Base(filename))
}
