// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mbillard/fieldpress/internal/platform/constants"
)

// ErrReservedSlug rejects a slug whose detail document would occupy the
// manifest's own filename inside the store directory.
var ErrReservedSlug = errors.New("book: slug collides with the catalogue manifest")

// # Filesystem Store

// FSRepository stores the catalogue under a single directory: the manifest
// at books.json and one {slug}.json detail document per book.
type FSRepository struct {
	dir string
}

var _ Repository = (*FSRepository)(nil)

// NewFSRepository creates the store directory if needed and returns a
// repository rooted there.
func NewFSRepository(dir string) (*FSRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("book: creating store directory %q: %w", dir, err)
	}

	return &FSRepository{dir: dir}, nil
}

// Dir exposes the store root for readiness probes.
func (repository *FSRepository) Dir() string {
	return repository.dir
}

func (repository *FSRepository) Manifest(_ context.Context) ([]Metadata, error) {
	raw, err := os.ReadFile(filepath.Join(repository.dir, constants.BookManifestFile))
	if err != nil {
		// An absent manifest is an empty catalogue, not a failure.
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("book: reading manifest: %w", err)
	}

	var entries []Metadata
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("book: decoding manifest: %w", err)
	}

	return entries, nil
}

func (repository *FSRepository) ReadDetail(_ context.Context, slug string) (*Detail, error) {
	if isReservedSlug(slug) {
		return nil, ErrReservedSlug
	}

	raw, err := os.ReadFile(repository.detailPath(slug))
	if err != nil {
		return nil, fmt.Errorf("book: reading detail %q: %w", slug, err)
	}

	var detail Detail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("book: decoding detail %q: %w", slug, err)
	}

	return &detail, nil
}

func (repository *FSRepository) WriteDetail(_ context.Context, slug string, detail *Detail) error {
	if isReservedSlug(slug) {
		return ErrReservedSlug
	}

	raw, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return fmt.Errorf("book: encoding detail %q: %w", slug, err)
	}

	file, err := os.OpenFile(repository.detailPath(slug), os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.StoreFileMode)
	if err != nil {
		return fmt.Errorf("book: creating detail %q: %w", slug, err)
	}
	defer file.Close()

	if _, err := file.Write(raw); err != nil {
		return fmt.Errorf("book: writing detail %q: %w", slug, err)
	}

	return nil
}

// detailPath strips any directory components from the slug before joining.
func (repository *FSRepository) detailPath(slug string) string {
	return filepath.Join(repository.dir, filepath.Base(slug)+constants.ArticleFileExtension)
}

// isReservedSlug reports whether the slug's detail file would shadow the
// manifest itself.
func isReservedSlug(slug string) bool {
	return filepath.Base(slug)+constants.ArticleFileExtension == constants.BookManifestFile
}
