// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package book

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
)

// # Service

// Service exposes the read-side catalogue operations.
type Service struct {
	bookRepo Repository
	logger   *slog.Logger
}

// NewService wires a catalogue service.
func NewService(bookRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		bookRepo: bookRepo,
		logger:   logger,
	}
}

/*
List returns every manifest entry in manifest order.

Returns:
  - []Metadata: the catalogue, empty when no manifest exists
  - error: *apperr.AppError on store failure
*/
func (service *Service) List(ctx context.Context) ([]Metadata, error) {
	entries, err := service.bookRepo.Manifest(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if entries == nil {
		entries = []Metadata{}
	}

	return entries, nil
}

/*
Get returns the merged view for one book. When the detail document is
missing it is synthesized from the manifest entry and persisted, so the
next read hits the stored copy.

Parameters:
  - slug: the book slug from the request path

Returns:
  - *View: manifest fields merged over the detail document
  - error: *apperr.AppError, NOT_FOUND when the slug is not in the manifest
*/
func (service *Service) Get(ctx context.Context, slug string) (*View, error) {
	entries, err := service.bookRepo.Manifest(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var meta *Metadata
	for index := range entries {
		if entries[index].Slug == slug {
			meta = &entries[index]
			break
		}
	}
	if meta == nil {
		return nil, apperr.NotFound("Book")
	}

	detail, err := service.bookRepo.ReadDetail(ctx, slug)
	switch {
	case err == nil:
		// fall through to merge

	case errors.Is(err, ErrReservedSlug):
		// A manifest entry slugged like the manifest file itself cannot have
		// a detail document; hide it rather than serve the catalogue bytes.
		service.logger.WarnContext(ctx, "book_slug_reserved",
			slog.String("slug", slug),
		)
		return nil, apperr.NotFound("Book")

	case errors.Is(err, fs.ErrNotExist):
		detail = synthesizeDetail(*meta)
		if writeErr := service.bookRepo.WriteDetail(ctx, slug, detail); writeErr != nil && !errors.Is(writeErr, fs.ErrExist) {
			return nil, apperr.Internal(writeErr)
		}

		service.logger.InfoContext(ctx, "book_detail_synthesized",
			slog.String("slug", slug),
		)

	default:
		return nil, apperr.Internal(err)
	}

	return merge(*meta, detail), nil
}
