// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package admin implements the authenticated publishing gateway.

Every route in this package sits behind HAWK verification; handlers trust
the credential id placed in the request context by the middleware and never
re-check signatures themselves. The service layer owns the write-side
rules: schema validation, upload stamping, the no-overwrite guarantee, and
the strict filename gate on removal.
*/
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"github.com/mbillard/fieldpress/internal/core/article"
	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/ctxutil"
	"github.com/mbillard/fieldpress/internal/platform/metrics"
	"github.com/mbillard/fieldpress/internal/platform/validate"
)

// # Service

// Service owns the write side of the article store.
type Service struct {
	articleRepo article.Repository
	instruments *metrics.Set
	logger      *slog.Logger
	now         func() time.Time
}

// NewService wires a publishing service.
func NewService(articleRepo article.Repository, instruments *metrics.Set, logger *slog.Logger) *Service {
	return &Service{
		articleRepo: articleRepo,
		instruments: instruments,
		logger:      logger,
		now:         time.Now,
	}
}

// UploadResult reports where an accepted document was stored.
type UploadResult struct {
	Filename string `json:"filename"`
	Name     string `json:"name"`
	Uploaded string `json:"uploaded"`
}

/*
Upload validates a raw article document, stamps it with the upload time,
and persists it under its derived filename. A missing header name is
derived from the title before validation.

Parameters:
  - raw: the JSON document exactly as received from the client

Returns:
  - *UploadResult: the derived filename and upload timestamp
  - error: *apperr.AppError — MALFORMED_DOCUMENT for schema violations,
    VALIDATION_ERROR for an unusable header name, CONFLICT when the derived
    filename is already taken
*/
func (service *Service) Upload(ctx context.Context, raw []byte) (*UploadResult, error) {
	doc, err := article.ParseUploadDocument(raw)
	if err != nil {
		return nil, err
	}

	var validator validate.Validator
	if err := validator.ArticleName("header.name", doc.Header.Name).Err(); err != nil {
		return nil, err
	}

	// The upload timestamp is server-assigned; anything the client sent is
	// replaced.
	uploaded := service.now().UTC().Format(time.RFC3339)
	doc.Header.Uploaded = uploaded

	filename, err := article.DeriveFilename(doc.Header)
	if err != nil {
		return nil, err
	}

	stamped, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := service.articleRepo.Write(ctx, filename, stamped); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, apperr.Conflict("An article with filename " + filename + " already exists")
		}
		return nil, apperr.Internal(err)
	}

	service.instruments.ArticlesUploaded.Inc()
	service.logger.InfoContext(ctx, "article_uploaded",
		slog.String("filename", filename),
		slog.String("admin_id", ctxutil.GetAdminID(ctx)),
	)

	return &UploadResult{
		Filename: filename,
		Name:     doc.Header.Name,
		Uploaded: uploaded,
	}, nil
}

/*
Remove deletes one stored document by exact filename.

The filename is validated against the strict {name}_{month}-{day}.json
convention before any path is built, so traversal attempts never reach the
store.

Parameters:
  - filename: the stored filename to delete

Returns:
  - error: *apperr.AppError — VALIDATION_ERROR for a non-conforming
    filename, NOT_FOUND when no such document exists
*/
func (service *Service) Remove(ctx context.Context, filename string) error {
	var validator validate.Validator
	if err := validator.ArticleFilename("filename", filename).Err(); err != nil {
		return err
	}

	if err := service.articleRepo.Delete(ctx, filename); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return apperr.NotFound("Article")
		}
		return apperr.Internal(err)
	}

	service.instruments.ArticlesRemoved.Inc()
	service.logger.InfoContext(ctx, "article_removed",
		slog.String("filename", filename),
		slog.String("admin_id", ctxutil.GetAdminID(ctx)),
	)

	return nil
}
