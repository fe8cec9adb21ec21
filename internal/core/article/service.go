// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import (
	"context"
	"log/slog"
	"time"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/constants"
	"github.com/mbillard/fieldpress/internal/platform/metrics"
	"github.com/mbillard/fieldpress/pkg/slug"
)

// # Service Layer

// Service orchestrates the read side of the article store: archive listing,
// homepage selection, and annotated document rendering.
//
// Every request recomputes line numbers and note attachment from scratch;
// there is no rendering cache.
type Service struct {
	articleRepo Repository
	instruments *metrics.Set
	logger      *slog.Logger

	// now is the clock used for the current-year fallback. Overridden in tests.
	now func() time.Time
}

// NewService constructs a new [Service].
func NewService(articleRepo Repository, instruments *metrics.Set, logger *slog.Logger) *Service {
	return &Service{
		articleRepo: articleRepo,
		instruments: instruments,
		logger:      logger,
		now:         time.Now,
	}
}

// # Archive Operations

/*
Archive returns every stored article grouped by calendar year.

Description: Scans the store, parses each filename for the name and
month-day fragment, cross-references the embedded header date for the
canonical year, and groups entries by year in descending order; within a
year, entries sort by date descending.

Parameters:
  - context: context.Context

Returns:
  - []YearGroup: Years descending, entries most recent first
  - error: Storage failures
*/
func (service *Service) Archive(context context.Context) ([]YearGroup, error) {
	entries, err := service.listEntries(context)
	if err != nil {
		return nil, err
	}
	return groupByYear(entries), nil
}

/*
Latest returns the single most recent article across all years.

Description: Homepage selection. The comparison key is the full date with
year, month, day precedence; identical dates fall back to filename lexical
order.

Parameters:
  - context: context.Context

Returns:
  - *Entry: The most recent article
  - error: NOT_FOUND when the store is empty, storage failures otherwise
*/
func (service *Service) Latest(context context.Context) (*Entry, error) {
	entries, err := service.listEntries(context)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperr.NotFound("Article")
	}
	return &entries[0], nil
}

/*
Render loads one article by slug and produces its annotated view.

Description: Parses the document, wraps every paragraph to the content
column, and attaches field notes. Dangling note targets are dropped (and
logged); out-of-range line references are clamped.

Parameters:
  - context: context.Context
  - name: string (Article slug, without the month-day fragment)

Returns:
  - *AnnotatedDocument: Render-ready projection
  - error: NOT_FOUND for unknown slugs, MALFORMED_DOCUMENT for schema
    violations, storage failures otherwise
*/
func (service *Service) Render(context context.Context, name string) (*AnnotatedDocument, error) {
	entries, err := service.listEntries(context)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if entry.Name != name {
			continue
		}

		raw, err := service.articleRepo.Read(context, entry.Filename)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		doc, err := ParseDocument(raw)
		if err != nil {
			return nil, err
		}

		annotated := Annotate(doc, constants.ContentColumnWidth)
		if len(annotated.UnresolvedNotes) > 0 {
			service.logger.Warn("field_notes_dropped",
				slog.String("article", name),
				slog.Any("target_ids", annotated.UnresolvedNotes),
			)
		}

		service.instruments.ArticleRenders.Inc()
		return annotated, nil
	}

	return nil, apperr.NotFound("Article")
}

// # Index Construction

// listEntries scans the store and builds the date-sorted archive index.
//
// Documents that cannot be read or carry an unparseable date still yield an
// entry (humanized name, current-year fallback) so a damaged file never
// hides an article from the archive.
func (service *Service) listEntries(context context.Context) ([]Entry, error) {
	filenames, err := service.articleRepo.ListFilenames(context)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	currentYear := service.now().Year()
	entries := make([]Entry, 0, len(filenames))

	for _, filename := range filenames {
		name, month, day, ok := ParseFilename(filename)
		if !ok {
			// Foreign files in the store directory are ignored, not errors.
			continue
		}

		entry := Entry{
			Filename:  filename,
			Name:      name,
			Title:     slug.Humanize(name),
			Year:      currentYear,
			Month:     month,
			Day:       day,
			DateLabel: dateLabel(month, day),
		}

		if raw, err := service.articleRepo.Read(context, filename); err == nil {
			if doc, err := ParseDocument(raw); err == nil {
				entry.Title = doc.Header.MainHeader
				if date, err := ParseCanonicalDate(doc.Header.Date); err == nil {
					entry.Year = date.Year()
				}
			} else {
				service.logger.Warn("archive_document_unreadable",
					slog.String("filename", filename),
					slog.Any("error", err),
				)
			}
		}

		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries, nil
}
