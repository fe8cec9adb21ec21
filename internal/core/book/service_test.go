// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package book

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	dir := t.TempDir()
	repository, err := NewFSRepository(dir)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return NewService(repository, logger), dir
}

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "books.json"), []byte(content), 0o644))
}

const testManifest = `[
  {
    "id": "bk-1",
    "title": "The Soul of a New Machine",
    "author": "Tracy Kidder",
    "slug": "soul-of-a-new-machine",
    "imageUrl": "/covers/soul.jpg"
  },
  {
    "id": "bk-2",
    "title": "The Mythical Man-Month",
    "author": "Fred Brooks",
    "slug": "mythical-man-month",
    "imageUrl": "/covers/mmm.jpg"
  }
]`

func TestService_List(t *testing.T) {
	service, dir := newTestService(t)
	writeManifest(t, dir, testManifest)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "soul-of-a-new-machine", entries[0].Slug)
	assert.Equal(t, "Fred Brooks", entries[1].Author)
}

func TestService_List_EmptyCatalogue(t *testing.T) {
	service, _ := newTestService(t)

	entries, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)
}

func TestService_Get_ManifestPrecedence(t *testing.T) {
	service, dir := newTestService(t)
	writeManifest(t, dir, testManifest)

	// The detail document carries stale title/author copies; the manifest
	// must shadow them while the detail keeps everything else.
	detail := `{
	  "coverUrl": "/covers/old.jpg",
	  "author": "T. Kidder",
	  "title": "Soul of a New Machine (draft)",
	  "subtitle": "The Eagle project",
	  "progress": {"currentPage": 120, "totalPages": 293},
	  "status": {"type": "checked-out", "text": "Reading now"},
	  "sections": [{"title": "Notes", "id": "notes", "content": ["A paragraph."]}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "soul-of-a-new-machine.json"), []byte(detail), 0o644))

	view, err := service.Get(context.Background(), "soul-of-a-new-machine")
	require.NoError(t, err)

	assert.Equal(t, "The Soul of a New Machine", view.Title)
	assert.Equal(t, "Tracy Kidder", view.Author)
	assert.Equal(t, "/covers/soul.jpg", view.CoverURL)

	assert.Equal(t, "The Eagle project", view.Subtitle)
	require.NotNil(t, view.Progress)
	assert.Equal(t, 120, view.Progress.CurrentPage)
	assert.Equal(t, StatusCheckedOut, view.Status.Type)
	require.Len(t, view.Sections, 1)
	assert.Equal(t, "notes", view.Sections[0].ID)
}

func TestService_Get_SynthesizesAndPersists(t *testing.T) {
	service, dir := newTestService(t)
	writeManifest(t, dir, testManifest)

	view, err := service.Get(context.Background(), "mythical-man-month")
	require.NoError(t, err)

	assert.Equal(t, "The Mythical Man-Month", view.Title)
	assert.Equal(t, StatusAvailable, view.Status.Type)
	assert.Nil(t, view.Progress)
	assert.Empty(t, view.Sections)

	// The synthesized detail must hit disk so later reads are stored reads.
	_, statErr := os.Stat(filepath.Join(dir, "mythical-man-month.json"))
	assert.NoError(t, statErr)

	again, err := service.Get(context.Background(), "mythical-man-month")
	require.NoError(t, err)
	assert.Equal(t, view, again)
}

func TestService_Get_ReservedSlug(t *testing.T) {
	service, dir := newTestService(t)

	// A manifest entry slugged "books" would have its detail document live at
	// books.json — the manifest itself. It must never be read or overwritten.
	writeManifest(t, dir, `[
	  {"id": "bk-x", "title": "Books on Books", "author": "N. N.", "slug": "books", "imageUrl": "/covers/x.jpg"}
	]`)
	manifestBefore, err := os.ReadFile(filepath.Join(dir, "books.json"))
	require.NoError(t, err)

	_, err = service.Get(context.Background(), "books")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	manifestAfter, err := os.ReadFile(filepath.Join(dir, "books.json"))
	require.NoError(t, err)
	assert.Equal(t, manifestBefore, manifestAfter)
}

func TestService_Get_UnknownSlug(t *testing.T) {
	service, dir := newTestService(t)
	writeManifest(t, dir, testManifest)

	_, err := service.Get(context.Background(), "no-such-book")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
