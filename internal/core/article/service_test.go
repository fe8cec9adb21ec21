// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbillard/fieldpress/internal/core/article"
	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/metrics"
)

// writeArticle drops a minimal valid document into the store directory.
func writeArticle(t *testing.T, dir, filename, name, title, date string) {
	t.Helper()

	payload := `{
		"header": {"name": "` + name + `", "mainHeader": "` + title + `", "date": "` + date + `"},
		"content": [{"type": "paragraph", "id": "p1", "text": "body text"}]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(payload), 0o644))
}

func newTestService(t *testing.T) (*article.Service, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := article.NewFSRepository(dir)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	return article.NewService(repo, metrics.NewNop(), logger), dir
}

/*
TestService_Archive verifies year grouping: years descending, entries within
a year by date descending.
*/
func TestService_Archive(t *testing.T) {
	service, dir := newTestService(t)

	writeArticle(t, dir, "autumn_10-3.json", "autumn", "Autumn", "October 03, 2024")
	writeArticle(t, dir, "new_year_1-1.json", "new_year", "New Year", "January 01, 2023")
	writeArticle(t, dir, "midwinter_1-15.json", "midwinter", "Midwinter", "January 15, 2024")

	groups, err := service.Archive(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, 2024, groups[0].Year)
	assert.Equal(t, 2023, groups[1].Year)

	require.Len(t, groups[0].Articles, 2)
	assert.Equal(t, "autumn", groups[0].Articles[0].Name)
	assert.Equal(t, "midwinter", groups[0].Articles[1].Name)

	require.Len(t, groups[1].Articles, 1)
	assert.Equal(t, "new_year", groups[1].Articles[0].Name)

	// Display metadata comes from the header and the filename fragment.
	assert.Equal(t, "Autumn", groups[0].Articles[0].Title)
	assert.Equal(t, "Oct, 03", groups[0].Articles[0].DateLabel)
}

/*
TestService_Latest verifies homepage selection across years.
*/
func TestService_Latest(t *testing.T) {
	service, dir := newTestService(t)

	writeArticle(t, dir, "autumn_10-3.json", "autumn", "Autumn", "October 03, 2024")
	writeArticle(t, dir, "new_year_1-1.json", "new_year", "New Year", "January 01, 2023")
	writeArticle(t, dir, "midwinter_1-15.json", "midwinter", "Midwinter", "January 15, 2024")

	latest, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "autumn", latest.Name)
	assert.Equal(t, 2024, latest.Year)
}

/*
TestService_Latest_Empty verifies NOT_FOUND on an empty store.
*/
func TestService_Latest_Empty(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Latest(context.Background())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Latest_TieBreak verifies that identical dates fall back to
lexical filename order.
*/
func TestService_Latest_TieBreak(t *testing.T) {
	service, dir := newTestService(t)

	writeArticle(t, dir, "beta_10-3.json", "beta", "Beta", "October 03, 2024")
	writeArticle(t, dir, "alpha_10-3.json", "alpha", "Alpha", "October 03, 2024")

	latest, err := service.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alpha", latest.Name)
}

/*
TestService_Render verifies slug resolution and annotation of a stored
document, plus NOT_FOUND for unknown slugs.
*/
func TestService_Render(t *testing.T) {
	service, dir := newTestService(t)
	writeArticle(t, dir, "autumn_10-3.json", "autumn", "Autumn", "October 03, 2024")

	annotated, err := service.Render(context.Background(), "autumn")
	require.NoError(t, err)
	assert.Equal(t, "Autumn", annotated.Header.MainHeader)
	require.Len(t, annotated.Blocks, 1)
	assert.Equal(t, 1, annotated.Blocks[0].LineCount)

	_, err = service.Render(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_Archive_IgnoresForeignFiles verifies that files outside the
naming convention are skipped rather than listed or failed on.
*/
func TestService_Archive_IgnoresForeignFiles(t *testing.T) {
	service, dir := newTestService(t)

	writeArticle(t, dir, "autumn_10-3.json", "autumn", "Autumn", "October 03, 2024")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.json"), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("hi"), 0o644))

	groups, err := service.Archive(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Articles, 1)
}
