// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbillard/fieldpress/internal/core/article"
)

// buildDocument assembles a parsed document with two paragraphs and the
// given notes.
func buildDocument(t *testing.T, notes string) *article.Document {
	t.Helper()

	raw := `{
		"header": {"name": "t", "mainHeader": "T", "date": "October 03, 2025"},
		"content": [
			{"type": "heading", "level": 2, "text": "Intro"},
			{"type": "paragraph", "id": "p1", "text": "` + strings.TrimSpace(strings.Repeat("alpha beta gamma delta ", 8)) + `"},
			{"type": "paragraph", "id": "p2", "text": "short paragraph"},
			{"type": "figure", "figureType": "image", "content": "https://example.org/x.png"}
		],
		"fieldNotes": [` + notes + `]
	}`

	doc, err := article.ParseDocument([]byte(raw))
	require.NoError(t, err)
	return doc
}

/*
TestAnnotate_LineNumbering verifies that only paragraphs get wrapped lines
and that numbering is paragraph-local.
*/
func TestAnnotate_LineNumbering(t *testing.T) {
	doc := buildDocument(t, "")
	annotated := article.Annotate(doc, 40)

	require.Len(t, annotated.Blocks, 4)

	// Headings and figures are excluded from line counting.
	assert.Nil(t, annotated.Blocks[0].Lines)
	assert.Zero(t, annotated.Blocks[0].LineCount)
	assert.Nil(t, annotated.Blocks[3].Lines)

	// The long paragraph wraps to several lines; the short one to a single
	// line. Counts restart per paragraph rather than running document-wide.
	assert.Greater(t, annotated.Blocks[1].LineCount, 1)
	assert.Equal(t, 1, annotated.Blocks[2].LineCount)
	assert.Equal(t, []string{"short paragraph"}, annotated.Blocks[2].Lines)
}

/*
TestAnnotate_DanglingTarget verifies that a note whose targetId matches no
paragraph is silently dropped and reported as unresolved, never an error.
*/
func TestAnnotate_DanglingTarget(t *testing.T) {
	doc := buildDocument(t, `
		{"targetId": "ghost", "startLine": 1, "endLine": 2, "position": "left", "text": "lost"},
		{"targetId": "p2", "startLine": 1, "endLine": 1, "position": "left", "text": "kept"}
	`)

	annotated := article.Annotate(doc, 40)

	assert.Equal(t, []string{"ghost"}, annotated.UnresolvedNotes)

	// The dangling note is absent from every block's attachments.
	total := 0
	for _, block := range annotated.Blocks {
		total += len(block.Notes)
	}
	assert.Equal(t, 1, total)
	assert.Equal(t, "kept", annotated.Blocks[2].Notes[0].Text)
}

/*
TestAnnotate_EmptyParagraphTarget verifies that a note targeting a paragraph
with no wrapped lines is dropped as unresolved instead of being emitted with
a zero line number.
*/
func TestAnnotate_EmptyParagraphTarget(t *testing.T) {
	raw := `{
		"header": {"name": "t", "mainHeader": "T", "date": "October 03, 2025"},
		"content": [
			{"type": "paragraph", "id": "blank", "text": "   "},
			{"type": "paragraph", "id": "p1", "text": "has content"}
		],
		"fieldNotes": [
			{"targetId": "blank", "startLine": 1, "endLine": 1, "position": "left", "text": "anchorless"},
			{"targetId": "p1", "startLine": 1, "endLine": 1, "position": "left", "text": "kept"}
		]
	}`

	doc, err := article.ParseDocument([]byte(raw))
	require.NoError(t, err)

	annotated := article.Annotate(doc, 40)

	assert.Equal(t, []string{"blank"}, annotated.UnresolvedNotes)
	assert.Empty(t, annotated.Blocks[0].Notes)

	require.Len(t, annotated.Blocks[1].Notes, 1)
	kept := annotated.Blocks[1].Notes[0]
	assert.Equal(t, 1, kept.StartLine)
	assert.Equal(t, 1, kept.EndLine)
}

/*
TestAnnotate_ClampsLineRange verifies that endLine beyond the paragraph's
actual line count is clamped rather than rejected.
*/
func TestAnnotate_ClampsLineRange(t *testing.T) {
	doc := buildDocument(t, `
		{"targetId": "p2", "startLine": 1, "endLine": 99, "position": "right", "text": "overshoot"}
	`)

	annotated := article.Annotate(doc, 40)

	require.Len(t, annotated.Blocks[2].Notes, 1)
	note := annotated.Blocks[2].Notes[0]
	assert.Equal(t, 1, note.StartLine)
	assert.Equal(t, annotated.Blocks[2].LineCount, note.EndLine)
}

/*
TestAnnotate_StackingOrder verifies that overlapping notes on the same side
of the same paragraph keep document order via stable stack indexes, while
the opposite side counts independently.
*/
func TestAnnotate_StackingOrder(t *testing.T) {
	doc := buildDocument(t, `
		{"targetId": "p1", "startLine": 1, "endLine": 2, "position": "left", "text": "first"},
		{"targetId": "p1", "startLine": 2, "endLine": 3, "position": "left", "text": "second"},
		{"targetId": "p1", "startLine": 1, "endLine": 1, "position": "right", "text": "opposite"},
		{"targetId": "p1", "startLine": 3, "endLine": 3, "position": "left", "text": "third"}
	`)

	annotated := article.Annotate(doc, 40)
	notes := annotated.Blocks[1].Notes
	require.Len(t, notes, 4)

	assert.Equal(t, []string{"first", "second", "opposite", "third"},
		[]string{notes[0].Text, notes[1].Text, notes[2].Text, notes[3].Text})

	// Left side stacks 0,1,2 in document order; the right side restarts at 0.
	assert.Equal(t, 0, notes[0].StackIndex)
	assert.Equal(t, 1, notes[1].StackIndex)
	assert.Equal(t, 2, notes[3].StackIndex)
	assert.Equal(t, 0, notes[2].StackIndex)
}
