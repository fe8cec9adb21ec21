// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import (
	"github.com/mbillard/fieldpress/internal/platform/constants"
	"github.com/mbillard/fieldpress/pkg/wordwrap"
)

// # Annotated View

// AnnotatedDocument is the render-ready projection of a [Document]: every
// paragraph carries its wrapped lines and the field notes anchored to them.
// The template renderer consumes this structure without recomputation.
type AnnotatedDocument struct {
	Header Header           `json:"header"`
	Blocks []AnnotatedBlock `json:"blocks"`

	// UnresolvedNotes lists the targetId of every field note that was
	// dropped: no matching paragraph, or a target with no lines to anchor
	// to. Purely informational; renderers ignore it.
	UnresolvedNotes []string `json:"unresolvedNotes,omitempty"`
}

// AnnotatedBlock pairs a content block with its rendering annotations.
type AnnotatedBlock struct {
	Block Block `json:"block"`

	// Lines is the paragraph text wrapped to the content column. Empty for
	// headings, figures, and unknown block types.
	Lines []string `json:"lines,omitempty"`

	// LineCount is len(Lines); kept explicit for renderer convenience.
	LineCount int `json:"lineCount,omitempty"`

	// Notes holds the field notes anchored to this paragraph, in document
	// order, with per-side stack indexes already assigned.
	Notes []AttachedNote `json:"notes,omitempty"`
}

// AttachedNote is a field note resolved onto its target paragraph.
type AttachedNote struct {
	Text     string `json:"text"`
	Position string `json:"position"`

	// StartLine and EndLine are clamped to the paragraph's actual line count.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`

	// StackIndex orders notes that share a paragraph and side, in document
	// order, so overlapping notes can be stacked deterministically.
	StackIndex int `json:"stackIndex"`
}

// # Annotation Pipeline

// Annotate computes wrapped lines for every paragraph and attaches the
// document's field notes to their target paragraphs.
//
// Line numbers restart at 1 for every paragraph. They are computed even when
// the header suppresses visible numbering, because note alignment depends on
// them either way.
//
// Notes with a dangling targetId — or targeting a paragraph that wraps to
// zero lines — are dropped and reported in
// [AnnotatedDocument.UnresolvedNotes]; out-of-range line references are
// clamped rather than rejected.
func Annotate(doc *Document, width int) *AnnotatedDocument {
	if width <= 0 {
		width = constants.ContentColumnWidth
	}

	annotated := &AnnotatedDocument{
		Header: doc.Header,
		Blocks: make([]AnnotatedBlock, len(doc.Content)),
	}

	// Paragraph ids resolve to the first block carrying them.
	paragraphIndex := make(map[string]int, len(doc.Content))

	for i := range doc.Content {
		block := doc.Content[i]
		annotated.Blocks[i] = AnnotatedBlock{Block: block}

		if !block.IsParagraph() {
			continue
		}

		lines := wordwrap.Lines(block.Text, width)
		annotated.Blocks[i].Lines = lines
		annotated.Blocks[i].LineCount = len(lines)

		if block.ID != "" {
			if _, taken := paragraphIndex[block.ID]; !taken {
				paragraphIndex[block.ID] = i
			}
		}
	}

	// Per-paragraph, per-side counters keep the stacking order stable.
	type anchor struct {
		blockIndex int
		position   string
	}
	stackDepth := make(map[anchor]int)

	for _, note := range doc.FieldNotes {
		blockIndex, found := paragraphIndex[note.TargetID]
		if !found {
			// Dangling reference: graceful degradation, never an error.
			annotated.UnresolvedNotes = append(annotated.UnresolvedNotes, note.TargetID)
			continue
		}

		target := &annotated.Blocks[blockIndex]
		if target.LineCount == 0 {
			// An empty paragraph has no lines to anchor to; treat the note
			// like a dangling reference so line numbers stay 1-indexed.
			annotated.UnresolvedNotes = append(annotated.UnresolvedNotes, note.TargetID)
			continue
		}
		startLine, endLine := clampRange(note.StartLine, note.EndLine, target.LineCount)

		key := anchor{blockIndex: blockIndex, position: note.Position}
		target.Notes = append(target.Notes, AttachedNote{
			Text:       note.Text,
			Position:   note.Position,
			StartLine:  startLine,
			EndLine:    endLine,
			StackIndex: stackDepth[key],
		})
		stackDepth[key]++
	}

	return annotated
}

// clampRange confines a 1-indexed inclusive line range to [1, lineCount].
func clampRange(start, end, lineCount int) (int, int) {
	if start < 1 {
		start = 1
	}
	if start > lineCount {
		start = lineCount
	}
	if end > lineCount {
		end = lineCount
	}
	if end < start {
		end = start
	}
	return start, end
}
