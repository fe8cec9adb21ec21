// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package article implements the document model and rendering pipeline for
published articles.

An article is one JSON document: a header, an ordered sequence of typed
content blocks, and an ordered sequence of field notes (marginal annotations
bound to line ranges inside specific paragraphs). The package covers parsing,
the deterministic filename convention, per-paragraph line numbering, field
note attachment, and the year-grouped archive index.
*/
package article

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/mbillard/fieldpress/internal/platform/apperr"
	"github.com/mbillard/fieldpress/internal/platform/constants"
	"github.com/mbillard/fieldpress/pkg/slug"
)

// # Block Types

const (
	BlockHeading   = "heading"
	BlockParagraph = "paragraph"
	BlockFigure    = "figure"
)

const (
	FigureImage   = "image"
	FigureFormula = "formula"
)

const (
	PositionLeft  = "left"
	PositionRight = "right"
)

// # Document Model

// Header carries the article metadata block.
type Header struct {
	// Name is the slug identity; the stored filename derives from it.
	Name string `json:"name"`
	// MainHeader is the display title.
	MainHeader string `json:"mainHeader"`
	// Date is the canonical display date, e.g. "October 03, 2025".
	Date string `json:"date"`
	// ShowLineNumbers toggles visible per-paragraph line numbering.
	ShowLineNumbers bool `json:"showLineNumbers,omitempty"`
	// ShowBlockIDs toggles visible paragraph/figure ids.
	ShowBlockIDs bool `json:"showBlockIds,omitempty"`
	// Uploaded is the server-stamped upload time (RFC 3339). It is set by
	// the admin gateway, never by callers, and is excluded from the
	// round-trip guarantees of the document model.
	Uploaded string `json:"uploaded,omitempty"`
}

// Block is one ordered content element of an article body.
//
// # Forward Compatibility
//
// The raw JSON of every block is retained as parsed. Unknown block types are
// carried through re-serialization verbatim instead of being dropped, so a
// newer client vocabulary survives a round trip through this server.
type Block struct {
	// Type discriminates the variant ("heading", "paragraph", "figure", or
	// an unknown pass-through value).
	Type string `json:"type"`

	// Level is the heading level (2 or 3). Heading only.
	Level int `json:"level,omitempty"`

	// Text is the heading or paragraph text.
	Text string `json:"text,omitempty"`

	// ID optionally names a paragraph (field-note target) or figure.
	ID string `json:"id,omitempty"`

	// FigureType is "image" or "formula". Figure only. Unknown values are
	// accepted inertly.
	FigureType string `json:"figureType,omitempty"`

	// Content is the figure payload: an image URL or a LaTeX string.
	Content string `json:"content,omitempty"`

	// Caption is the optional figure caption.
	Caption string `json:"caption,omitempty"`

	// raw is the block exactly as received, kept for pass-through.
	raw json.RawMessage
}

// UnmarshalJSON decodes the typed fields while retaining the raw payload.
func (block *Block) UnmarshalJSON(data []byte) error {
	type alias Block
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*block = Block(decoded)
	block.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the original payload when one exists, so blocks of
// unknown type (and unknown fields on known types) survive unchanged.
func (block Block) MarshalJSON() ([]byte, error) {
	if block.raw != nil {
		return block.raw, nil
	}

	type alias Block
	return json.Marshal(alias(block))
}

// IsParagraph reports whether the block participates in line numbering.
// Headings and figures never do.
func (block *Block) IsParagraph() bool {
	return block.Type == BlockParagraph
}

// FieldNote is a marginal annotation bound to an inclusive line range within
// one paragraph.
//
// TargetID is a weak reference: a note whose target paragraph does not exist
// is dropped during attachment, not an error.
type FieldNote struct {
	// TargetID must match a paragraph block id.
	TargetID string `json:"targetId"`
	// StartLine and EndLine are 1-indexed, inclusive, and relative to the
	// target paragraph's own wrapped lines.
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
	// Position is "left" or "right".
	Position string `json:"position"`
	// Text is the annotation body.
	Text string `json:"text"`
}

// Document is the aggregate root: one header, ordered blocks, ordered notes.
type Document struct {
	Header     Header      `json:"header"`
	Content    []Block     `json:"content"`
	FieldNotes []FieldNote `json:"fieldNotes,omitempty"`
}

// # Parsing

// ParseDocument decodes a raw JSON payload into a [Document].
//
// It fails with MALFORMED_DOCUMENT when the payload is not valid JSON or
// when header.name, header.mainHeader, or header.date is missing. All other
// fields are optional and default to absent/false.
func ParseDocument(raw []byte) (*Document, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}
	return doc, validateHeader(doc.Header)
}

// ParseUploadDocument decodes an inbound admin payload. Unlike
// [ParseDocument], a missing header name is derived from the title
// (slugified) before validation, so authors may omit it.
func ParseUploadDocument(raw []byte) (*Document, error) {
	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	if doc.Header.Name == "" && doc.Header.MainHeader != "" {
		doc.Header.Name = slug.From(doc.Header.MainHeader)
	}

	return doc, validateHeader(doc.Header)
}

func decodeDocument(raw []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperr.MalformedDocument("Article document is not valid JSON", err)
	}
	return &doc, nil
}

func validateHeader(header Header) error {
	if header.Name == "" {
		return apperr.MalformedDocument("Article header is missing 'name'", nil)
	}
	if header.MainHeader == "" {
		return apperr.MalformedDocument("Article header is missing 'mainHeader'", nil)
	}
	if header.Date == "" {
		return apperr.MalformedDocument("Article header is missing 'date'", nil)
	}
	return nil
}

// # Filename Convention

// filenamePattern matches {name}_{month}-{day}.json with no zero-padding.
var filenamePattern = regexp.MustCompile(`^(.+)_(\d{1,2})-(\d{1,2})\.json$`)

// DeriveFilename computes the stored filename for a header as a pure
// function of its fields: {name}_{month}-{day}.json, month and day taken
// from the canonical date without zero-padding.
func DeriveFilename(header Header) (string, error) {
	date, err := ParseCanonicalDate(header.Date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%d-%d%s", header.Name, int(date.Month()), date.Day(), constants.ArticleFileExtension), nil
}

// ParseFilename recovers the article name and month-day fragment from a
// stored filename. It reports false for names outside the convention.
func ParseFilename(filename string) (name string, month, day int, ok bool) {
	match := filenamePattern.FindStringSubmatch(filename)
	if match == nil {
		return "", 0, 0, false
	}

	month, _ = strconv.Atoi(match[2])
	day, _ = strconv.Atoi(match[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", 0, 0, false
	}

	return match[1], month, day, true
}

// ParseCanonicalDate parses the display date format "Month DD, YYYY".
func ParseCanonicalDate(value string) (time.Time, error) {
	date, err := time.Parse(constants.CanonicalDateLayout, value)
	if err != nil {
		return time.Time{}, apperr.MalformedDocument(
			fmt.Sprintf("Article date %q is not in the canonical %q format", value, "Month DD, YYYY"),
			err,
		)
	}
	return date, nil
}
