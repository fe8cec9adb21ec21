// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

/*
Package book implements the reading-list catalogue.

Books live in two layers: a manifest (books.json) holding one metadata entry
per book, and an optional per-slug detail document. The manifest is the
source of truth for title, author, and cover image; the detail document is
authoritative for everything else. A missing detail document is synthesized
deterministically from the manifest entry on first read and persisted by an
explicit write.
*/
package book

// # Status Types

const (
	StatusAvailable        = "available"
	StatusCheckedOut       = "checked-out"
	StatusOutOfCirculation = "out-of-circulation"
)

// # Catalogue Model

// Metadata is one manifest entry in books.json.
type Metadata struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Slug     string `json:"slug"`
	ImageURL string `json:"imageUrl"`
}

// Progress tracks the reading position inside a book.
type Progress struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Status describes circulation state plus a free-form display line.
type Status struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Section is one ordered block of detail content.
type Section struct {
	Title string `json:"title"`
	ID    string `json:"id"`
	// Content is an ordered list of paragraph strings.
	Content []string `json:"content"`
}

// Detail is the per-slug document. Its title/author/coverUrl copies are
// shadowed by the manifest whenever both exist.
type Detail struct {
	CoverURL string    `json:"coverUrl"`
	Author   string    `json:"author"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
	Status   Status    `json:"status"`
	Sections []Section `json:"sections,omitempty"`
}

// View is the merged read model served to clients.
type View struct {
	ID       string    `json:"id"`
	Slug     string    `json:"slug"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	CoverURL string    `json:"coverUrl"`
	Subtitle string    `json:"subtitle,omitempty"`
	Progress *Progress `json:"progress,omitempty"`
	Status   Status    `json:"status"`
	Sections []Section `json:"sections,omitempty"`
}

// # Merging & Synthesis

// merge combines a manifest entry with a detail document. Manifest
// title/author/image always win; the detail document is authoritative for
// subtitle, progress, status, and sections.
func merge(meta Metadata, detail *Detail) *View {
	return &View{
		ID:       meta.ID,
		Slug:     meta.Slug,
		Title:    meta.Title,
		Author:   meta.Author,
		CoverURL: meta.ImageURL,
		Subtitle: detail.Subtitle,
		Progress: detail.Progress,
		Status:   detail.Status,
		Sections: detail.Sections,
	}
}

// synthesizeDetail builds the deterministic default detail document for a
// manifest entry that has none yet.
func synthesizeDetail(meta Metadata) *Detail {
	return &Detail{
		CoverURL: meta.ImageURL,
		Author:   meta.Author,
		Title:    meta.Title,
		Status:   Status{Type: StatusAvailable, Text: "On the shelf"},
	}
}
