// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package book

import "context"

// # Store Interface

// Repository abstracts persistence for the book catalogue.
type Repository interface {
	/*
		Manifest reads every metadata entry from the catalogue manifest.

		Returns:
		  - []Metadata: entries in manifest order, empty when the manifest is absent
		  - error: read or decode failure
	*/
	Manifest(ctx context.Context) ([]Metadata, error)

	/*
		ReadDetail loads the detail document for one book.

		Parameters:
		  - slug: the book slug, used as the document basename

		Returns:
		  - *Detail: the decoded document
		  - error: a wrapped fs.ErrNotExist when no detail document exists
	*/
	ReadDetail(ctx context.Context, slug string) (*Detail, error)

	/*
		WriteDetail persists a detail document for one book, creating it
		when absent. Existing documents are left untouched.

		Parameters:
		  - slug: the book slug, used as the document basename
		  - detail: the document to encode

		Returns:
		  - error: a wrapped fs.ErrExist when a document already exists
	*/
	WriteDetail(ctx context.Context, slug string, detail *Detail) error
}
