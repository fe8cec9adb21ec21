// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import "context"

// # Article Document Access

// Repository defines the data access contract for stored article documents.
//
// Implementations address documents by filename only; the filename convention
// itself ([DeriveFilename], [ParseFilename]) stays in the domain layer.
type Repository interface {

	/*
		ListFilenames returns the filenames of every stored document, in
		unspecified order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []string: Stored filenames
		  - error: Storage failures
	*/
	ListFilenames(context context.Context) ([]string, error)

	/*
		Read returns the raw bytes of one stored document.

		Parameters:
		  - context: context.Context
		  - filename: string

		Returns:
		  - []byte: Document payload
		  - error: fs.ErrNotExist if missing, other storage failures otherwise
	*/
	Read(context context.Context, filename string) ([]byte, error)

	/*
		Write persists a new document as a single whole-file create.

		Parameters:
		  - context: context.Context
		  - filename: string
		  - data: []byte

		Returns:
		  - error: fs.ErrExist if the filename is already taken (never
		    overwrites), other storage failures otherwise
	*/
	Write(context context.Context, filename string, data []byte) error

	/*
		Delete removes one stored document.

		Parameters:
		  - context: context.Context
		  - filename: string

		Returns:
		  - error: fs.ErrNotExist if missing, other storage failures otherwise
	*/
	Delete(context context.Context, filename string) error
}
