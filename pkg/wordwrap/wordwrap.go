// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

// Package wordwrap breaks paragraph text into display lines at word boundaries.
//
// # Usage
//
// Field notes reference line numbers relative to their target paragraph, so
// the server and the renderer must agree on exactly how a paragraph wraps at
// the desktop content column. This package is that single source of truth:
// the same (text, width) input always yields the same line sequence.
//
// # Properties
//
//   - No line exceeds the width, except a single word longer than the width,
//     which occupies its own line unsplit.
//   - Joining the lines with single spaces reconstructs the original text up
//     to whitespace normalization.
package wordwrap

import "strings"

// Lines wraps text to at most width characters per line using greedy
// word-boundary filling. Words are never split.
//
// Empty or all-whitespace text yields no lines. A non-positive width puts
// every word on its own line.
func Lines(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, len(text)/max(width, 1)+1)
	var current strings.Builder

	for _, word := range words {
		if current.Len() == 0 {
			current.WriteString(word)
			continue
		}

		// +1 for the joining space
		if current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
			current.WriteString(word)
			continue
		}

		current.WriteByte(' ')
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}
