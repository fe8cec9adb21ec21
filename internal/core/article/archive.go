// Copyright (c) 2026 Fieldpress. All rights reserved.
// Author: m.billard.dev@gmail.com

package article

import (
	"fmt"
	"sort"
	"time"
)

// # Archive Index

// Entry is one article as listed in the archive: filename-derived identity
// plus the display metadata read from the document header.
type Entry struct {
	// Filename is the stored document name.
	Filename string `json:"filename"`
	// Name is the slug recovered from the filename.
	Name string `json:"name"`
	// Title is the display title (header.mainHeader, or the humanized name
	// when the document cannot be read).
	Title string `json:"title"`
	// Year comes from the header's canonical date; Month and Day come from
	// the filename fragment.
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	// DateLabel is the short display form, e.g. "Oct, 03".
	DateLabel string `json:"dateLabel"`
}

// YearGroup is one archive section: a year and its entries, most recent first.
type YearGroup struct {
	Year     int     `json:"year"`
	Articles []Entry `json:"articles"`
}

// sortEntries orders entries most recent first: year, month, day descending,
// with ascending filename as the deterministic tie-break for identical dates.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		if a.Day != b.Day {
			return a.Day > b.Day
		}
		return a.Filename < b.Filename
	})
}

// groupByYear splits date-sorted entries into per-year sections, years
// descending. Input order is preserved within each group.
func groupByYear(entries []Entry) []YearGroup {
	groups := make([]YearGroup, 0)
	byYear := make(map[int]int)

	for _, entry := range entries {
		idx, seen := byYear[entry.Year]
		if !seen {
			byYear[entry.Year] = len(groups)
			groups = append(groups, YearGroup{Year: entry.Year})
			idx = len(groups) - 1
		}
		groups[idx].Articles = append(groups[idx].Articles, entry)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Year > groups[j].Year
	})

	return groups
}

// dateLabel formats the short archive date, e.g. "Oct, 03".
func dateLabel(month, day int) string {
	return fmt.Sprintf("%s, %02d", time.Month(month).String()[:3], day)
}
