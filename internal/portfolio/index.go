// Package portfolio maps technologies to example-work links loaded from a
// CSV file. The mapping is read-mostly: Load replaces it wholesale, Lookup
// never mutates it.
package portfolio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/amishk599/coldreach/internal/model"
)

// Ensure Index implements model.LinkMatcher.
var _ model.LinkMatcher = (*Index)(nil)

// Entry is one skill-tag → link pair from the portfolio CSV.
type Entry struct {
	Tag  string
	Link string
}

// Index is a CSV-backed portfolio. Lookup policy, fixed here and covered by
// tests: exact case-insensitive tag match first; skills with no exact match
// fall back to substring matching (either direction); up to linksPerSkill
// links are collected per query skill; the final result is deduplicated in
// first-seen order.
type Index struct {
	path          string
	linksPerSkill int

	mu      sync.RWMutex
	entries []Entry // replaced wholesale on each Load
}

// NewIndex creates an index reading from the CSV at path.
// linksPerSkill caps how many links one query skill may contribute.
func NewIndex(path string, linksPerSkill int) *Index {
	return &Index{
		path:          path,
		linksPerSkill: linksPerSkill,
	}
}

// Load reads the CSV and swaps in the new mapping atomically. Repeated calls
// reload without leaking stale entries. The CSV must carry a techstack column
// and a links column (header match is case-insensitive); a techstack cell may
// hold several comma-separated tags that all point at the row's link.
func (ix *Index) Load() error {
	f, err := os.Open(ix.path)
	if err != nil {
		return &model.LoadError{Path: ix.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // validated per row below

	records, err := r.ReadAll()
	if err != nil {
		return &model.LoadError{Path: ix.path, Err: fmt.Errorf("parse CSV: %w", err)}
	}
	if len(records) == 0 {
		return &model.LoadError{Path: ix.path, Err: fmt.Errorf("empty file")}
	}

	tagCol, linkCol := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "techstack", "skills", "tech":
			tagCol = i
		case "links", "link", "url":
			linkCol = i
		}
	}
	if tagCol == -1 {
		return &model.LoadError{Path: ix.path, Err: fmt.Errorf("missing techstack column")}
	}
	if linkCol == -1 {
		return &model.LoadError{Path: ix.path, Err: fmt.Errorf("missing links column")}
	}

	var entries []Entry
	for _, row := range records[1:] {
		if tagCol >= len(row) || linkCol >= len(row) {
			continue // short row, nothing usable
		}
		link := strings.TrimSpace(row[linkCol])
		if link == "" {
			continue
		}
		for _, tag := range strings.Split(row[tagCol], ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			entries = append(entries, Entry{Tag: tag, Link: link})
		}
	}

	ix.mu.Lock()
	ix.entries = entries
	ix.mu.Unlock()

	return nil
}

// Lookup returns portfolio links for the given skills. Empty skills yields an
// empty result, never an error. Read-only: safe for concurrent use with
// other Lookups.
func (ix *Index) Lookup(skills []string) []string {
	ix.mu.RLock()
	entries := ix.entries
	ix.mu.RUnlock()

	links := []string{}
	seen := make(map[string]bool)

	for _, skill := range skills {
		want := strings.ToLower(strings.TrimSpace(skill))
		if want == "" {
			continue
		}

		matched := matchLinks(entries, want, true)
		if len(matched) == 0 {
			matched = matchLinks(entries, want, false)
		}

		taken := 0
		for _, link := range matched {
			if taken == ix.linksPerSkill {
				break
			}
			taken++
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}

	return links
}

// Entries returns a snapshot of the loaded entries, for preflight display.
func (ix *Index) Entries() []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]Entry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// matchLinks collects links whose tag matches want. Exact mode compares the
// lowercased tag; substring mode accepts containment in either direction.
func matchLinks(entries []Entry, want string, exact bool) []string {
	var out []string
	for _, e := range entries {
		tag := strings.ToLower(e.Tag)
		if exact {
			if tag == want {
				out = append(out, e.Link)
			}
			continue
		}
		if strings.Contains(tag, want) || strings.Contains(want, tag) {
			out = append(out, e.Link)
		}
	}
	return out
}
