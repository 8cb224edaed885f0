// Package linkdetect implements the Link Detector (spec.md §4.11, C11):
// a regex-driven scan of visible lines for URLs and absolute paths,
// mapping cells to links for underline overlay and modifier-click
// dispatch. No repo in the pack depends on a dedicated linkify library,
// so URL candidates are found with stdlib regexp and validated with
// net/url — the grounded stdlib choice recorded in DESIGN.md.
package linkdetect

import (
	"net/url"
	"regexp"
	"strings"
)

// Kind distinguishes the two link varieties the detector recognizes.
type Kind int

const (
	URL Kind = iota
	FilePath
)

// Position is a (row, col) cell coordinate.
type Position struct {
	Row, Col int
}

// Link is one detected link span (spec.md §3 DetectedLink).
type Link struct {
	Kind  Kind
	Start Position
	End   Position // inclusive
	Text  string
}

// urlPattern matches http/https/ftp URLs. It is intentionally broad;
// trailing punctuation is stripped by trimTrailingChars below.
var urlPattern = regexp.MustCompile(`(?:https?|ftp)://[^\s]+`)

// absPathPattern matches absolute paths (/a/b/c) and home-relative
// paths (~/a/b), requiring at least one additional '/' beyond the
// leading one so a bare "/" or "~/" never qualifies.
var absPathPattern = regexp.MustCompile(`(?:/[A-Za-z0-9._/-]+|~/[A-Za-z0-9._/-]+)`)

var trailingStripSet = ")]>'\""

// trimTrailingChars strips closing punctuation a URL/path match is
// likely to have swallowed from surrounding prose (spec.md §4.11).
func trimTrailingChars(s string) string {
	for len(s) > 0 && strings.ContainsRune(trailingStripSet, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return s
}

func hasExtraSlash(s string) bool {
	prefix := 1
	if strings.HasPrefix(s, "~/") {
		prefix = 2
	}
	return strings.Contains(s[prefix:], "/")
}

// DetectLine scans one row of text and returns every link found: URL
// links first, then file-path links, each group ordered by starting
// column.
func DetectLine(row int, text string) []Link {
	var links []Link

	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		trimmed := trimTrailingChars(raw)
		if trimmed == "" {
			continue
		}
		if _, err := url.Parse(trimmed); err != nil {
			continue
		}
		startCol := loc[0]
		endCol := startCol + len([]rune(trimmed)) - 1
		links = append(links, Link{Kind: URL, Start: Position{Row: row, Col: startCol}, End: Position{Row: row, Col: endCol}, Text: trimmed})
	}

	for _, loc := range absPathPattern.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		trimmed := trimTrailingChars(raw)
		if trimmed == "" || !hasExtraSlash(trimmed) {
			continue
		}
		if overlapsAny(links, row, loc[0], loc[0]+len([]rune(trimmed))-1) {
			continue
		}
		startCol := loc[0]
		endCol := startCol + len([]rune(trimmed)) - 1
		links = append(links, Link{Kind: FilePath, Start: Position{Row: row, Col: startCol}, End: Position{Row: row, Col: endCol}, Text: trimmed})
	}

	return links
}

func overlapsAny(links []Link, row, startCol, endCol int) bool {
	for _, l := range links {
		if l.Start.Row != row {
			continue
		}
		if startCol <= l.End.Col && endCol >= l.Start.Col {
			return true
		}
	}
	return false
}

// Index holds the links detected across every currently-visible line,
// rebuilt event-driven from damage (§4.11: "not per frame").
type Index struct {
	links []Link
}

// Rebuild replaces the index's contents from freshly detected lines.
func (idx *Index) Rebuild(lines map[int]string) {
	idx.links = idx.links[:0]
	for row, text := range lines {
		idx.links = append(idx.links, DetectLine(row, text)...)
	}
}

// LinkAt performs a linear scan (spec.md: "a small list, ≤ ~100
// typically") for the link containing (row, col).
func (idx *Index) LinkAt(row, col int) (Link, bool) {
	for _, l := range idx.links {
		if row != l.Start.Row || row != l.End.Row {
			continue
		}
		if col >= l.Start.Col && col <= l.End.Col {
			return l, true
		}
	}
	return Link{}, false
}

// All returns every currently-indexed link.
func (idx *Index) All() []Link {
	return idx.links
}
