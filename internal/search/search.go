// Package search implements the Search Engine (spec.md §4.9, C9): a
// pure, regex-based line search with wrap-around match navigation and
// viewport-filtered highlighting. No teacher file searches terminal
// content (openkanban has no search mode), so the regex-over-lines
// shape follows the pack's general idiom of small pure functions over
// stdlib regexp, matched to the determinism property spec.md §8
// requires.
package search

import "regexp"

// Match is one matched span within a line.
type Match struct {
	Row   int
	Start int
	End   int
}

// Result is the outcome of a search call (spec.md §4.9 SearchResult).
type Result struct {
	Matches    []Match
	TotalCount int
	Err        string
}

// Search runs a case-insensitive regex search for query over lines. An
// empty query yields no matches; an invalid regex returns Err set and
// no matches — it never panics (spec.md §7 RegexError policy).
func Search(query string, lines []string) Result {
	if query == "" {
		return Result{}
	}

	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		return Result{Err: err.Error()}
	}

	var matches []Match
	for row, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			matches = append(matches, Match{Row: row, Start: loc[0], End: loc[1]})
		}
	}
	return Result{Matches: matches, TotalCount: len(matches)}
}

// State is the per-pane incremental search mode state (spec.md §3,
// §4.9 SearchState).
type State struct {
	Query        string
	Matches      []Match
	CurrentIndex int
	Active       bool
}

// SetQuery re-runs the search and resets the current match index to 0.
func (s *State) SetQuery(query string, lines []string) Result {
	s.Query = query
	res := Search(query, lines)
	s.Matches = res.Matches
	s.CurrentIndex = 0
	return res
}

// NextMatch advances to the next match, wrapping to 0 past the end.
func (s *State) NextMatch() {
	if len(s.Matches) == 0 {
		return
	}
	s.CurrentIndex = (s.CurrentIndex + 1) % len(s.Matches)
}

// PrevMatch moves to the previous match, wrapping to the last past the
// start.
func (s *State) PrevMatch() {
	if len(s.Matches) == 0 {
		return
	}
	s.CurrentIndex = (s.CurrentIndex - 1 + len(s.Matches)) % len(s.Matches)
}

// VisibleMatches filters Matches to those within [viewportStart,
// viewportEnd] expanded by bufferRows on each side (default 5), for
// the render composer's highlight pass.
func VisibleMatches(matches []Match, viewportStart, viewportEnd, bufferRows int) []Match {
	lo := viewportStart - bufferRows
	hi := viewportEnd + bufferRows
	var out []Match
	for _, m := range matches {
		if m.Row >= lo && m.Row <= hi {
			out = append(out, m)
		}
	}
	return out
}

// ScrollTarget returns the row of the current match and ok=true when it
// falls outside [viewportStart, viewportEnd] and the dispatcher should
// adjust the display offset; ok=false when the match is already visible
// or there is no current match.
func (s *State) ScrollTarget(viewportStart, viewportEnd int) (row int, ok bool) {
	if len(s.Matches) == 0 || s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Matches) {
		return 0, false
	}
	row = s.Matches[s.CurrentIndex].Row
	if row >= viewportStart && row <= viewportEnd {
		return 0, false
	}
	return row, true
}
