// Package shellintegration implements the Shell-Event Digest (spec.md
// §4.10, C10): per-pane state built from a stream of shell-integration
// events (OSC 133 prompt/command boundaries, OSC 7 CWD, OSC 0/2 title).
// Parsing the OSC wire bytes themselves is an external collaborator's
// job per spec.md §1; this package only consumes the already-decoded
// Event values it would produce.
package shellintegration

import (
	"path"
	"strings"
	"time"
)

const (
	promptRingCap  = 1000
	commandRingCap = 256
)

// Command is one recorded command's timing and outcome.
type Command struct {
	Start      time.Time
	End        time.Time
	ExitStatus int
}

// Duration returns how long the command ran.
func (c Command) Duration() time.Duration {
	return c.End.Sub(c.Start)
}

// State is one pane's shell-integration digest (spec.md §3 ShellState).
type State struct {
	Prompts  []int // row positions, bounded ring
	Commands []Command

	CWD             string
	Title           string
	TitleExplicit   bool
	ForegroundProc  string // queried externally; "" if unknown

	commandStart time.Time
	hasCommand   bool
}

// OnPromptStart records a prompt-start (OSC 133;A) at row.
func (s *State) OnPromptStart(row int) {
	s.Prompts = append(s.Prompts, row)
	if len(s.Prompts) > promptRingCap {
		s.Prompts = s.Prompts[len(s.Prompts)-promptRingCap:]
	}
}

// OnCommandStart records a command-start (OSC 133;B).
func (s *State) OnCommandStart(now time.Time) {
	s.commandStart = now
	s.hasCommand = true
}

// OnCommandEnd records a command-end (OSC 133;D;exit_status). Returns
// notify=true when the owning pane is unfocused and the command's
// duration exceeded thresholdMs — the caller sets the owning tab's
// notification badge.
func (s *State) OnCommandEnd(now time.Time, exitStatus int, focused bool, thresholdMs int) (notify bool) {
	if !s.hasCommand {
		return false
	}
	cmd := Command{Start: s.commandStart, End: now, ExitStatus: exitStatus}
	s.Commands = append(s.Commands, cmd)
	if len(s.Commands) > commandRingCap {
		s.Commands = s.Commands[len(s.Commands)-commandRingCap:]
	}
	s.hasCommand = false

	if focused {
		return false
	}
	return cmd.Duration() >= time.Duration(thresholdMs)*time.Millisecond
}

// OnCWDChange records a CWD update (OSC 7). If no explicit title is
// set, it also derives a new tab title from basename(cwd), truncated
// with an ellipsis when it would exceed pixelBudget under measure.
// Returns the new title and whether it changed.
func (s *State) OnCWDChange(cwd string, pixelBudget int, measure func(string) int) (title string, changed bool) {
	s.CWD = cwd
	if s.TitleExplicit {
		return s.Title, false
	}
	base := path.Base(cwd)
	if base == "." || base == "/" {
		base = cwd
	}
	truncated := truncateToBudget(base, pixelBudget, measure)
	if truncated == s.Title {
		return s.Title, false
	}
	s.Title = truncated
	return s.Title, true
}

// OnTitleChange records an explicit title set (OSC 0/2).
func (s *State) OnTitleChange(title string) {
	s.Title = title
	s.TitleExplicit = true
}

// truncateToBudget shortens s with a trailing ellipsis until measure(s)
// fits within pixelBudget. measure is injected so tests don't need a
// real font metric.
func truncateToBudget(s string, pixelBudget int, measure func(string) int) string {
	if measure == nil || pixelBudget <= 0 || measure(s) <= pixelBudget {
		return s
	}
	runes := []rune(s)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if measure(candidate) <= pixelBudget {
			return candidate
		}
	}
	return string(runes) + "…"
}

// knownShellNames are excluded from the "foreground process name"
// title-priority tier (spec.md §4.10: "if queried externally and not a
// known shell name").
var knownShellNames = map[string]bool{
	"bash": true, "zsh": true, "fish": true, "sh": true, "dash": true,
}

// DeriveTitle applies the title-priority rule: explicit > foreground
// process name (if known and not a shell) > CWD basename > fallback.
func (s *State) DeriveTitle(fallback string) string {
	if s.TitleExplicit && s.Title != "" {
		return s.Title
	}
	if s.ForegroundProc != "" && !knownShellNames[strings.ToLower(s.ForegroundProc)] {
		return s.ForegroundProc
	}
	if s.CWD != "" {
		base := path.Base(s.CWD)
		if base != "." && base != "/" {
			return base
		}
	}
	return fallback
}
