package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/veloterm/veloterm/internal/geom"
)

// Theme represents a color theme for the UI.
type Theme struct {
	Name   string      `yaml:"name"`
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors contains every color token spec.md §6 names. Each field is
// a "#rrggbb" or "#rrggbbaa" hex string; Resolve converts the whole set
// to geom.Color for the renderer.
type ThemeColors struct {
	Background       string `yaml:"background"`
	Surface          string `yaml:"surface"`
	SurfaceRaised    string `yaml:"surface_raised"`
	TerminalBg       string `yaml:"terminal_bg"`
	Text             string `yaml:"text"`
	TextSecondary    string `yaml:"text_secondary"`
	TextDim          string `yaml:"text_dim"`
	Border           string `yaml:"border"`
	BorderSubtle     string `yaml:"border_subtle"`
	Accent           string `yaml:"accent"`
	Success          string `yaml:"success"`
	Blue             string `yaml:"blue"`
	Error            string `yaml:"error"`
	Selection        string `yaml:"selection"`
	SearchMatch      string `yaml:"search_match"`
	SearchMatchActive string `yaml:"search_match_active"`
}

// ResolvedColors is ThemeColors parsed into renderer-ready geom.Color values.
type ResolvedColors struct {
	Background, Surface, SurfaceRaised, TerminalBg     geom.Color
	Text, TextSecondary, TextDim                       geom.Color
	Border, BorderSubtle                                geom.Color
	Accent, Success, Blue, Error                        geom.Color
	Selection, SearchMatch, SearchMatchActive           geom.Color
}

// Resolve parses every hex token in c, falling back to opaque magenta
// (a deliberately loud "this color failed to parse" sentinel) for any
// field that doesn't parse, so a single bad hex value can't abort
// startup or a hot-reload.
func (c ThemeColors) Resolve() ResolvedColors {
	p := func(s string) geom.Color { return parseHexColor(s) }
	return ResolvedColors{
		Background:        p(c.Background),
		Surface:           p(c.Surface),
		SurfaceRaised:     p(c.SurfaceRaised),
		TerminalBg:        p(c.TerminalBg),
		Text:              p(c.Text),
		TextSecondary:     p(c.TextSecondary),
		TextDim:           p(c.TextDim),
		Border:            p(c.Border),
		BorderSubtle:      p(c.BorderSubtle),
		Accent:            p(c.Accent),
		Success:           p(c.Success),
		Blue:              p(c.Blue),
		Error:             p(c.Error),
		Selection:         p(c.Selection),
		SearchMatch:       p(c.SearchMatch),
		SearchMatchActive: p(c.SearchMatchActive),
	}
}

var errParseSentinel = geom.RGBA(1, 0, 1, 1)

func parseHexColor(s string) geom.Color {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return errParseSentinel
	}
	r, err1 := strconv.ParseUint(s[0:2], 16, 8)
	g, err2 := strconv.ParseUint(s[2:4], 16, 8)
	b, err3 := strconv.ParseUint(s[4:6], 16, 8)
	a := uint64(255)
	var err4 error
	if len(s) == 8 {
		a, err4 = strconv.ParseUint(s[6:8], 16, 8)
	}
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return errParseSentinel
	}
	return geom.RGBA(float32(r)/255, float32(g)/255, float32(b)/255, float32(a)/255)
}

// BuiltinThemes contains all pre-defined themes.
var BuiltinThemes = map[string]Theme{
	"catppuccin-mocha": {
		Name: "Catppuccin Mocha",
		Colors: ThemeColors{
			Background: "#1e1e2e", Surface: "#313244", SurfaceRaised: "#45475a",
			TerminalBg: "#1e1e2e", Text: "#cdd6f4", TextSecondary: "#a6adc8", TextDim: "#6c7086",
			Border: "#45475a", BorderSubtle: "#313244",
			Accent: "#cba6f7", Success: "#a6e3a1", Blue: "#89b4fa", Error: "#f38ba8",
			Selection: "#585b7066", SearchMatch: "#f9e2af66", SearchMatchActive: "#fab387cc",
		},
	},
	"tokyo-night": {
		Name: "Tokyo Night",
		Colors: ThemeColors{
			Background: "#1a1b26", Surface: "#24283b", SurfaceRaised: "#414868",
			TerminalBg: "#1a1b26", Text: "#c0caf5", TextSecondary: "#a9b1d6", TextDim: "#565f89",
			Border: "#414868", BorderSubtle: "#24283b",
			Accent: "#bb9af7", Success: "#9ece6a", Blue: "#7aa2f7", Error: "#f7768e",
			Selection: "#33467c66", SearchMatch: "#e0af6866", SearchMatchActive: "#ff9e64cc",
		},
	},
	"gruvbox-dark": {
		Name: "Gruvbox Dark",
		Colors: ThemeColors{
			Background: "#282828", Surface: "#3c3836", SurfaceRaised: "#504945",
			TerminalBg: "#282828", Text: "#ebdbb2", TextSecondary: "#d5c4a1", TextDim: "#928374",
			Border: "#504945", BorderSubtle: "#3c3836",
			Accent: "#d3869b", Success: "#b8bb26", Blue: "#83a598", Error: "#fb4934",
			Selection: "#45858866", SearchMatch: "#fabd2f66", SearchMatchActive: "#fe8019cc",
		},
	},
	"nord": {
		Name: "Nord",
		Colors: ThemeColors{
			Background: "#2e3440", Surface: "#3b4252", SurfaceRaised: "#434c5e",
			TerminalBg: "#2e3440", Text: "#eceff4", TextSecondary: "#e5e9f0", TextDim: "#4c566a",
			Border: "#434c5e", BorderSubtle: "#3b4252",
			Accent: "#b48ead", Success: "#a3be8c", Blue: "#81a1c1", Error: "#bf616a",
			Selection: "#4c566a66", SearchMatch: "#ebcb8b66", SearchMatchActive: "#d08770cc",
		},
	},
	"dracula": {
		Name: "Dracula",
		Colors: ThemeColors{
			Background: "#282a36", Surface: "#44475a", SurfaceRaised: "#6272a4",
			TerminalBg: "#282a36", Text: "#f8f8f2", TextSecondary: "#e9e9e4", TextDim: "#6272a4",
			Border: "#6272a4", BorderSubtle: "#44475a",
			Accent: "#bd93f9", Success: "#50fa7b", Blue: "#8be9fd", Error: "#ff5555",
			Selection: "#44475a99", SearchMatch: "#f1fa8c66", SearchMatchActive: "#ffb86ccc",
		},
	},
	"solarized-dark": {
		Name: "Solarized Dark",
		Colors: ThemeColors{
			Background: "#002b36", Surface: "#073642", SurfaceRaised: "#586e75",
			TerminalBg: "#002b36", Text: "#839496", TextSecondary: "#93a1a1", TextDim: "#657b83",
			Border: "#586e75", BorderSubtle: "#073642",
			Accent: "#6c71c4", Success: "#859900", Blue: "#268bd2", Error: "#dc322f",
			Selection: "#07364299", SearchMatch: "#b5890066", SearchMatchActive: "#cb4b16cc",
		},
	},
}

// ThemeNames returns the list of all built-in theme names.
func ThemeNames() []string {
	names := make([]string, 0, len(BuiltinThemes))
	for name := range BuiltinThemes {
		names = append(names, name)
	}
	return names
}

// GetTheme returns a theme by name, with optional custom color overrides.
// Falls back to catppuccin-mocha when name is unknown, per the
// ConfigParseError recovery principle in spec.md §7 (keep a consistent
// previous/default state rather than fail outright).
func GetTheme(name string, overrides *ThemeColors) Theme {
	theme, ok := BuiltinThemes[name]
	if !ok {
		theme = BuiltinThemes["catppuccin-mocha"]
	}
	if overrides != nil {
		theme.Colors = mergeColors(theme.Colors, *overrides)
	}
	return theme
}

func mergeColors(base, overrides ThemeColors) ThemeColors {
	merge := func(base, override string) string {
		if override != "" {
			return override
		}
		return base
	}
	return ThemeColors{
		Background:        merge(base.Background, overrides.Background),
		Surface:           merge(base.Surface, overrides.Surface),
		SurfaceRaised:     merge(base.SurfaceRaised, overrides.SurfaceRaised),
		TerminalBg:        merge(base.TerminalBg, overrides.TerminalBg),
		Text:              merge(base.Text, overrides.Text),
		TextSecondary:     merge(base.TextSecondary, overrides.TextSecondary),
		TextDim:           merge(base.TextDim, overrides.TextDim),
		Border:            merge(base.Border, overrides.Border),
		BorderSubtle:      merge(base.BorderSubtle, overrides.BorderSubtle),
		Accent:            merge(base.Accent, overrides.Accent),
		Success:           merge(base.Success, overrides.Success),
		Blue:              merge(base.Blue, overrides.Blue),
		Error:             merge(base.Error, overrides.Error),
		Selection:         merge(base.Selection, overrides.Selection),
		SearchMatch:       merge(base.SearchMatch, overrides.SearchMatch),
		SearchMatchActive: merge(base.SearchMatchActive, overrides.SearchMatchActive),
	}
}

// IsValidTheme reports whether name is a known built-in theme.
func IsValidTheme(name string) bool {
	_, ok := BuiltinThemes[name]
	return ok
}

// ErrUnknownTheme is returned by ValidateThemeName.
var ErrUnknownTheme = fmt.Errorf("unknown theme")

// ValidateThemeName returns a descriptive error for an unknown theme name.
func ValidateThemeName(name string) error {
	if IsValidTheme(name) {
		return nil
	}
	return fmt.Errorf("%w: %q (known themes: %s)", ErrUnknownTheme, name, strings.Join(ThemeNames(), ", "))
}
