// Package config loads and hot-reloads VeloTerm's configuration file
// (spec.md §6), in the teacher's style of a single package-level
// directory resolver (see InitConfigDir) plus a struct the rest of the
// program reads fields from directly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v2"
)

// Font configures the glyph atlas (C1).
type Font struct {
	Family              string  `yaml:"family"`
	SizePx              int     `yaml:"size_px"`
	LineHeightMultiplier float64 `yaml:"line_height_multiplier"`
}

// Padding insets the grid area inside a pane's rect.
type Padding struct {
	Top    float32 `yaml:"top"`
	Right  float32 `yaml:"right"`
	Bottom float32 `yaml:"bottom"`
	Left   float32 `yaml:"left"`
}

// CursorStyle is the default (unfocused-independent) cursor shape.
type CursorStyle string

const (
	CursorBlock     CursorStyle = "block"
	CursorBeam      CursorStyle = "beam"
	CursorUnderline CursorStyle = "underline"
)

// Cursor configures default cursor rendering.
type Cursor struct {
	Style       CursorStyle `yaml:"style"`
	BlinkRateMs int         `yaml:"blink_rate_ms"`
}

// Scrollback configures the terminal-model history cap.
type Scrollback struct {
	Lines int `yaml:"lines"`
}

// Keys holds the action -> chord-list keybinding table plus the
// platform default modifier (Command on Darwin, Control elsewhere).
type Keys struct {
	DefaultModifier string              `yaml:"default_modifier,omitempty"`
	Bindings        map[string][]string `yaml:"bindings"`
}

// Colors selects a built-in theme by name and/or overrides individual
// tokens (spec.md §6: "theme name OR explicit tokens").
type Colors struct {
	Theme     string       `yaml:"theme"`
	Overrides *ThemeColors `yaml:"overrides,omitempty"`
}

// Links configures the link detector (C11).
type Links struct {
	Enabled  bool   `yaml:"enabled"`
	Modifier string `yaml:"modifier"`
}

// Shell configures the shell-event digest (C10).
type Shell struct {
	Enabled                bool `yaml:"enabled"`
	LongCommandThresholdMs int  `yaml:"long_command_threshold_ms"`
}

// ViMode configures modal vi-style input (§4.8).
type ViMode struct {
	Enabled  bool   `yaml:"enabled"`
	EntryKey string `yaml:"entry_key"`
}

// Config is the full VeloTerm configuration document.
type Config struct {
	Font       Font       `yaml:"font"`
	Padding    Padding    `yaml:"padding"`
	Cursor     Cursor     `yaml:"cursor"`
	Scrollback Scrollback `yaml:"scrollback"`
	Keys       Keys       `yaml:"keys"`
	Colors     Colors     `yaml:"colors"`
	Links      Links      `yaml:"links"`
	Shell      Shell      `yaml:"shell"`
	ViMode     ViMode     `yaml:"vi_mode"`
}

// Default returns the out-of-the-box configuration. Every field here is
// what `--print-default-config` emits, so keep the two in sync.
func Default() Config {
	return Config{
		Font: Font{
			Family:               "JetBrains Mono",
			SizePx:               13,
			LineHeightMultiplier: 1.5,
		},
		Padding: Padding{Top: 12, Right: 12, Bottom: 12, Left: 12},
		Cursor: Cursor{
			Style:       CursorBlock,
			BlinkRateMs: 600,
		},
		Scrollback: Scrollback{Lines: 10000},
		Keys: Keys{
			DefaultModifier: defaultPlatformModifier(),
			Bindings: map[string][]string{
				"new_tab":       {"mod+t"},
				"close_tab":     {"mod+w"},
				"next_tab":      {"mod+shift+]"},
				"prev_tab":      {"mod+shift+["},
				"split_right":   {"mod+d"},
				"split_down":    {"mod+shift+d"},
				"close_pane":    {"mod+shift+w"},
				"zoom_toggle":   {"mod+shift+enter"},
				"focus_left":    {"mod+alt+left"},
				"focus_right":   {"mod+alt+right"},
				"focus_up":      {"mod+alt+up"},
				"focus_down":    {"mod+alt+down"},
				"copy":          {"mod+c"},
				"paste":         {"mod+v"},
				"select_all":    {"mod+a"},
				"font_increase": {"mod+="},
				"font_decrease": {"mod+-"},
				"font_reset":    {"mod+0"},
				"search":        {"mod+f"},
				"prev_prompt":   {"mod+up"},
				"next_prompt":   {"mod+down"},
			},
		},
		Colors: Colors{Theme: "catppuccin-mocha"},
		Links: Links{Enabled: true, Modifier: defaultPlatformModifier()},
		Shell: Shell{Enabled: true, LongCommandThresholdMs: 10000},
		ViMode: ViMode{Enabled: true, EntryKey: "ctrl+shift+v"},
	}
}

func defaultPlatformModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}

// ResolvedColors resolves the theme + overrides into renderer colors.
func (c Config) ResolvedColors() ResolvedColors {
	theme := GetTheme(c.Colors.Theme, c.Colors.Overrides)
	return theme.Colors.Resolve()
}

// Validate checks invariants the spec calls out explicitly (size ranges,
// non-negative padding, valid enums) and returns the first violation.
// It never mutates c; callers decide whether to keep the old config or
// fall back to defaults per the ConfigParseError policy in spec.md §7.
func (c Config) Validate() error {
	if c.Font.SizePx < 6 || c.Font.SizePx > 256 {
		return fmt.Errorf("font.size_px: %d out of range [6, 256]", c.Font.SizePx)
	}
	if c.Font.LineHeightMultiplier < 0.5 || c.Font.LineHeightMultiplier > 3.0 {
		return fmt.Errorf("font.line_height_multiplier: %v out of range [0.5, 3.0]", c.Font.LineHeightMultiplier)
	}
	if c.Padding.Top < 0 || c.Padding.Right < 0 || c.Padding.Bottom < 0 || c.Padding.Left < 0 {
		return fmt.Errorf("padding: all edges must be >= 0")
	}
	switch c.Cursor.Style {
	case CursorBlock, CursorBeam, CursorUnderline:
	default:
		return fmt.Errorf("cursor.style: %q is not one of block, beam, underline", c.Cursor.Style)
	}
	if c.Cursor.BlinkRateMs != 0 && (c.Cursor.BlinkRateMs < 100 || c.Cursor.BlinkRateMs > 2000) {
		return fmt.Errorf("cursor.blink_rate_ms: %d must be 0 or in [100, 2000]", c.Cursor.BlinkRateMs)
	}
	if c.Scrollback.Lines <= 0 {
		return fmt.Errorf("scrollback.lines: must be > 0")
	}
	if err := ValidateThemeName(c.Colors.Theme); err != nil && c.Colors.Theme != "" {
		return err
	}
	return nil
}

// ConfigDir is the resolved per-platform configuration directory,
// matching the teacher's package-level InitConfigDir pattern.
var ConfigDir string

// InitConfigDir resolves VeloTerm's config directory: XDG_CONFIG_HOME
// (or ~/.config) on Unix-likes, %APPDATA% on Windows, creating it if
// missing. An explicit flagConfigDir always wins when it exists.
func InitConfigDir(flagConfigDir string) error {
	if flagConfigDir != "" {
		if _, err := os.Stat(flagConfigDir); err == nil {
			ConfigDir = flagConfigDir
			return nil
		}
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			base = home
		} else {
			base = filepath.Join(home, ".config")
		}
	}
	ConfigDir = filepath.Join(base, "veloterm")

	if err := os.MkdirAll(ConfigDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return nil
}

// ConfigPath returns the path of the config file within ConfigDir.
func ConfigPath() string {
	return filepath.Join(ConfigDir, "config.yaml")
}

// Load reads and parses the config file at path. On any read or parse
// error it returns the error alongside Default(), so callers can apply
// the startup fallback policy in spec.md §7 ("fall back to defaults and
// log") without a second code path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses raw YAML bytes into a Config, starting from Default() so
// a partial document still yields sane values for omitted sections, and
// validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		if isUnknownFieldError(err) {
			// Unknown keys warn but do not fail (spec.md §6); retry
			// with a lenient unmarshal so the rest of the document
			// still applies.
			cfg = Default()
			if lenientErr := yaml.Unmarshal(data, &cfg); lenientErr != nil {
				return Default(), fmt.Errorf("parsing config: %w", lenientErr)
			}
		} else {
			return Default(), fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func isUnknownFieldError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return len(msg) > 0 && (contains(msg, "field") && contains(msg, "not found"))
}

func contains(s, substr string) bool {
	return len(s) >= len(substr) && (func() bool {
		for i := 0; i+len(substr) <= len(s); i++ {
			if s[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	})()
}

// Save serializes cfg as YAML to path.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PrintDefault writes the default config as YAML, for the
// --print-default-config CLI flag (spec.md §6): "emits a complete
// parseable default config to stdout".
func PrintDefault() ([]byte, error) {
	return yaml.Marshal(Default())
}
