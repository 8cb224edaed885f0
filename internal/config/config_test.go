package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() failed its own Validate: %v", err)
	}
}

func TestValidateRejectsOutOfRangeFontSize(t *testing.T) {
	cfg := Default()
	cfg.Font.SizePx = 300

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an out-of-range font size to fail validation")
	}
}

func TestValidateRejectsNegativePadding(t *testing.T) {
	cfg := Default()
	cfg.Padding.Left = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative padding to fail validation")
	}
}

func TestValidateRejectsUnknownCursorStyle(t *testing.T) {
	cfg := Default()
	cfg.Cursor.Style = CursorStyle("triangle")

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected an unknown cursor style to fail validation")
	}
}

func TestParseUnknownKeyWarnsRatherThanFails(t *testing.T) {
	data := []byte("font:\n  family: Fira Code\n  size_px: 16\nbogus_key: true\n")

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("expected an unknown top-level key to parse leniently, got %v", err)
	}
	if cfg.Font.Family != "Fira Code" || cfg.Font.SizePx != 16 {
		t.Fatalf("expected the rest of the document to still apply, got %+v", cfg.Font)
	}
}

func TestParseStartsFromDefaultsForOmittedSections(t *testing.T) {
	data := []byte("font:\n  family: Fira Code\n  size_px: 16\n")

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scrollback.Lines != Default().Scrollback.Lines {
		t.Fatalf("expected an omitted section to keep its default, got %+v", cfg.Scrollback)
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	data := []byte("scrollback:\n  lines: -1\n")

	if _, err := Parse(data); err == nil {
		t.Fatal("expected a validation failure to surface from Parse")
	}
}

func TestLoadMissingFileReturnsDefaultsAndError(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Fatal("expected loading a missing file to return an error")
	}
	if cfg.Font != Default().Font || cfg.Colors.Theme != Default().Colors.Theme {
		t.Fatalf("expected the fallback config on a missing file to match Default(), got %+v", cfg)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.Font.SizePx = 18
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Font.SizePx != 18 {
		t.Fatalf("expected the saved font size to round-trip, got %d", loaded.Font.SizePx)
	}
}

func TestPrintDefaultProducesParseableYAML(t *testing.T) {
	data, err := PrintDefault()
	if err != nil {
		t.Fatalf("PrintDefault: %v", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("expected PrintDefault's output to parse back cleanly, got %v", err)
	}
	if cfg.Font != Default().Font || cfg.Cursor != Default().Cursor || cfg.Scrollback != Default().Scrollback {
		t.Fatal("expected PrintDefault's output to parse back to Default()")
	}
}

func TestInitConfigDirExplicitDirWins(t *testing.T) {
	explicit := t.TempDir()
	sub := filepath.Join(explicit, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := InitConfigDir(sub); err != nil {
		t.Fatalf("InitConfigDir: %v", err)
	}
	if ConfigDir != sub {
		t.Fatalf("expected an existing explicit dir to win, got %q", ConfigDir)
	}
}

func TestResolvedColorsFallsBackToMagentaOnBadHex(t *testing.T) {
	colors := ThemeColors{Background: "not-a-color"}
	resolved := colors.Resolve()

	if resolved.Background != errParseSentinel {
		t.Fatalf("expected an unparseable hex token to resolve to the sentinel color, got %+v", resolved.Background)
	}
}

func TestGetThemeFallsBackToMochaForUnknownName(t *testing.T) {
	theme := GetTheme("not-a-real-theme", nil)

	if theme.Name != BuiltinThemes["catppuccin-mocha"].Name {
		t.Fatalf("expected an unknown theme name to fall back to catppuccin-mocha, got %q", theme.Name)
	}
}

func TestGetThemeAppliesOverridesOnTopOfBase(t *testing.T) {
	overrides := &ThemeColors{Background: "#000000"}
	theme := GetTheme("tokyo-night", overrides)

	if theme.Colors.Background != "#000000" {
		t.Fatalf("expected the override to win for background, got %q", theme.Colors.Background)
	}
	if theme.Colors.Text != BuiltinThemes["tokyo-night"].Colors.Text {
		t.Fatalf("expected fields without an override to keep the base theme's value, got %q", theme.Colors.Text)
	}
}
