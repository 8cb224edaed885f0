package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTranslateKeyCtrlLetterToControlByte(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyCtrlA}
	got := TranslateKey(msg)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected ctrl+a to translate to byte 0x01, got %v (string=%q)", got, msg.String())
	}
}

func TestTranslateKeyEnterIsCR(t *testing.T) {
	got := TranslateKey(tea.KeyMsg{Type: tea.KeyEnter})
	if string(got) != "\r" {
		t.Fatalf("expected enter to translate to CR, got %q", got)
	}
}

func TestTranslateKeyBackspaceIsDEL(t *testing.T) {
	got := TranslateKey(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(got) != 1 || got[0] != 127 {
		t.Fatalf("expected backspace to translate to 0x7F, got %v", got)
	}
}

func TestTranslateKeyArrowsEmitCSI(t *testing.T) {
	cases := map[tea.KeyType]string{
		tea.KeyUp:    "\x1b[A",
		tea.KeyDown:  "\x1b[B",
		tea.KeyRight: "\x1b[C",
		tea.KeyLeft:  "\x1b[D",
	}
	for kt, want := range cases {
		got := TranslateKey(tea.KeyMsg{Type: kt})
		if string(got) != want {
			t.Fatalf("expected %v to translate to %q, got %q", kt, want, got)
		}
	}
}

func TestTranslateKeyRunesPassThrough(t *testing.T) {
	got := TranslateKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if string(got) != "hi" {
		t.Fatalf("expected printable runes passed through, got %q", got)
	}
}

func TestTranslateKeyAltLetterIsEscPrefixed(t *testing.T) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Alt: true, Runes: []rune("a")}
	got := TranslateKey(msg)
	if len(got) != 2 || got[0] != 27 || got[1] != 'a' {
		t.Fatalf("expected alt+a to translate to ESC 'a', got %v (string=%q)", got, msg.String())
	}
}

func TestWrapBracketedPasteWrapsWhenEnabled(t *testing.T) {
	got := WrapBracketedPaste("hello", true)
	want := "\x1b[200~hello\x1b[201~"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapBracketedPastePassthroughWhenDisabled(t *testing.T) {
	got := WrapBracketedPaste("hello", false)
	if got != "hello" {
		t.Fatalf("expected text unwrapped, got %q", got)
	}
}
