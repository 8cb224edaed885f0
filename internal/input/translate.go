package input

import tea "github.com/charmbracelet/bubbletea"

// TranslateKey converts a winit-style key event (here, a bubbletea
// tea.KeyMsg) into the byte sequence written to the pane's PTY
// (spec.md §4.8 step 6). Grounded directly on the teacher's
// translateKey, extended with the function-key and insert sequences
// the teacher's kanban-focused pane never needed.
func TranslateKey(msg tea.KeyMsg) []byte {
	key := msg.String()

	switch {
	// Ctrl+A through Ctrl+Z -> 0x01-0x1A
	case len(key) == 6 && key[:5] == "ctrl+" && key[5] >= 'a' && key[5] <= 'z':
		return []byte{byte(key[5] - 'a' + 1)}

	// Alt+letter -> ESC + letter
	case len(key) == 5 && key[:4] == "alt+" && key[4] >= 'a' && key[4] <= 'z':
		return []byte{27, key[4]}
	}

	switch msg.Type {
	case tea.KeyEnter:
		return []byte("\r")
	case tea.KeyBackspace:
		return []byte{127}
	case tea.KeyTab:
		if msg.Alt {
			return []byte("\x1b[Z")
		}
		return []byte("\t")
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyEscape:
		return []byte{27}
	case tea.KeyHome:
		return []byte("\x1b[H")
	case tea.KeyEnd:
		return []byte("\x1b[F")
	case tea.KeyPgUp:
		return []byte("\x1b[5~")
	case tea.KeyPgDown:
		return []byte("\x1b[6~")
	case tea.KeyDelete:
		return []byte("\x1b[3~")
	case tea.KeyInsert:
		return []byte("\x1b[2~")
	case tea.KeySpace:
		return []byte(" ")
	case tea.KeyF1:
		return []byte("\x1bOP")
	case tea.KeyF2:
		return []byte("\x1bOQ")
	case tea.KeyF3:
		return []byte("\x1bOR")
	case tea.KeyF4:
		return []byte("\x1bOS")
	case tea.KeyF5:
		return []byte("\x1b[15~")
	case tea.KeyF6:
		return []byte("\x1b[17~")
	case tea.KeyF7:
		return []byte("\x1b[18~")
	case tea.KeyF8:
		return []byte("\x1b[19~")
	case tea.KeyF9:
		return []byte("\x1b[20~")
	case tea.KeyF10:
		return []byte("\x1b[21~")
	case tea.KeyF11:
		return []byte("\x1b[23~")
	case tea.KeyF12:
		return []byte("\x1b[24~")
	case tea.KeyRunes:
		return []byte(string(msg.Runes))
	}

	return nil
}

const (
	bracketedPasteStart = "\x1b[200~"
	bracketedPasteEnd   = "\x1b[201~"
)

// WrapBracketedPaste wraps text with the bracketed-paste start/end
// markers when enabled is true (the pane's mouse/paste mode negotiated
// via DECSET 2004), matching the wire contract in spec.md §6.
// Unwrapped pastes are returned verbatim.
func WrapBracketedPaste(text string, enabled bool) string {
	if !enabled {
		return text
	}
	return bracketedPasteStart + text + bracketedPasteEnd
}
