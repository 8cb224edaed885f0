package render

import (
	"fmt"
	"strings"

	"github.com/veloterm/veloterm/internal/geom"
)

// WriteANSI renders grid as a terminal-displayable string, the
// software compositor fallback used where there is no GPU device to
// submit CellInstances to. It is grounded on the teacher's
// buildANSI/colorToANSI/renderLiveRow batched-SGR-run technique:
// consecutive cells sharing style are coalesced into one SGR escape
// plus a run of runes, flushed whenever style, cursor, or selection
// state changes.
func WriteANSI(grid [][]GridCell) string {
	var out strings.Builder
	out.Grow(len(grid) * 32)

	for r, row := range grid {
		if r > 0 {
			out.WriteByte('\n')
		}
		writeANSIRow(&out, row)
	}
	return out.String()
}

func writeANSIRow(out *strings.Builder, row []GridCell) {
	var batch strings.Builder
	var currentFG, currentBG geom.Color
	var currentFlags CellFlags
	firstCell := true

	flush := func() {
		if batch.Len() == 0 {
			return
		}
		if currentFlags&(FlagIsCursor|FlagSelected) != 0 {
			out.WriteString("\x1b[7m")
		} else {
			out.WriteString(buildSGR(currentFG, currentBG, currentFlags))
		}
		out.WriteString(batch.String())
		out.WriteString("\x1b[0m")
		batch.Reset()
	}

	for _, cell := range row {
		styleFlags := cell.Flags &^ (FlagHasGlyph | flagCursorShapeBit0 | flagCursorShapeBit1)

		if !firstCell && (cell.FG != currentFG || cell.BG != currentBG || styleFlags != currentFlags) {
			flush()
		}

		currentFG = cell.FG
		currentBG = cell.BG
		currentFlags = styleFlags
		firstCell = false

		ch := cell.Char
		if ch == 0 {
			ch = ' '
		}
		batch.WriteRune(ch)
	}
	flush()
}

// buildSGR constructs the SGR escape for one style run (spec.md §4.7:
// the ANSI fallback composites the same overlay flags a GPU frame
// would, minus the cursor/selection reverse-video special case handled
// by the caller).
func buildSGR(fg, bg geom.Color, flags CellFlags) string {
	var parts []string

	if code := colorSGR(fg, true); code != "" {
		parts = append(parts, code)
	}
	if code := colorSGR(bg, false); code != "" {
		parts = append(parts, code)
	}
	if flags&FlagUnderline != 0 {
		parts = append(parts, "4")
	}
	if flags&FlagStrikethrough != 0 {
		parts = append(parts, "9")
	}
	if flags&FlagSearchMatch != 0 {
		parts = append(parts, "43") // yellow background highlight
	}
	if flags&FlagSearchMatchActive != 0 {
		parts = append(parts, "103") // bright yellow background for the active match
	}

	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("\x1b[%sm", strings.Join(parts, ";"))
}

// colorSGR emits a 24-bit truecolor SGR component. Fully-transparent
// colors (alpha == 0) are treated as "use terminal default" and emit
// nothing, mirroring the teacher's sentinel-value default-color check.
func colorSGR(c geom.Color, isFG bool) string {
	if c.A == 0 {
		return ""
	}
	base := 38
	if !isFG {
		base = 48
	}
	r := clamp255(c.R)
	g := clamp255(c.G)
	b := clamp255(c.B)
	return fmt.Sprintf("%d;2;%d;%d;%d", base, r, g, b)
}

func clamp255(v float32) int {
	n := int(v * 255)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

