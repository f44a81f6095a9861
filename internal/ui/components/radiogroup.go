package components

import (
	"strings"

	"github.com/abhisek/quizclient/internal/ui/theme"
)

// Radio glyphs.
const (
	RadioOn    = "(•)"
	RadioOff   = "( )"
	CursorMark = "›"
)

// RadioGroup renders one-of-N options with a checked mark and an optional
// cursor.
type RadioGroup struct {
	Options []string
	// Selected is the checked option, or -1.
	Selected int
	// Cursor is the option under keyboard focus, or -1.
	Cursor int
}

// NewRadioGroup creates a group with nothing checked and no cursor.
func NewRadioGroup(options []string) RadioGroup {
	return RadioGroup{Options: options, Selected: -1, Cursor: -1}
}

// View renders one line per option.
func (g RadioGroup) View() string {
	lines := make([]string, len(g.Options))
	for i, opt := range g.Options {
		mark := RadioOff
		style := theme.Unselected
		if i == g.Selected {
			mark = RadioOn
			style = theme.Selected
		}

		prefix := "  "
		if i == g.Cursor {
			prefix = theme.Cursor.Render(CursorMark) + " "
		}

		lines[i] = prefix + style.Render(mark+" "+opt)
	}
	return strings.Join(lines, "\n")
}
