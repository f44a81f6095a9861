package components

import (
	"github.com/abhisek/quizclient/internal/ui/theme"
)

// Button is a styled button. Disabled buttons render dimmed.
type Button struct {
	Label  string
	Active bool
	// Key is the shortcut shown after the label, if any.
	Key string
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{
		Label:  label,
		Active: active,
	}
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label += " [" + b.Key + "]"
	}
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
