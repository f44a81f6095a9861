// Package alert shows a blocking message, the terminal counterpart of a
// browser alert box.
package alert

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizclient/internal/router"
	"github.com/abhisek/quizclient/internal/screen"
	"github.com/abhisek/quizclient/internal/ui/layout"
	"github.com/abhisek/quizclient/internal/ui/theme"
)

// AlertScreen shows a message until any key is pressed.
type AlertScreen struct {
	message string
}

var _ screen.Screen = (*AlertScreen)(nil)
var _ screen.KeyHintProvider = (*AlertScreen)(nil)

// New creates an AlertScreen for message.
func New(message string) *AlertScreen {
	return &AlertScreen{message: message}
}

// Message returns the alert text.
func (a *AlertScreen) Message() string {
	return a.message
}

func (a *AlertScreen) Init() tea.Cmd {
	return nil
}

func (a *AlertScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		return a, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return a, nil
}

func (a *AlertScreen) View(width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(1, 3).
		Foreground(theme.Text).
		Render(a.message + "\n\n" + theme.Hint.Render("Press any key"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (a *AlertScreen) Title() string {
	return "Alert"
}

func (a *AlertScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Dismiss"}}
}
