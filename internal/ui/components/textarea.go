package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextAreaRows is the visible height of a free-text answer.
const TextAreaRows = 3

// TextArea wraps bubbles/textarea for free-text answers.
type TextArea struct {
	Model textarea.Model
}

// NewTextArea creates a focused editor holding value.
func NewTextArea(value string, width int) TextArea {
	ta := textarea.New()
	ta.Placeholder = "Type your answer"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(TextAreaRows)
	if width > 0 {
		ta.SetWidth(width)
	}
	ta.SetValue(value)

	return TextArea{Model: ta}
}

// Init returns the focus command.
func (t *TextArea) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the editor and reports whether the text
// changed.
func (t TextArea) Update(msg tea.Msg) (TextArea, tea.Cmd, bool) {
	before := t.Model.Value()
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd, t.Model.Value() != before
}

// SetWidth resizes the editor.
func (t *TextArea) SetWidth(width int) {
	if width > 0 {
		t.Model.SetWidth(width)
	}
}

// View renders the editor.
func (t TextArea) View() string {
	return t.Model.View()
}

// Value returns the current text.
func (t TextArea) Value() string {
	return t.Model.Value()
}
