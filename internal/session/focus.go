package session

import (
	"github.com/abhisek/quizclient/internal/quiz"
	"github.com/abhisek/quizclient/internal/view"
)

// Keyboard focus over the rendered questions. Focus moves never touch a
// timer; only a selection or an edit does.

// Focused returns the index of the focused question, or -1 when none is
// rendered.
func (c *Controller) Focused() int {
	if len(c.rows) == 0 {
		return -1
	}
	return c.focus
}

// FocusedQuestion returns the focused question.
func (c *Controller) FocusedQuestion() (quiz.Question, bool) {
	i := c.Focused()
	if i < 0 {
		return quiz.Question{}, false
	}
	return c.rows[i].q, true
}

// Focus moves focus to question i, clamped to the page.
func (c *Controller) Focus(i int) {
	if len(c.rows) == 0 {
		return
	}
	c.focus = max(0, min(i, len(c.rows)-1))
}

// FocusNext moves to the next question, wrapping at the end.
func (c *Controller) FocusNext() {
	if len(c.rows) == 0 {
		return
	}
	c.focus = (c.focus + 1) % len(c.rows)
}

// FocusPrev moves to the previous question, wrapping at the start.
func (c *Controller) FocusPrev() {
	if len(c.rows) == 0 {
		return
	}
	c.focus = (c.focus - 1 + len(c.rows)) % len(c.rows)
}

// MoveChoice moves the option cursor of the focused radio question by
// delta, clamped to its choices.
func (c *Controller) MoveChoice(delta int) {
	i := c.Focused()
	if i < 0 || !c.rows[i].q.IsRadio() {
		return
	}
	n := len(view.Choices(c.rows[i].q))
	if n == 0 {
		return
	}
	st := &c.rows[i].st
	st.FocusIndex = max(0, min(st.FocusIndex+delta, n-1))
}

// SelectFocused checks the option under the cursor of the focused question.
func (c *Controller) SelectFocused() error {
	i := c.Focused()
	if i < 0 {
		return ErrNoQuestions
	}
	return c.selectAt(i, c.rows[i].st.FocusIndex)
}

// SelectFocusedIndex checks option index of the focused question.
func (c *Controller) SelectFocusedIndex(index int) error {
	i := c.Focused()
	if i < 0 {
		return ErrNoQuestions
	}
	return c.selectAt(i, index)
}

// TypeFocused sets the free-text answer of the focused question.
func (c *Controller) TypeFocused(text string) error {
	i := c.Focused()
	if i < 0 {
		return ErrNoQuestions
	}
	return c.typeAt(i, text)
}
