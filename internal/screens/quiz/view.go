package quiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizclient/internal/ui/components"
	"github.com/abhisek/quizclient/internal/ui/layout"
	"github.com/abhisek/quizclient/internal/ui/termview"
	"github.com/abhisek/quizclient/internal/ui/theme"
	"github.com/abhisek/quizclient/internal/view"
)

func (s *QuizScreen) View(width, height int) string {
	if width != s.width {
		s.width = width
		if s.editor != nil {
			s.editor.SetWidth(s.editorWidth())
		}
	}
	inner := max(width-2, 10)

	var slots termview.Slots
	if s.editor != nil {
		slots = termview.Slots{s.editorFor: s.editor.View()}
	}

	status := s.renderStatus(inner)
	lines := lipgloss.Height(status)
	blocks := []string{status}
	focusTop, focusBottom := 0, 0

	add := func(b string) {
		if b == "" {
			return
		}
		blocks = append(blocks, b)
		lines += lipgloss.Height(b)
	}

	page := s.ctrl.View()
	for _, child := range page.Children {
		if child.ID() != view.QuizID {
			add(termview.RenderWithKeys(child, inner, slots, buttonKeys))
			continue
		}
		for i, row := range child.Children {
			if i == s.ctrl.Focused() {
				focusTop = lines
			}
			add(termview.RenderWithKeys(row, inner, slots, buttonKeys))
			if i == s.ctrl.Focused() {
				focusBottom = lines
			}
		}
	}

	content := strings.Join(blocks, "\n")
	if focusBottom == 0 {
		// Nothing focused: keep the results in view.
		focusTop = lipgloss.Height(content) - 1
		focusBottom = focusTop + 1
	}

	var visible string
	visible, s.offset = layout.Window(content, height, s.offset, focusTop, focusBottom)
	return lipgloss.NewStyle().PaddingLeft(1).Render(visible)
}

func (s *QuizScreen) renderStatus(width int) string {
	total := len(s.ctrl.Questions())
	if total == 0 {
		if s.busy != "" {
			return theme.Hint.Render(s.busy)
		}
		return theme.Hint.Render("Press Ctrl+N to start a quiz.")
	}

	bar := components.NewProgressBar("Answered", s.ctrl.Answered(), total, min(width, 50)).View()
	if s.busy != "" {
		bar += "  " + theme.Hint.Render(s.busy)
	}
	return bar
}
