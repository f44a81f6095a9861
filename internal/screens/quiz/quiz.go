// Package quiz is the interactive quiz page: start, answer, submit and read
// the results.
package quiz

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizclient/internal/router"
	"github.com/abhisek/quizclient/internal/screen"
	"github.com/abhisek/quizclient/internal/screens/alert"
	"github.com/abhisek/quizclient/internal/session"
	"github.com/abhisek/quizclient/internal/ui/components"
	"github.com/abhisek/quizclient/internal/ui/layout"
	"github.com/abhisek/quizclient/internal/view"
)

// Keys bound to the page buttons.
const (
	KeyStart  = "ctrl+n"
	KeySubmit = "ctrl+s"
	KeyRaw    = "ctrl+o"
)

// QuizScreen implements screen.Screen for the quiz page.
type QuizScreen struct {
	ctrl *session.Controller

	// editor is the live editor of the focused free-text question.
	editor    *components.TextArea
	editorFor string

	busy   string
	width  int
	offset int
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)
var _ screen.Resumer = (*QuizScreen)(nil)

// New creates a QuizScreen driving ctrl.
func New(ctrl *session.Controller) *QuizScreen {
	return &QuizScreen{ctrl: ctrl}
}

// Controller returns the page controller.
func (s *QuizScreen) Controller() *session.Controller {
	return s.ctrl
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Quiz"
}

// Status shows the loaded quiz id and the page state.
func (s *QuizScreen) Status() string {
	if s.busy != "" {
		return s.busy
	}
	if id := s.ctrl.QuizID(); id != "" {
		return fmt.Sprintf("%s · %s", id, s.ctrl.State())
	}
	return s.ctrl.State().String()
}

// Resume refocuses the editor after an alert is dismissed.
func (s *QuizScreen) Resume() tea.Cmd {
	if s.editor != nil {
		return s.editor.Init()
	}
	return nil
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Ctrl+N", Description: "Start Quiz"}}
	if s.ctrl.State() == session.StateIdle {
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}

	hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Next"})
	if q, ok := s.ctrl.FocusedQuestion(); ok {
		if q.IsRadio() {
			hints = append(hints,
				layout.KeyHint{Key: "↑↓", Description: "Move"},
				layout.KeyHint{Key: "Space", Description: "Choose"},
			)
		} else {
			hints = append(hints, layout.KeyHint{Key: "type", Description: "Answer"})
		}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+S", Description: "Submit"})
	if s.ctrl.Result() != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+O", Description: "Raw result"})
	}
	return hints
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		if s.editor != nil {
			s.editor.SetWidth(s.editorWidth())
		}
		return s, nil

	case quizLoadedMsg:
		return s.handleLoaded(msg)

	case gradedMsg:
		return s.handleGraded(msg)

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.editor != nil {
		var cmd tea.Cmd
		*s.editor, cmd, _ = s.editor.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case KeyStart:
		return s, s.start()
	case KeySubmit:
		return s, s.submit()
	case KeyRaw:
		if s.ctrl.Result() != nil {
			s.ctrl.ToggleRaw()
		}
		return s, nil
	case "tab":
		s.ctrl.FocusNext()
		return s, s.syncEditor()
	case "shift+tab":
		s.ctrl.FocusPrev()
		return s, s.syncEditor()
	}

	if s.editor != nil {
		return s, s.edit(msg)
	}

	q, ok := s.ctrl.FocusedQuestion()
	if !ok || !q.IsRadio() {
		return s, nil
	}

	key := msg.String()
	switch key {
	case "up", "k", "left":
		s.ctrl.MoveChoice(-1)
	case "down", "j", "right":
		s.ctrl.MoveChoice(1)
	case "space", "enter":
		_ = s.ctrl.SelectFocused()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// Out-of-range digits are ignored.
		_ = s.ctrl.SelectFocusedIndex(int(key[0] - '1'))
	}
	return s, nil
}

// edit forwards a key to the editor and records the text when it changes.
func (s *QuizScreen) edit(msg tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	var changed bool
	*s.editor, cmd, changed = s.editor.Update(msg)
	if changed {
		_ = s.ctrl.TypeFocused(s.editor.Value())
	}
	return cmd
}

func (s *QuizScreen) start() tea.Cmd {
	s.busy = "Loading quiz..."
	ctrl := s.ctrl
	return func() tea.Msg {
		q, err := ctrl.Load(context.Background())
		return quizLoadedMsg{Quiz: q, Err: err}
	}
}

func (s *QuizScreen) handleLoaded(msg quizLoadedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	if msg.Err != nil {
		s.ctrl.ApplyStartError(msg.Err)
		return s, nil
	}
	s.ctrl.Apply(msg.Quiz)
	s.offset = 0
	s.editor = nil
	s.editorFor = ""
	return s, s.syncEditor()
}

func (s *QuizScreen) submit() tea.Cmd {
	// The button is disabled until a quiz has been started.
	if s.ctrl.State() == session.StateIdle {
		return nil
	}
	req, err := s.ctrl.PrepareSubmission()
	if err != nil {
		if ae, ok := session.IsAlert(err); ok {
			return func() tea.Msg { return router.PushScreenMsg{Screen: alert.New(ae.Msg)} }
		}
		return nil
	}

	s.busy = "Submitting..."
	ctrl := s.ctrl
	return func() tea.Msg {
		res, err := ctrl.Grade(context.Background(), req)
		return gradedMsg{Result: res, Err: err}
	}
}

func (s *QuizScreen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	s.busy = ""
	s.ctrl.ApplyGrade(msg.Result, msg.Err)
	return s, nil
}

// syncEditor opens an editor when a free-text question gains focus and
// drops it when focus moves to a choice question.
func (s *QuizScreen) syncEditor() tea.Cmd {
	q, ok := s.ctrl.FocusedQuestion()
	if !ok || q.IsRadio() {
		s.editor = nil
		s.editorFor = ""
		return nil
	}
	if s.editor != nil && s.editorFor == string(q.ID) {
		return nil
	}

	st, _ := s.ctrl.Row(s.ctrl.Focused())
	ed := components.NewTextArea(st.Text, s.editorWidth())
	s.editor = &ed
	s.editorFor = string(q.ID)
	return s.editor.Init()
}

func (s *QuizScreen) editorWidth() int {
	// Card border and padding on both sides.
	return max(s.width-8, 0)
}

// buttonKeys labels the page buttons with their shortcuts.
var buttonKeys = map[string]string{
	view.StartBtnID:  KeyStart,
	view.SubmitBtnID: KeySubmit,
}
