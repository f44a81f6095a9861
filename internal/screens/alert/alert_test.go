package alert

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizclient/internal/router"
)

func TestAnyKeyPops(t *testing.T) {
	a := New("No quiz loaded. Click Start Quiz again.")

	_, cmd := a.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestNonKeyIgnored(t *testing.T) {
	a := New("hello")
	if _, cmd := a.Update(tea.WindowSizeMsg{Width: 80, Height: 24}); cmd != nil {
		t.Error("expected no command for a non-key message")
	}
}

func TestViewShowsMessage(t *testing.T) {
	out := ansi.Strip(New("No questions found. Click Start Quiz again.").View(80, 20))
	if !strings.Contains(out, "No questions found.") {
		t.Errorf("view missing message:\n%s", out)
	}
}
