package termview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/quizclient/internal/quiz"
	"github.com/abhisek/quizclient/internal/ui/components"
	"github.com/abhisek/quizclient/internal/view"
)

func plain(n *view.Node, slots Slots) string {
	return ansi.Strip(Render(n, 80, slots))
}

func TestStrip(t *testing.T) {
	if got := Strip(`<b>a</b> &amp; <script>x()</script>b`); got != "a & b" {
		t.Errorf("Strip() = %q", got)
	}
}

func TestRender_RadioQuestion(t *testing.T) {
	q := quiz.Question{ID: "q1", Prompt: "Sky is blue?", Type: quiz.TypeTF}
	st := view.EmptyRow()
	st.Selected = 0
	st.Focused = true
	st.FocusIndex = 1

	out := plain(view.Question(q, st, view.DefaultOptions()), nil)

	for _, want := range []string{"Sky is blue?", components.RadioOn + " True", components.CursorMark + " " + components.RadioOff + " False"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_TextQuestion(t *testing.T) {
	q := quiz.Question{ID: "f1", Prompt: "Explain", Type: quiz.TypeFRQ}

	out := plain(view.Question(q, view.EmptyRow(), view.DefaultOptions()), nil)
	if !strings.Contains(out, EmptyAnswerHint) {
		t.Errorf("expected empty hint:\n%s", out)
	}

	out = plain(view.Question(q, view.EmptyRow(), view.DefaultOptions()), Slots{"f1": "<live editor>"})
	if !strings.Contains(out, "<live editor>") || strings.Contains(out, EmptyAnswerHint) {
		t.Errorf("slot should replace the answer:\n%s", out)
	}
}

func TestRender_Banner(t *testing.T) {
	out := plain(view.KeywordBanner([]string{"<i>ATP</i>", "glucose"}), nil)
	if !strings.Contains(out, view.KeywordsHeading) {
		t.Errorf("missing heading:\n%s", out)
	}
	if !strings.Contains(out, "ATP, glucose") {
		t.Errorf("keywords should be stripped of markup:\n%s", out)
	}

	out = plain(view.KeywordBanner(nil), nil)
	if !strings.Contains(out, view.NoKeywordsText) {
		t.Errorf("missing placeholder:\n%s", out)
	}
}

func TestRender_Results(t *testing.T) {
	res, err := quiz.DecodeGradeResult([]byte(`{"score_total":1,"score_max":2,"time_summary_ms":900,
		"per_question":[{"id":"q1","type":"tf","earned":1,"max":1,"time_ms":900,"feedback":"<b>Nice</b>"}]}`))
	if err != nil {
		t.Fatal(err)
	}

	out := plain(view.Results(res, view.DefaultOptions(), false), nil)
	for _, want := range []string{"Score: 1 / 2", "Total time: 900 ms", "Q ID", "Nice", Collapsed + " " + view.RawResultSummary} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>") || strings.Contains(out, `"score_total"`) {
		t.Errorf("markup or collapsed dump leaked:\n%s", out)
	}

	open := plain(view.Results(res, view.DefaultOptions(), true), nil)
	if !strings.Contains(open, `"score_total": 1`) {
		t.Errorf("expanded dump missing:\n%s", open)
	}
}

func TestRender_PageButtons(t *testing.T) {
	out := plain(view.PageTree(view.Page{Results: view.Message("Start failed: boom")}), nil)
	for _, want := range []string{"Start Quiz", "Submit", "Start failed: boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
