package view

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/quizclient/internal/quiz"
)

func tfQuestion() quiz.Question {
	return quiz.Question{ID: "q1", Prompt: "Sky is blue?", Type: quiz.TypeTF}
}

func TestQuestion_TrueFalseRadios(t *testing.T) {
	n := Question(tfQuestion(), EmptyRow(), DefaultOptions())

	if got, _ := n.Attr(AttrQuestionID); got != "q1" {
		t.Fatalf("data-qid = %q, want q1", got)
	}
	inputs := n.FindAll(ByTag("input"))
	if len(inputs) != 2 {
		t.Fatalf("expected 2 radios, got %d", len(inputs))
	}

	var values, ids []string
	for _, in := range inputs {
		v, _ := in.Attr("value")
		values = append(values, v)
		ids = append(ids, in.ID())
		if name, _ := in.Attr("name"); name != "q1" {
			t.Errorf("radio name = %q, want q1", name)
		}
		if in.HasAttr("checked") {
			t.Errorf("fresh row should have nothing checked")
		}
	}
	if diff := cmp.Diff([]string{"true", "false"}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"q1-True", "q1-False"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if n.Find(ByTag("textarea")) != nil {
		t.Error("tf question should not render a textarea")
	}
}

func TestQuestion_MCQOptionsInOrder(t *testing.T) {
	q := quiz.Question{ID: "m", Prompt: "Pick", Type: quiz.TypeMCQ, Options: []string{"b", "a", "true"}}
	st := EmptyRow()
	st.Selected = 2
	n := Question(q, st, DefaultOptions())

	inputs := n.FindAll(ByTag("input"))
	var values []string
	for _, in := range inputs {
		v, _ := in.Attr("value")
		values = append(values, v)
	}
	if diff := cmp.Diff([]string{"b", "a", "true"}, values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if inputs[1].ID() != "m-1" {
		t.Errorf("second option id = %q, want m-1", inputs[1].ID())
	}
	if !inputs[2].HasAttr("checked") {
		t.Error("selected option should be checked")
	}
}

func TestQuestion_FreeTextFallback(t *testing.T) {
	for _, typ := range []string{quiz.TypeFRQ, "essay", ""} {
		q := quiz.Question{ID: "f", Prompt: "Explain", Type: typ, Options: []string{"ignored"}}
		st := EmptyRow()
		st.Text = "because"
		n := Question(q, st, DefaultOptions())

		ta := n.Find(ByTag("textarea"))
		if ta == nil {
			t.Fatalf("type %q: expected textarea", typ)
		}
		if rows, _ := ta.Attr("rows"); rows != "3" {
			t.Errorf("type %q: rows = %q, want 3", typ, rows)
		}
		if ta.TextContent() != "because" {
			t.Errorf("type %q: textarea text = %q", typ, ta.TextContent())
		}
		if n.Find(ByTag("input")) != nil {
			t.Errorf("type %q: no radios expected", typ)
		}
	}
}

func TestQuestion_PromptIsText(t *testing.T) {
	q := quiz.Question{ID: "x", Prompt: "<b>bold</b>", Type: quiz.TypeFRQ}
	n := Question(q, EmptyRow(), DefaultOptions())
	p := n.Find(ByClass("prompt"))
	if p == nil || p.Children[0].Kind != KindText {
		t.Fatal("prompt should be a text node")
	}
}

func TestStatsText(t *testing.T) {
	rate := 0.666
	tests := []struct {
		name  string
		stats quiz.Stats
		want  string
	}{
		{"new", quiz.Stats{}, NewQuestionText},
		{"server rate", quiz.Stats{Seen: 3, Correct: 2, CorrectRate: &rate}, "Class performance: 2/3 correct (67%)."},
		{"derived rate", quiz.Stats{Seen: 4, Correct: 1}, "Class performance: 1/4 correct (25%)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatsText(tt.stats); got != tt.want {
				t.Errorf("StatsText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuestion_StatsToggle(t *testing.T) {
	q := tfQuestion()
	q.Stats = &quiz.Stats{}

	if Question(q, EmptyRow(), DefaultOptions()).Find(ByClass("stats")) == nil {
		t.Error("stats line expected when enabled")
	}
	opts := DefaultOptions()
	opts.ShowStats = false
	if Question(q, EmptyRow(), opts).Find(ByClass("stats")) != nil {
		t.Error("stats line should be hidden")
	}
}

func TestCollectKeywords(t *testing.T) {
	questions := []quiz.Question{
		{ID: "1", Type: quiz.TypeFRQ, Keywords: quiz.Keywords{" beta ", "Alpha", "alpha", ""}},
		{ID: "2", Type: quiz.TypeMCQ, Keywords: quiz.Keywords{"ignored"}},
		{ID: "3", Type: quiz.TypeFRQ, Keywords: quiz.Keywords{"beta", "Gamma"}},
	}

	t.Run("preserve", func(t *testing.T) {
		got := CollectKeywords(&quiz.Quiz{Questions: questions}, KeywordsPreserve)
		want := []string{"Alpha", "alpha", "beta", "Gamma"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("lowercase", func(t *testing.T) {
		got := CollectKeywords(&quiz.Quiz{Questions: questions}, KeywordsLowercase)
		want := []string{"alpha", "beta", "gamma"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("top-level list verbatim", func(t *testing.T) {
		q := &quiz.Quiz{Questions: questions, Keywords: []string{"z", "A"}, HasKeywords: true}
		got := CollectKeywords(q, KeywordsLowercase)
		if diff := cmp.Diff([]string{"z", "A"}, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestKeywordBanner(t *testing.T) {
	empty := KeywordBanner(nil)
	if empty.ID() != KeywordsBannerID {
		t.Fatalf("banner id = %q", empty.ID())
	}
	if !strings.Contains(empty.TextContent(), NoKeywordsText) {
		t.Errorf("empty banner should show placeholder, got %q", empty.TextContent())
	}

	full := KeywordBanner([]string{"ATP", "glucose"})
	content := full.Find(ByID(KeywordsContentID))
	if got := content.TextContent(); got != "ATP, glucose" {
		t.Errorf("content = %q", got)
	}
	if !strings.HasPrefix(full.TextContent(), KeywordsHeading) {
		t.Errorf("banner should start with heading, got %q", full.TextContent())
	}
}

func gradeResult(t *testing.T, body string) *quiz.GradeResult {
	t.Helper()
	res, err := quiz.DecodeGradeResult([]byte(body))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res
}

func TestResults_Table(t *testing.T) {
	res := gradeResult(t, `{
		"score_total": 6, "score_max": 10, "time_summary_seconds": 12.5,
		"per_question": [
			{"id": "q1", "type": "tf", "earned": 1, "max": 1, "time_ms": 1234, "feedback": "<em>nice</em>"},
			{"id": "q2", "type": "frq", "earned": 1, "max": 4, "time_seconds": 3}
		]
	}`)

	n := Results(res, DefaultOptions(), false)
	summary := n.FindAll(ByClass("summary"))
	if len(summary) != 2 {
		t.Fatalf("expected 2 summary lines, got %d", len(summary))
	}
	if got := summary[0].TextContent(); got != "Score: 6 / 10" {
		t.Errorf("score line = %q", got)
	}
	if got := summary[1].TextContent(); got != "Total time: 12.5 seconds" {
		t.Errorf("time line = %q", got)
	}

	rows := n.Find(ByTag("tbody")).Children
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].HasClass(ClassRowCorrect) || !rows[1].HasClass(ClassRowIncorrect) {
		t.Error("row classes do not reflect credit")
	}
	var cells []string
	for _, td := range rows[0].Children {
		cells = append(cells, td.TextContent())
	}
	want := []string{"1", "q1", "tf", "1 / 1", "1.2", "<em>nice</em>"}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	if got := rows[1].Children[4].TextContent(); got != "3" {
		t.Errorf("server seconds should be used verbatim, got %q", got)
	}

	details := n.Find(ByTag("details"))
	if details.HasAttr("open") {
		t.Error("raw dump should start collapsed")
	}
	if !Results(res, DefaultOptions(), true).Find(ByTag("details")).HasAttr("open") {
		t.Error("expanded raw dump should be open")
	}
}

func TestResults_TimeSummaryFallbacks(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"time_summary_seconds": 2, "time_summary_ms": 9}`, "2 seconds"},
		{`{"time_summary_ms": 1500}`, "1500 ms"},
		{`{}`, "0 seconds"},
	}
	for _, tt := range tests {
		if got := TimeSummaryText(gradeResult(t, tt.body)); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestResults_Error(t *testing.T) {
	n := Results(gradeResult(t, `{"error":"quiz expired"}`), DefaultOptions(), false)
	if !n.HasClass("results-error") {
		t.Fatalf("expected error block, got class %q", n.Attrs["class"])
	}
	if got := n.TextContent(); got != "Error: quiz expired" {
		t.Errorf("error text = %q", got)
	}
}

func TestResults_Compact(t *testing.T) {
	opts := DefaultOptions()
	opts.ResultDetail = DetailCompact
	res := gradeResult(t, `{"score_total":1,"score_max":2,"time_summary_ms":40,"per_question":[{"id":"a"}]}`)

	got := Results(res, opts, false).TextContent()
	want := "Score: 1/2\nTime: 40 ms\n\n[\n  {\n    \"id\": \"a\"\n  }\n]"
	if got != want {
		t.Errorf("compact text mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestPageTree(t *testing.T) {
	rows := []*Node{
		Question(tfQuestion(), EmptyRow(), DefaultOptions()),
		Question(quiz.Question{ID: "f2", Type: quiz.TypeFRQ}, EmptyRow(), DefaultOptions()),
	}
	page := PageTree(Page{Banner: KeywordBanner(nil), Rows: rows, Results: Message("Loading...")})

	if diff := cmp.Diff([]string{"q1", "f2"}, QuestionIDs(page)); diff != "" {
		t.Errorf("question ids mismatch (-want +got):\n%s", diff)
	}
	if !page.Find(ByID(SubmitBtnID)).HasAttr("disabled") {
		t.Error("submit should be disabled")
	}
	if page.Find(ByID(ResultsID)).TextContent() != "Loading..." {
		t.Error("results area should hold the message")
	}

	enabled := PageTree(Page{SubmitEnabled: true})
	if enabled.Find(ByID(SubmitBtnID)).HasAttr("disabled") {
		t.Error("submit should be enabled")
	}
}

func TestRenderHTML_EscapesTextAndSanitizesRaw(t *testing.T) {
	n := El("div", Attrs{"id": "x", "class": "c"},
		Text("<b>plain</b>"),
		Raw(`<em onclick="steal()">hi</em><script>alert(1)</script>`),
	)
	got, err := HTMLString(n)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.HasPrefix(got, `<div class="c" id="x">`) {
		t.Errorf("attributes should render sorted, got %s", got)
	}
	if !strings.Contains(got, "&lt;b&gt;plain&lt;/b&gt;") {
		t.Errorf("text should be escaped, got %s", got)
	}
	if !strings.Contains(got, "<em>hi</em>") {
		t.Errorf("safe markup should survive, got %s", got)
	}
	for _, bad := range []string{"onclick", "<script", "alert"} {
		if strings.Contains(got, bad) {
			t.Errorf("output should not contain %q: %s", bad, got)
		}
	}
}

func TestRenderHTML_BooleanAttrs(t *testing.T) {
	got, err := HTMLString(PageTree(Page{}))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, `<button disabled="" id="submitBtn" type="button">Submit</button>`) {
		t.Errorf("disabled submit not rendered: %s", got)
	}
}

func TestDocument(t *testing.T) {
	var b strings.Builder
	if err := Document(&b, "Quiz & more", PageTree(Page{})); err != nil {
		t.Fatalf("document: %v", err)
	}
	got := b.String()
	if !strings.HasPrefix(got, "<!DOCTYPE html>") {
		t.Errorf("missing doctype: %.40s", got)
	}
	for _, want := range []string{"<title>Quiz &amp; more</title>", "#eef6ff", `<div id="app">`} {
		if !strings.Contains(got, want) {
			t.Errorf("document missing %q", want)
		}
	}
}
