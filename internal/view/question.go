package view

import (
	"fmt"
	"strconv"

	"github.com/abhisek/quizclient/internal/quiz"
)

// Attribute names shared with the controller and the renderers.
const (
	AttrQuestionID = "data-qid"
	AttrFocus      = "data-focus"
	AttrSlot       = "data-slot"
)

// Stats messages.
const (
	NewQuestionText = "This is a new question (no history yet)."
)

// Choice is one radio option.
type Choice struct {
	Label string
	Value string
}

// Choices returns the radio options for q, or nil for free-text questions.
func Choices(q quiz.Question) []Choice {
	switch q.Type {
	case quiz.TypeTF:
		return []Choice{{Label: "True", Value: "true"}, {Label: "False", Value: "false"}}
	case quiz.TypeMCQ:
		out := make([]Choice, len(q.Options))
		for i, opt := range q.Options {
			out[i] = Choice{Label: opt, Value: opt}
		}
		return out
	default:
		return nil
	}
}

// RowState is the live control state of one rendered question.
type RowState struct {
	// Selected is the checked choice index, or -1.
	Selected int
	// Text is the free-text content.
	Text string
	// Focused marks the row holding keyboard focus; FocusIndex is the
	// choice under the cursor.
	Focused    bool
	FocusIndex int
}

// EmptyRow is the state of a freshly rendered question.
func EmptyRow() RowState {
	return RowState{Selected: -1}
}

// Question renders one question row tagged with its id.
func Question(q quiz.Question, st RowState, opts Options) *Node {
	id := string(q.ID)
	return El("div", Attrs{"class": "row", AttrQuestionID: id, "data-type": q.Type},
		El("p", Attrs{"class": "prompt"}, Text(q.Prompt)),
		statsLine(q, opts),
		control(q, st),
	)
}

// StatsText returns the class performance line for s.
func StatsText(s quiz.Stats) string {
	if s.Seen == 0 {
		return NewQuestionText
	}
	rate := float64(s.Correct) / float64(s.Seen)
	if s.CorrectRate != nil {
		rate = *s.CorrectRate
	}
	return fmt.Sprintf("Class performance: %d/%d correct (%d%%).", s.Correct, s.Seen, quiz.RoundPercent(rate))
}

func statsLine(q quiz.Question, opts Options) *Node {
	if !opts.ShowStats || q.Stats == nil {
		return nil
	}
	return El("p", Attrs{"class": "stats"}, Text(StatsText(*q.Stats)))
}

func control(q quiz.Question, st RowState) *Node {
	id := string(q.ID)
	if !q.IsRadio() {
		attrs := Attrs{"rows": "3", "name": id, AttrSlot: id}
		if st.Focused {
			attrs[AttrFocus] = ""
		}
		return El("textarea", attrs, Text(st.Text))
	}

	group := El("div", Attrs{"class": "choices", "role": "radiogroup"})
	for i, c := range Choices(q) {
		inputID := id + "-" + choiceSuffix(q, i, c)
		attrs := Attrs{
			"type":  "radio",
			"name":  id,
			"value": c.Value,
			"id":    inputID,
		}
		if i == st.Selected {
			attrs["checked"] = ""
		}
		if st.Focused && i == st.FocusIndex {
			attrs[AttrFocus] = ""
		}
		group.Children = append(group.Children,
			El("label", Attrs{"for": inputID},
				El("input", attrs),
				Text(" "+c.Label+" "),
			),
		)
	}
	return group
}

// choiceSuffix mirrors the control ids of the page: tf uses the label,
// mcq the option index.
func choiceSuffix(q quiz.Question, i int, c Choice) string {
	if q.Type == quiz.TypeTF {
		return c.Label
	}
	return strconv.Itoa(i)
}
