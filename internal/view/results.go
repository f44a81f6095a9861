package view

import (
	"fmt"
	"strconv"

	"github.com/abhisek/quizclient/internal/quiz"
)

// Result row classes.
const (
	ClassRowCorrect   = "results-row-correct"
	ClassRowIncorrect = "results-row-incorrect"
	RawResultSummary  = "Raw JSON result"
)

// ResultColumns are the per-question table headings.
var ResultColumns = []string{"#", "Q ID", "Type", "Score", "Time (s)", "Feedback"}

// TimeSummaryText describes the total time, in whichever unit the server
// reported.
func TimeSummaryText(res *quiz.GradeResult) string {
	switch {
	case res.TimeSummarySeconds != nil:
		return quiz.FormatNumber(*res.TimeSummarySeconds) + " seconds"
	case res.TimeSummaryMs != nil:
		return quiz.FormatNumber(*res.TimeSummaryMs) + " ms"
	default:
		return "0 seconds"
	}
}

// Results renders a grade result. expanded opens the raw JSON dump.
func Results(res *quiz.GradeResult, opts Options, expanded bool) *Node {
	if res == nil {
		return nil
	}
	if res.Error != "" {
		return El("div", Attrs{"class": "results-error"}, Text("Error: "+res.Error))
	}
	if opts.ResultDetail == DetailCompact {
		return compactResults(res)
	}

	score := fmt.Sprintf(" %s / %s", quiz.FormatNumber(res.ScoreTotal), quiz.FormatNumber(res.ScoreMax))
	details := Attrs{}
	if expanded {
		details["open"] = ""
	}

	return El("div", Attrs{"class": "results"},
		El("p", Attrs{"class": "summary"}, El("strong", nil, Text("Score:")), Text(score)),
		El("p", Attrs{"class": "summary"}, El("strong", nil, Text("Total time:")), Text(" "+TimeSummaryText(res))),
		resultTable(res.PerQuestion),
		El("details", details,
			El("summary", nil, Text(RawResultSummary)),
			El("pre", nil, Text(res.IndentedRaw())),
		),
	)
}

func compactResults(res *quiz.GradeResult) *Node {
	text := fmt.Sprintf("Score: %s/%s\nTime: %s\n\n%s",
		quiz.FormatNumber(res.ScoreTotal),
		quiz.FormatNumber(res.ScoreMax),
		TimeSummaryText(res),
		res.IndentedPerQuestion(),
	)
	return El("pre", Attrs{"class": "results"}, Text(text))
}

func resultTable(rows []quiz.PerQuestionResult) *Node {
	if len(rows) == 0 {
		return nil
	}

	head := El("tr", nil)
	for _, col := range ResultColumns {
		head.Children = append(head.Children, El("th", nil, Text(col)))
	}

	body := El("tbody", nil)
	for i, pq := range rows {
		class := ClassRowIncorrect
		if pq.FullCredit() {
			class = ClassRowCorrect
		}
		feedback := ""
		if pq.Feedback != nil {
			feedback = *pq.Feedback
		}
		body.Children = append(body.Children, El("tr", Attrs{"class": class},
			El("td", nil, Text(strconv.Itoa(i+1))),
			El("td", nil, Text(pq.ID)),
			El("td", nil, Text(pq.Type)),
			El("td", nil, Text(quiz.FormatNumber(pq.Earned)+" / "+quiz.FormatNumber(pq.Max))),
			El("td", nil, Text(quiz.FormatNumber(pq.Seconds()))),
			El("td", Attrs{"class": "feedback"}, Raw(feedback)),
		))
	}

	return El("table", Attrs{"class": "results-table"},
		El("thead", nil, head),
		body,
	)
}

// Message renders a plain status or error text in the results area.
func Message(text string) *Node {
	if text == "" {
		return nil
	}
	return El("pre", Attrs{"class": "results-message"}, Text(text))
}
