package view

// Element ids of the page skeleton.
const (
	AppID       = "app"
	QuizID      = "quiz"
	ResultsID   = "results"
	StartBtnID  = "startBtn"
	SubmitBtnID = "submitBtn"
)

// Page is everything the page shows at one moment.
type Page struct {
	Banner        *Node
	Rows          []*Node
	Results       *Node
	SubmitEnabled bool
}

// PageTree assembles the full page.
func PageTree(p Page) *Node {
	submit := Attrs{"id": SubmitBtnID, "type": "button"}
	if !p.SubmitEnabled {
		submit["disabled"] = ""
	}

	quizDiv := El("div", Attrs{"id": QuizID}, p.Rows...)
	results := El("div", Attrs{"id": ResultsID}, p.Results)

	return El("div", Attrs{"id": AppID},
		El("button", Attrs{"id": StartBtnID, "type": "button"}, Text("Start Quiz")),
		p.Banner,
		quizDiv,
		El("button", submit, Text("Submit")),
		results,
	)
}

// QuestionIDs returns the data-qid of every rendered row in order.
func QuestionIDs(root *Node) []string {
	var ids []string
	for _, n := range root.FindAll(ByAttr(AttrQuestionID)) {
		id, _ := n.Attr(AttrQuestionID)
		ids = append(ids, id)
	}
	return ids
}
