package session

import "errors"

// AlertError is a user-input problem that blocks an action. Front-ends show
// Msg the way a page shows an alert box.
type AlertError struct {
	Msg string
}

func (e *AlertError) Error() string { return e.Msg }

// Submit guards.
var (
	ErrNoQuiz      = &AlertError{Msg: "No quiz loaded. Click Start Quiz again."}
	ErrNoQuestions = &AlertError{Msg: "No questions found. Click Start Quiz again."}
)

var (
	// ErrUnknownQuestion indicates an id that is not on the page.
	ErrUnknownQuestion = errors.New("unknown question")
	// ErrWrongControl indicates a choice for a free-text question or text
	// for a choice question.
	ErrWrongControl = errors.New("question does not take this kind of answer")
	// ErrChoiceRange indicates a choice index outside the options.
	ErrChoiceRange = errors.New("choice out of range")
)

// IsAlert reports whether err is an AlertError and returns it.
func IsAlert(err error) (*AlertError, bool) {
	var ae *AlertError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
