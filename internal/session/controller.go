// Package session owns the state of one quiz page: the loaded quiz, the
// live answer controls, per-question timers and the results area.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/quizclient/internal/api"
	"github.com/abhisek/quizclient/internal/logging"
	"github.com/abhisek/quizclient/internal/quiz"
	"github.com/abhisek/quizclient/internal/timer"
	"github.com/abhisek/quizclient/internal/view"
)

// State is the page lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "quiz-loaded"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// QuizClient fetches and grades quizzes.
type QuizClient interface {
	FetchQuiz(ctx context.Context) (*quiz.Quiz, error)
	Grade(ctx context.Context, req quiz.GradeRequest) (*quiz.GradeResult, error)
}

// GradeHook receives every successful grade. A returned error is shown
// below the results.
type GradeHook func(quizID string, res *quiz.GradeResult) error

type row struct {
	q       quiz.Question
	st      view.RowState
	touched bool
}

// Controller drives one quiz page. It is not safe for concurrent use: all
// calls must come from the UI loop. Network calls may run elsewhere through
// Load and Grade, with their outcomes handed back to Apply and ApplyGrade.
type Controller struct {
	client QuizClient
	opts   view.Options
	timers *timer.Tracker
	logger *slog.Logger
	hook   GradeHook

	state    State
	quizID   string
	rows     []row
	keywords []string
	focus    int
	attempts int

	result      *quiz.GradeResult
	message     string
	notice      string
	rawExpanded bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithViewOptions sets the renderer options.
func WithViewOptions(o view.Options) Option {
	return func(c *Controller) { c.opts = o }
}

// WithClock makes the timers read time from now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.timers = timer.NewWithClock(now) }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithGradeHook registers a callback for successful grades.
func WithGradeHook(h GradeHook) Option {
	return func(c *Controller) { c.hook = h }
}

// New creates an idle Controller.
func New(client QuizClient, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		opts:   view.DefaultOptions(),
		timers: timer.New(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the lifecycle state.
func (c *Controller) State() State { return c.state }

// QuizID returns the loaded quiz id.
func (c *Controller) QuizID() string { return c.quizID }

// Options returns the renderer options.
func (c *Controller) Options() view.Options { return c.opts }

// Keywords returns the banner keywords of the loaded quiz.
func (c *Controller) Keywords() []string { return append([]string(nil), c.keywords...) }

// Result returns the last grade shown, if any.
func (c *Controller) Result() *quiz.GradeResult { return c.result }

// Message returns the plain text in the results area, if any.
func (c *Controller) Message() string { return c.message }

// Questions returns the rendered questions in page order.
func (c *Controller) Questions() []quiz.Question {
	out := make([]quiz.Question, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.q
	}
	return out
}

// Row returns the control state of the question at index i.
func (c *Controller) Row(i int) (view.RowState, bool) {
	if i < 0 || i >= len(c.rows) {
		return view.RowState{}, false
	}
	return c.rows[i].st, true
}

// Answered counts questions with a checked choice or non-empty text.
func (c *Controller) Answered() int {
	n := 0
	for _, r := range c.rows {
		if r.q.IsRadio() && r.st.Selected >= 0 || !r.q.IsRadio() && r.st.Text != "" {
			n++
		}
	}
	return n
}

// Load fetches a new quiz without touching the page.
func (c *Controller) Load(ctx context.Context) (*quiz.Quiz, error) {
	q, err := c.client.FetchQuiz(ctx)
	if err != nil {
		c.logger.Error("quiz fetch failed", "error", err)
		return nil, err
	}
	return q, nil
}

// Apply replaces the page with q. All previous answers, timers, results
// and the old quiz id are discarded.
func (c *Controller) Apply(q *quiz.Quiz) {
	c.timers.Reset()
	c.quizID = q.ID
	c.rows = make([]row, len(q.Questions))
	for i, question := range q.Questions {
		c.rows[i] = row{q: question, st: view.EmptyRow()}
	}
	c.keywords = view.CollectKeywords(q, c.opts.KeywordMode)
	c.focus = 0
	c.result = nil
	c.message = ""
	c.notice = ""
	c.rawExpanded = false
	c.state = StateLoaded

	c.logger.Info("quiz started", "quiz_id", c.quizID, "questions", len(c.rows))
}

// ApplyStartError reports a failed start in the results area. The loaded
// quiz, if any, is kept.
func (c *Controller) ApplyStartError(err error) {
	c.result = nil
	c.message = "Start failed: " + err.Error()
}

// Start fetches and applies a new quiz.
func (c *Controller) Start(ctx context.Context) error {
	q, err := c.Load(ctx)
	if err != nil {
		c.ApplyStartError(err)
		return err
	}
	c.Apply(q)
	return nil
}

// Select checks choice index of the radio question id.
func (c *Controller) Select(id string, index int) error {
	i, err := c.indexOf(id)
	if err != nil {
		return err
	}
	return c.selectAt(i, index)
}

// Type sets the free-text answer of question id.
func (c *Controller) Type(id, text string) error {
	i, err := c.indexOf(id)
	if err != nil {
		return err
	}
	return c.typeAt(i, text)
}

func (c *Controller) selectAt(i, index int) error {
	r := &c.rows[i]
	if !r.q.IsRadio() {
		return fmt.Errorf("%w: %s", ErrWrongControl, r.q.ID)
	}
	if index < 0 || index >= len(view.Choices(r.q)) {
		return fmt.Errorf("%w: %d", ErrChoiceRange, index)
	}
	r.st.Selected = index
	r.st.FocusIndex = index
	c.timers.Touch(string(r.q.ID))
	return nil
}

func (c *Controller) typeAt(i int, text string) error {
	r := &c.rows[i]
	if r.q.IsRadio() {
		return fmt.Errorf("%w: %s", ErrWrongControl, r.q.ID)
	}
	r.st.Text = text
	r.touched = true
	c.timers.Touch(string(r.q.ID))
	return nil
}

func (c *Controller) indexOf(id string) (int, error) {
	for i, r := range c.rows {
		if string(r.q.ID) == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
}

// PrepareSubmission checks the submit guards and collects every answer in
// page order.
func (c *Controller) PrepareSubmission() (quiz.GradeRequest, error) {
	if c.quizID == "" {
		return quiz.GradeRequest{}, ErrNoQuiz
	}
	if len(c.rows) == 0 {
		return quiz.GradeRequest{}, ErrNoQuestions
	}

	now := c.timers.Now()
	answers := make([]quiz.Answer, len(c.rows))
	for i, r := range c.rows {
		id := string(r.q.ID)
		answers[i] = quiz.Answer{
			ID:       id,
			Response: r.response(),
			TimeMs:   c.timers.ElapsedMs(id, now),
		}
	}

	c.attempts++
	c.logger.Info("submit clicked", "quiz_id", c.quizID, "attempt", c.attempts, "answers", len(answers))
	return quiz.GradeRequest{QuizID: c.quizID, Answers: answers}, nil
}

func (r row) response() quiz.Response {
	if r.q.IsRadio() {
		choices := view.Choices(r.q)
		if r.st.Selected < 0 || r.st.Selected >= len(choices) {
			return quiz.NullResponse()
		}
		return quiz.CoerceChoice(r.q, choices[r.st.Selected].Value)
	}
	if !r.touched {
		return quiz.NullResponse()
	}
	return quiz.TextResponse(r.st.Text)
}

// Grade posts req without touching the page.
func (c *Controller) Grade(ctx context.Context, req quiz.GradeRequest) (*quiz.GradeResult, error) {
	return c.client.Grade(ctx, req)
}

// ApplyGrade shows the outcome of a grading request. Only a successful
// response moves the page to StateSubmitted; failures leave it open for
// another attempt.
func (c *Controller) ApplyGrade(res *quiz.GradeResult, err error) {
	c.notice = ""
	if err != nil {
		c.result = nil
		var se *api.StatusError
		if errors.As(err, &se) {
			c.message = fmt.Sprintf("Submit failed (%d). Click Start Quiz again.\n%s", se.Code, se.Body)
			c.logger.Warn("grade rejected", "quiz_id", c.quizID, "status_code", se.Code)
		} else {
			c.message = "Submit errored: " + err.Error()
			c.logger.Error("grade failed", "quiz_id", c.quizID, "error", err)
		}
		return
	}

	c.result = res
	c.message = ""
	c.rawExpanded = false
	c.state = StateSubmitted

	if res.Error != "" {
		c.logger.Warn("grade returned error", "quiz_id", c.quizID, "error", res.Error)
		return
	}
	c.logger.Info("grade received", "quiz_id", c.quizID, "score_total", res.ScoreTotal, "score_max", res.ScoreMax)

	if c.hook != nil {
		if herr := c.hook(c.quizID, res); herr != nil {
			c.notice = "Export failed: " + herr.Error()
			c.logger.Warn("grade hook failed", "error", herr)
		}
	}
}

// Submit collects answers, posts them and shows the outcome. Guard failures
// return an AlertError without any request.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.PrepareSubmission()
	if err != nil {
		return err
	}
	res, err := c.Grade(ctx, req)
	c.ApplyGrade(res, err)
	return err
}

// ToggleRaw opens or closes the raw JSON dump and reports the new state.
func (c *Controller) ToggleRaw() bool {
	c.rawExpanded = !c.rawExpanded
	return c.rawExpanded
}

// View composes the whole page.
func (c *Controller) View() *view.Node {
	return view.PageTree(view.Page{
		Banner:        c.BannerView(),
		Rows:          c.RowViews(),
		Results:       c.ResultsView(),
		SubmitEnabled: c.state != StateIdle,
	})
}

// BannerView renders the keyword banner, or nil before the first quiz.
func (c *Controller) BannerView() *view.Node {
	if c.state == StateIdle {
		return nil
	}
	return view.KeywordBanner(c.keywords)
}

// RowViews renders every question row.
func (c *Controller) RowViews() []*view.Node {
	out := make([]*view.Node, len(c.rows))
	for i := range c.rows {
		out[i] = c.RowView(i)
	}
	return out
}

// RowView renders the question at index i.
func (c *Controller) RowView(i int) *view.Node {
	if i < 0 || i >= len(c.rows) {
		return nil
	}
	st := c.rows[i].st
	st.Focused = i == c.focus
	return view.Question(c.rows[i].q, st, c.opts)
}

// ResultsView renders the results area.
func (c *Controller) ResultsView() *view.Node {
	if c.result == nil {
		return view.Message(c.message)
	}
	res := view.Results(c.result, c.opts, c.rawExpanded)
	if c.notice == "" {
		return res
	}
	return view.El("div", nil, res, view.Message(c.notice))
}
