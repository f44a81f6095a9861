package prompt

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizclient/internal/api"
	"github.com/abhisek/quizclient/internal/quiztest"
	"github.com/abhisek/quizclient/internal/session"
)

// scriptDriver answers prompts from queues and records everything shown.
type scriptDriver struct {
	picks    []int
	selects  []string
	texts    []string
	confirms []bool

	asked []string
	infos []string
}

func (d *scriptDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.selects) == 0 {
		if len(d.picks) > 0 {
			i := d.picks[0]
			d.picks = d.picks[1:]
			return i, nil
		}
		return 0, ErrAborted
	}
	want := d.selects[0]
	d.selects = d.selects[1:]
	return indexOf(cfg.Options, want), nil
}

func (d *scriptDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.texts) == 0 {
		return "", ErrAborted
	}
	t := d.texts[0]
	d.texts = d.texts[1:]
	return t, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.confirms) == 0 {
		return false, nil
	}
	c := d.confirms[0]
	d.confirms = d.confirms[1:]
	return c, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *scriptDriver) shown() string {
	return ansi.Strip(strings.Join(d.infos, "\n"))
}

func newController(t *testing.T, srv *quiztest.Server) *session.Controller {
	t.Helper()
	client := api.New(api.Config{QuizURL: srv.QuizURL(), GradeURL: srv.GradeURL()})
	return session.New(client)
}

func TestRun_AnswersAndSubmits(t *testing.T) {
	srv := quiztest.New(t)
	ctrl := newController(t, srv)
	d := &scriptDriver{
		selects:  []string{"True", SkipOption},
		texts:    []string{"ATP synthase"},
		confirms: []bool{true},
	}

	require.NoError(t, Run(context.Background(), ctrl, d))

	assert.Equal(t, []string{
		"1. The mitochondria is the powerhouse of the cell.",
		"2. Which molecule stores energy?",
		"3. Describe cellular respiration.",
		"Submit answers?",
	}, d.asked)

	reqs := srv.GradeRequests(t)
	require.Len(t, reqs, 1)
	answers := reqs[0].Answers
	require.Len(t, answers, 3)

	b, ok := answers[0].Response.Bool()
	assert.True(t, ok)
	assert.True(t, b)
	assert.True(t, answers[1].Response.IsNull(), "skipped choice is null")
	txt, _ := answers[2].Response.Text()
	assert.Equal(t, "ATP synthase", txt)

	assert.Contains(t, d.shown(), "Keywords")
	assert.Contains(t, d.shown(), "Score: 4.5 / 6")
	assert.Equal(t, session.StateSubmitted, ctrl.State())
}

func TestRun_BlankTextIsNull(t *testing.T) {
	srv := quiztest.New(t)
	ctrl := newController(t, srv)
	d := &scriptDriver{
		selects:  []string{SkipOption, SkipOption},
		texts:    []string{"   "},
		confirms: []bool{true},
	}

	require.NoError(t, Run(context.Background(), ctrl, d))

	reqs := srv.GradeRequests(t)
	require.Len(t, reqs, 1)
	for _, a := range reqs[0].Answers {
		assert.True(t, a.Response.IsNull(), "answer %s should be null", a.ID)
	}
}

func TestRun_StartFailure(t *testing.T) {
	srv := quiztest.New(t)
	srv.SetQuiz(http.StatusInternalServerError, `{"error":"db down"}`)
	ctrl := newController(t, srv)
	d := &scriptDriver{}

	err := Run(context.Background(), ctrl, d)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, d.shown(), "Start failed:")
	assert.Empty(t, d.asked)
}

func TestRun_SubmitRetry(t *testing.T) {
	srv := quiztest.New(t)
	srv.SetGrade(http.StatusBadRequest, `{"error":"unknown quiz"}`)
	ctrl := newController(t, srv)
	d := &scriptDriver{
		selects:  []string{"False", "DNA"},
		texts:    []string{"x"},
		confirms: []bool{true, false},
	}

	err := Run(context.Background(), ctrl, d)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.Contains(t, d.shown(), "Submit failed (400). Click Start Quiz again.")
	assert.Equal(t, "Submit again?", d.asked[len(d.asked)-1])
	assert.Equal(t, session.StateLoaded, ctrl.State())
}

func TestRun_DeclineSubmit(t *testing.T) {
	srv := quiztest.New(t)
	ctrl := newController(t, srv)
	d := &scriptDriver{
		selects:  []string{"True", "ATP"},
		texts:    []string{""},
		confirms: []bool{false},
	}

	require.NoError(t, Run(context.Background(), ctrl, d))
	assert.Equal(t, 0, srv.GradeHits())
}

func TestRun_Aborted(t *testing.T) {
	srv := quiztest.New(t)
	ctrl := newController(t, srv)

	err := Run(context.Background(), ctrl, &scriptDriver{})
	assert.True(t, errors.Is(err, ErrAborted))
	assert.Equal(t, 0, srv.GradeHits())
}

func TestRun_OptionNamedLikeSkip(t *testing.T) {
	srv := quiztest.New(t)
	srv.SetQuiz(http.StatusOK, `{"quiz_id":"qs","questions":[
		{"id":"a","prompt":"Pick the first.","type":"mcq","options":["(skip)","other"]},
		{"id":"b","prompt":"Now skip.","type":"mcq","options":["(skip)","other"]}
	]}`)
	ctrl := newController(t, srv)
	d := &scriptDriver{
		picks:    []int{0, 2},
		confirms: []bool{true},
	}

	require.NoError(t, Run(context.Background(), ctrl, d))

	reqs := srv.GradeRequests(t)
	require.Len(t, reqs, 1)
	answers := reqs[0].Answers
	require.Len(t, answers, 2)

	txt, ok := answers[0].Response.Text()
	assert.True(t, ok)
	assert.Equal(t, "(skip)", txt, "an option labelled like the skip entry is still an answer")
	assert.True(t, answers[1].Response.IsNull(), "the appended skip entry leaves the question null")
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, indexOf([]string{"a", "b"}, "b"))
	assert.Equal(t, -1, indexOf([]string{"a"}, "z"))
}
