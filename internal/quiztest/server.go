// Package quiztest runs an in-process quiz server for tests.
package quiztest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quizclient/internal/quiz"
)

// SampleQuiz is a three-question quiz covering every control type.
const SampleQuiz = `{
  "quiz_id": "quiz-1",
  "questions": [
    {"id": "q1", "prompt": "The mitochondria is the powerhouse of the cell.", "type": "tf",
     "stats": {"seen": 4, "correct": 3, "incorrect": 1, "correct_rate": 0.75}},
    {"id": "m1", "prompt": "Which molecule stores energy?", "type": "mcq", "options": ["ATP", "DNA", "RNA"]},
    {"id": "f1", "prompt": "Describe cellular respiration.", "type": "frq",
     "keywords": ["glucose", "ATP", "oxygen"], "stats": {"seen": 0, "correct": 0, "incorrect": 0, "correct_rate": null}}
  ]
}`

// SampleGrade is a grading response for SampleQuiz.
const SampleGrade = `{
  "score_total": 4.5,
  "score_max": 6,
  "time_summary_seconds": 9.3,
  "per_question": [
    {"id": "q1", "type": "tf", "earned": 1, "max": 1, "time_ms": 1200, "feedback": "Correct."},
    {"id": "m1", "type": "mcq", "earned": 1, "max": 1, "time_ms": 800, "feedback": null},
    {"id": "f1", "type": "frq", "earned": 2.5, "max": 4, "time_ms": 7300, "feedback": "Matched <b>glucose</b>, <b>ATP</b>."}
  ]
}`

type response struct {
	status int
	body   []byte
}

// Server serves GET /quiz and POST /grade with configurable responses and
// records every grading request.
type Server struct {
	srv *httptest.Server

	mu         sync.Mutex
	quiz       response
	grade      response
	quizHits   int
	gradeHits  int
	gradeRaw   [][]byte
	requestIDs []string
}

// New starts a server answering with SampleQuiz and SampleGrade. It is
// closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		quiz:  response{status: http.StatusOK, body: []byte(SampleQuiz)},
		grade: response{status: http.StatusOK, body: []byte(SampleGrade)},
	}

	r := gin.New()
	r.Use(s.recordRequestID)
	r.GET("/quiz", s.handleQuiz)
	r.POST("/grade", s.handleGrade)

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the server base URL.
func (s *Server) URL() string { return s.srv.URL }

// QuizURL is the GET /quiz address.
func (s *Server) QuizURL() string { return s.srv.URL + "/quiz" }

// GradeURL is the POST /grade address.
func (s *Server) GradeURL() string { return s.srv.URL + "/grade" }

// SetQuiz changes the GET /quiz response.
func (s *Server) SetQuiz(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quiz = response{status: status, body: []byte(body)}
}

// SetGrade changes the POST /grade response.
func (s *Server) SetGrade(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grade = response{status: status, body: []byte(body)}
}

// QuizHits returns how many quizzes were served.
func (s *Server) QuizHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quizHits
}

// GradeHits returns how many grading requests arrived.
func (s *Server) GradeHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gradeHits
}

// GradeBodies returns the raw grading request bodies in arrival order.
func (s *Server) GradeBodies() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.gradeRaw...)
}

// GradeRequests decodes every recorded grading request.
func (s *Server) GradeRequests(t testing.TB) []quiz.GradeRequest {
	t.Helper()
	var out []quiz.GradeRequest
	for _, raw := range s.GradeBodies() {
		var req quiz.GradeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Fatalf("decode grade request %s: %v", raw, err)
		}
		out = append(out, req)
	}
	return out
}

// RequestIDs returns the X-Request-ID of every request in arrival order.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) recordRequestID(c *gin.Context) {
	s.mu.Lock()
	s.requestIDs = append(s.requestIDs, c.GetHeader("X-Request-ID"))
	s.mu.Unlock()
	c.Next()
}

func (s *Server) handleQuiz(c *gin.Context) {
	s.mu.Lock()
	s.quizHits++
	resp := s.quiz
	s.mu.Unlock()

	c.Data(resp.status, "application/json", resp.body)
}

func (s *Server) handleGrade(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.gradeHits++
	s.gradeRaw = append(s.gradeRaw, body)
	resp := s.grade
	s.mu.Unlock()

	c.Data(resp.status, "application/json", resp.body)
}
