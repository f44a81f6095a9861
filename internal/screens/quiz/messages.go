package quiz

import qz "github.com/abhisek/quizclient/internal/quiz"

// quizLoadedMsg is sent when GET /quiz completes.
type quizLoadedMsg struct {
	Quiz *qz.Quiz
	Err  error
}

// gradedMsg is sent when POST /grade completes.
type gradedMsg struct {
	Result *qz.GradeResult
	Err    error
}
