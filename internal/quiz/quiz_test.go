package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQuiz_Keywords(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantHas     bool
		wantKeyword []string
	}{
		{"absent", `{"quiz_id":"q1","questions":[]}`, false, nil},
		{"null", `{"quiz_id":"q1","questions":[],"keywords":null}`, false, nil},
		{"empty array", `{"quiz_id":"q1","questions":[],"keywords":[]}`, true, []string{}},
		{"values kept verbatim", `{"quiz_id":"q1","questions":[],"keywords":["b","A","b"]}`, true, []string{"b", "A", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := DecodeQuiz([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantHas, q.HasKeywords)
			assert.Equal(t, tt.wantKeyword, q.Keywords)
		})
	}
}

func TestDecodeQuiz_Questions(t *testing.T) {
	body := `{
		"quiz_id": "abc",
		"questions": [
			{"id": 7, "prompt": "Sky is blue?", "type": "tf"},
			{"id": "m1", "prompt": "Pick", "type": "mcq", "options": ["a", "b"]},
			{"id": "f1", "prompt": "Explain", "type": "frq", "keywords": ["ATP", 3, null, "glucose"],
			 "stats": {"seen": 4, "correct": 1, "incorrect": 3, "correct_rate": 0.25}}
		]
	}`
	q, err := DecodeQuiz([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, "abc", q.ID)
	require.Len(t, q.Questions, 3)
	assert.Equal(t, ID("7"), q.Questions[0].ID)
	assert.True(t, q.Questions[0].IsRadio())
	assert.Equal(t, []string{"a", "b"}, q.Questions[1].Options)
	assert.Equal(t, Keywords{"ATP", "glucose"}, q.Questions[2].Keywords)
	require.NotNil(t, q.Questions[2].Stats)
	require.NotNil(t, q.Questions[2].Stats.CorrectRate)
	assert.InDelta(t, 0.25, *q.Questions[2].Stats.CorrectRate, 1e-9)
	assert.False(t, q.Questions[2].IsRadio())
}

func TestDecodeQuiz_NonArrayQuestionKeywords(t *testing.T) {
	body := `{"quiz_id":"k","questions":[
		{"id":"a","prompt":"One","type":"frq","keywords":"ATP"},
		{"id":"b","prompt":"Two","type":"frq","keywords":{"x":1}},
		{"id":"c","prompt":"Three","type":"frq","keywords":[null]}
	]}`
	q, err := DecodeQuiz([]byte(body))
	require.NoError(t, err, "odd keywords must not reject the quiz")
	require.Len(t, q.Questions, 3)
	for _, question := range q.Questions {
		assert.Empty(t, question.Keywords, string(question.ID))
	}
}

func TestResponse_JSON(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"null", NullResponse(), "null"},
		{"true", BoolResponse(true), "true"},
		{"false", BoolResponse(false), "false"},
		{"text", TextResponse("Paris"), `"Paris"`},
		{"empty text", TextResponse(""), `""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.resp)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			var back Response
			require.NoError(t, json.Unmarshal(got, &back))
			assert.Equal(t, tt.resp, back)
		})
	}
}

func TestAnswer_WireShape(t *testing.T) {
	req := GradeRequest{
		QuizID: "q1",
		Answers: []Answer{
			{ID: "Q1", Response: BoolResponse(true), TimeMs: 500},
			{ID: "Q2", Response: NullResponse(), TimeMs: 0},
		},
	}
	got, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"quiz_id":"q1","answers":[
		{"id":"Q1","response":true,"time_ms":500},
		{"id":"Q2","response":null,"time_ms":0}]}`, string(got))
}

func TestCoerceChoice(t *testing.T) {
	tf := Question{ID: "t", Type: TypeTF}
	mcq := Question{ID: "m", Type: TypeMCQ}

	assert.Equal(t, BoolResponse(true), CoerceChoice(tf, "true"))
	assert.Equal(t, BoolResponse(false), CoerceChoice(tf, "false"))
	assert.Equal(t, TextResponse("maybe"), CoerceChoice(tf, "maybe"))
	assert.Equal(t, TextResponse("true"), CoerceChoice(mcq, "true"))
}

func TestFullCredit(t *testing.T) {
	tests := []struct {
		name   string
		earned float64
		max    float64
		want   bool
	}{
		{"exact", 5, 5, true},
		{"within tolerance", 4.9999995, 5, true},
		{"partial", 4, 5, false},
		{"zero max", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pq := PerQuestionResult{Earned: tt.earned, Max: tt.max}
			assert.Equal(t, tt.want, pq.FullCredit())
		})
	}
}

func TestPerQuestionSeconds(t *testing.T) {
	secs := 2.5
	ms := 1234.0
	assert.Equal(t, 2.5, PerQuestionResult{TimeSeconds: &secs, TimeMs: &ms}.Seconds())
	assert.Equal(t, 1.2, PerQuestionResult{TimeMs: &ms}.Seconds())
	assert.Equal(t, 0.0, PerQuestionResult{}.Seconds())

	half := 1250.0
	assert.Equal(t, 1.3, PerQuestionResult{TimeMs: &half}.Seconds())
}

func TestDecodeGradeResult_Tolerant(t *testing.T) {
	body := `{
		"score_total": "2.5",
		"score_max": 3,
		"time_summary_ms": 1500,
		"per_question": [
			{"id": "Q1", "type": "tf", "earned": 1, "max": 1, "time_ms": 700, "feedback": "Nice"},
			"garbage",
			{"id": 2, "type": "frq", "earned": "x", "max": null}
		]
	}`
	res, err := DecodeGradeResult([]byte(body))
	require.NoError(t, err)

	assert.Equal(t, 2.5, res.ScoreTotal)
	assert.Equal(t, 3.0, res.ScoreMax)
	require.NotNil(t, res.TimeSummaryMs)
	assert.Equal(t, 1500.0, *res.TimeSummaryMs)
	assert.Nil(t, res.TimeSummarySeconds)
	assert.Empty(t, res.Error)

	require.Len(t, res.PerQuestion, 2)
	assert.Equal(t, "Q1", res.PerQuestion[0].ID)
	require.NotNil(t, res.PerQuestion[0].Feedback)
	assert.Equal(t, "Nice", *res.PerQuestion[0].Feedback)
	assert.Equal(t, "2", res.PerQuestion[1].ID)
	assert.Equal(t, 0.0, res.PerQuestion[1].Earned)
	assert.Equal(t, 0.0, res.PerQuestion[1].Max)
	assert.Nil(t, res.PerQuestion[1].Feedback)
}

func TestDecodeGradeResult_Error(t *testing.T) {
	res, err := DecodeGradeResult([]byte(`{"error":"Invalid or expired quiz_id"}`))
	require.NoError(t, err)
	assert.Equal(t, "Invalid or expired quiz_id", res.Error)

	_, err = DecodeGradeResult([]byte(`[1,2]`))
	assert.Error(t, err)
}

func TestGradeResult_IndentedRaw(t *testing.T) {
	res, err := DecodeGradeResult([]byte(`{"score_total":1,"per_question":[{"id":"a"}]}`))
	require.NoError(t, err)
	assert.Contains(t, res.IndentedRaw(), "\n  \"score_total\": 1")
	assert.Equal(t, "[\n  {\n    \"id\": \"a\"\n  }\n]", res.IndentedPerQuestion())
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 33, RoundPercent(1.0/3.0))
	assert.Equal(t, 67, RoundPercent(2.0/3.0))
	assert.Equal(t, 13, RoundPercent(0.125))
	assert.Equal(t, 100, RoundPercent(1))
}

func TestValidateQuizPayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"quiz_id":"q1","questions":[{"id":"a","prompt":"p","type":"weird"}]}`, false},
		{"numeric id", `{"quiz_id":"q1","questions":[{"id":3,"prompt":"p"}]}`, false},
		{"missing quiz id", `{"questions":[]}`, true},
		{"questions not array", `{"quiz_id":"q1","questions":{}}`, true},
		{"question without prompt", `{"quiz_id":"q1","questions":[{"id":"a"}]}`, true},
		{"not json", `nope`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuizPayload([]byte(tt.body))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var invalid *ErrInvalidPayload
			assert.ErrorAs(t, err, &invalid)
		})
	}
}
