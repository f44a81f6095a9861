package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type responseKind int

const (
	responseNull responseKind = iota
	responseBool
	responseText
)

// Response is the collected value of one question: null, a boolean, or text.
// The zero value is null.
type Response struct {
	kind responseKind
	b    bool
	s    string
}

// NullResponse is an unanswered question.
func NullResponse() Response { return Response{} }

// BoolResponse wraps a true/false answer.
func BoolResponse(b bool) Response { return Response{kind: responseBool, b: b} }

// TextResponse wraps a choice or free-text answer.
func TextResponse(s string) Response { return Response{kind: responseText, s: s} }

// IsNull reports whether the question was left unanswered.
func (r Response) IsNull() bool { return r.kind == responseNull }

// Bool returns the boolean value and whether the response is a boolean.
func (r Response) Bool() (bool, bool) { return r.b, r.kind == responseBool }

// Text returns the text value and whether the response is text.
func (r Response) Text() (string, bool) { return r.s, r.kind == responseText }

func (r Response) String() string {
	switch r.kind {
	case responseBool:
		return fmt.Sprintf("%t", r.b)
	case responseText:
		return fmt.Sprintf("%q", r.s)
	default:
		return "null"
	}
}

func (r Response) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case responseBool:
		return json.Marshal(r.b)
	case responseText:
		return json.Marshal(r.s)
	default:
		return []byte("null"), nil
	}
}

func (r *Response) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = NullResponse()
	case bytes.Equal(data, []byte("true")):
		*r = BoolResponse(true)
	case bytes.Equal(data, []byte("false")):
		*r = BoolResponse(false)
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("response must be null, boolean or string: %w", err)
		}
		*r = TextResponse(s)
	}
	return nil
}

// CoerceChoice turns a checked radio value into a response. True/false
// questions carry "true"/"false" on the wire of the control and are answered
// with booleans; every other choice is sent as its literal text.
func CoerceChoice(q Question, value string) Response {
	if q.Type == TypeTF {
		switch value {
		case "true":
			return BoolResponse(true)
		case "false":
			return BoolResponse(false)
		}
	}
	return TextResponse(value)
}

// Answer is one entry of the grading request.
type Answer struct {
	ID       string   `json:"id"`
	Response Response `json:"response"`
	TimeMs   int64    `json:"time_ms"`
}

// GradeRequest is the POST /grade body.
type GradeRequest struct {
	QuizID  string   `json:"quiz_id"`
	Answers []Answer `json:"answers"`
}
