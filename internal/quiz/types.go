package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Question types understood by the renderer. Any other value falls back to
// free text.
const (
	TypeTF  = "tf"
	TypeMCQ = "mcq"
	TypeFRQ = "frq"
)

// Stats carries the class history the server attaches to a question.
type Stats struct {
	Seen      int `json:"seen"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`

	// CorrectRate is nil when the server has no history for the question.
	CorrectRate *float64 `json:"correct_rate"`
}

// Question is a single quiz item as served by GET /quiz. Immutable once
// received.
type Question struct {
	ID       ID       `json:"id"`
	Prompt   string   `json:"prompt"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Keywords Keywords `json:"keywords,omitempty"`
	Stats    *Stats   `json:"stats,omitempty"`
}

// IsRadio reports whether the question is answered by picking one value.
func (q Question) IsRadio() bool {
	return q.Type == TypeTF || q.Type == TypeMCQ
}

// Quiz is one quiz instance. A fresh Quiz replaces any previous one.
type Quiz struct {
	ID        string     `json:"quiz_id"`
	Questions []Question `json:"questions"`

	// Keywords is the top-level keyword list. HasKeywords distinguishes an
	// explicit (possibly empty) array from an absent or null field.
	Keywords    []string `json:"-"`
	HasKeywords bool     `json:"-"`
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	var wire struct {
		ID        ID              `json:"quiz_id"`
		Questions []Question      `json:"questions"`
		Keywords  json.RawMessage `json:"keywords"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	q.ID = string(wire.ID)
	q.Questions = wire.Questions
	q.Keywords = nil
	q.HasKeywords = false

	raw := bytes.TrimSpace(wire.Keywords)
	if len(raw) > 0 && raw[0] == '[' {
		var kw Keywords
		if err := json.Unmarshal(raw, &kw); err != nil {
			return fmt.Errorf("keywords: %w", err)
		}
		q.Keywords = append([]string{}, kw...)
		q.HasKeywords = true
	}
	return nil
}

// ID is a string identifier that also accepts JSON numbers.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Keywords is a list of strings. Decoding skips non-string entries and
// treats anything other than an array as no keywords.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	*k = Keywords{}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	for _, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '"' {
			continue
		}
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		*k = append(*k, s)
	}
	return nil
}

// DecodeQuiz parses a GET /quiz body.
func DecodeQuiz(data []byte) (*Quiz, error) {
	var q Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	return &q, nil
}

// formatNumber prints a float the way a browser prints a JS number: no
// trailing zeros, no exponent for ordinary magnitudes.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
