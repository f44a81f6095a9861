package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FullCreditTolerance is the slack allowed between earned and max points.
const FullCreditTolerance = 1e-6

// PerQuestionResult is the grade for one answered question.
type PerQuestionResult struct {
	ID          string
	Type        string
	Earned      float64
	Max         float64
	TimeSeconds *float64
	TimeMs      *float64
	Feedback    *string
}

// FullCredit reports whether every available point was earned.
func (p PerQuestionResult) FullCredit() bool {
	return p.Max > 0 && math.Abs(p.Earned-p.Max) < FullCreditTolerance
}

// Seconds returns the time spent, preferring the server's own seconds
// figure and otherwise rounding milliseconds to one decimal place.
func (p PerQuestionResult) Seconds() float64 {
	if p.TimeSeconds != nil {
		return *p.TimeSeconds
	}
	var ms float64
	if p.TimeMs != nil {
		ms = *p.TimeMs
	}
	return jsRound(ms/100) / 10
}

// GradeResult is the POST /grade success body. Decoding never fails on a
// missing or mistyped field; such fields read as zero or empty.
type GradeResult struct {
	ScoreTotal         float64
	ScoreMax           float64
	TimeSummaryMs      *float64
	TimeSummarySeconds *float64
	PerQuestion        []PerQuestionResult
	Error              string

	// Raw holds the body as received, for the debug dump.
	Raw json.RawMessage
}

// DecodeGradeResult parses a grading response body. Only a body that is not
// a JSON object is rejected.
func DecodeGradeResult(data []byte) (*GradeResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode grade result: %w", err)
	}

	res := &GradeResult{Raw: append(json.RawMessage(nil), data...)}
	res.ScoreTotal, _ = number(fields["score_total"])
	res.ScoreMax, _ = number(fields["score_max"])
	res.TimeSummaryMs = optionalNumber(fields["time_summary_ms"])
	res.TimeSummarySeconds = optionalNumber(fields["time_summary_seconds"])
	res.Error = errorText(fields["error"])

	var entries []json.RawMessage
	if err := json.Unmarshal(fields["per_question"], &entries); err == nil {
		for _, entry := range entries {
			if pq, ok := decodePerQuestion(entry); ok {
				res.PerQuestion = append(res.PerQuestion, pq)
			}
		}
	}
	return res, nil
}

func (r *GradeResult) UnmarshalJSON(data []byte) error {
	res, err := DecodeGradeResult(data)
	if err != nil {
		return err
	}
	*r = *res
	return nil
}

// IndentedRaw returns the raw body pretty-printed with two-space indent.
func (r *GradeResult) IndentedRaw() string {
	return indent(r.Raw)
}

// IndentedPerQuestion returns the raw per_question array pretty-printed.
func (r *GradeResult) IndentedPerQuestion() string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Raw, &fields); err != nil {
		return "null"
	}
	if raw, ok := fields["per_question"]; ok {
		return indent(raw)
	}
	return "null"
}

// FormatNumber prints a score or time the way the browser client did.
func FormatNumber(f float64) string {
	return formatNumber(f)
}

func decodePerQuestion(data json.RawMessage) (PerQuestionResult, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return PerQuestionResult{}, false
	}
	var pq PerQuestionResult
	pq.ID = scalarText(fields["id"])
	pq.Type = scalarText(fields["type"])
	pq.Earned, _ = number(fields["earned"])
	pq.Max, _ = number(fields["max"])
	pq.TimeSeconds = optionalNumber(fields["time_seconds"])
	pq.TimeMs = optionalNumber(fields["time_ms"])
	if raw, ok := fields["feedback"]; ok && !isNull(raw) {
		fb := scalarText(raw)
		pq.Feedback = &fb
	}
	return pq, true
}

func number(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func optionalNumber(raw json.RawMessage) *float64 {
	f, ok := number(raw)
	if !ok {
		return nil
	}
	return &f
}

// scalarText renders a JSON scalar as display text; objects and arrays are
// shown as compact JSON.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return formatNumber(f)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err == nil {
		return buf.String()
	}
	return string(raw)
}

func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		if b {
			return "true"
		}
		return ""
	}
	return scalarText(raw)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func indent(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// jsRound rounds half up, matching Math.round.
func jsRound(f float64) float64 {
	return math.Floor(f + 0.5)
}

// RoundPercent converts a 0..1 rate to a whole percentage with Math.round
// semantics.
func RoundPercent(rate float64) int {
	return int(jsRound(rate * 100))
}
