package view

import "fmt"

// KeywordMode selects how free-response keywords are normalized.
type KeywordMode string

const (
	// KeywordsPreserve trims and dedupes exact strings.
	KeywordsPreserve KeywordMode = "preserve"
	// KeywordsLowercase trims, lowercases and dedupes.
	KeywordsLowercase KeywordMode = "lowercase"
)

// ResultDetail selects how much of a grade result is shown.
type ResultDetail string

const (
	// DetailTable shows the summary, a per-question table and the raw dump.
	DetailTable ResultDetail = "table"
	// DetailCompact shows the summary followed by the per-question JSON.
	DetailCompact ResultDetail = "compact"
)

// Options configure the renderers.
type Options struct {
	ShowStats    bool
	KeywordMode  KeywordMode
	ResultDetail ResultDetail
}

// DefaultOptions returns the full-detail configuration.
func DefaultOptions() Options {
	return Options{
		ShowStats:    true,
		KeywordMode:  KeywordsPreserve,
		ResultDetail: DetailTable,
	}
}

// ParseKeywordMode validates a keyword mode name.
func ParseKeywordMode(s string) (KeywordMode, error) {
	switch KeywordMode(s) {
	case KeywordsPreserve, KeywordsLowercase:
		return KeywordMode(s), nil
	default:
		return "", fmt.Errorf("unknown keyword mode %q: must be preserve or lowercase", s)
	}
}

// ParseResultDetail validates a result detail name.
func ParseResultDetail(s string) (ResultDetail, error) {
	switch ResultDetail(s) {
	case DetailTable, DetailCompact:
		return ResultDetail(s), nil
	default:
		return "", fmt.Errorf("unknown result detail %q: must be table or compact", s)
	}
}
