package view

import (
	"sort"
	"strings"

	"github.com/abhisek/quizclient/internal/quiz"
)

// Banner texts.
const (
	KeywordsHeading   = "All Keywords in this Quiz:"
	NoKeywordsText    = "No FRQ keywords in this set."
	KeywordsBannerID  = "keywords"
	KeywordsContentID = "keywordsContent"
)

const keywordSeparator = ", "

// CollectKeywords returns the banner keywords for a quiz. A server-supplied
// top-level list wins verbatim; otherwise keywords are gathered from the
// free-response questions and sorted case-insensitively.
func CollectKeywords(q *quiz.Quiz, mode KeywordMode) []string {
	if q == nil {
		return nil
	}
	if q.HasKeywords {
		return append([]string{}, q.Keywords...)
	}
	return aggregateKeywords(q.Questions, mode)
}

func aggregateKeywords(questions []quiz.Question, mode KeywordMode) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range questions {
		if q.Type != quiz.TypeFRQ {
			continue
		}
		for _, k := range q.Keywords {
			k = strings.TrimSpace(k)
			if k == "" {
				continue
			}
			if mode == KeywordsLowercase {
				k = strings.ToLower(k)
			}
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

// KeywordBanner renders the keyword bank shown above the questions.
func KeywordBanner(keywords []string) *Node {
	var content *Node
	if len(keywords) == 0 {
		content = El("i", Attrs{"class": "placeholder"}, Text(NoKeywordsText))
	} else {
		// Keywords may carry inline markup; renderers sanitize raw nodes.
		content = El("p", nil, Raw(strings.Join(keywords, keywordSeparator)))
	}

	return El("div", Attrs{"id": KeywordsBannerID, "class": "keywords"},
		El("b", nil, Text(KeywordsHeading)),
		El("div", Attrs{"id": KeywordsContentID}, content),
	)
}
