// Package router decides which category of canned response applies to a user
// utterance. Matching is a sequence of case-insensitive keyword-containment
// checks evaluated in a fixed priority order; the first rule that fires wins
// and lower-priority rules are never consulted.
package router

import (
	"strings"

	"github.com/saur-bh/resumebot/internal/profile"
)

// Category is the topic bucket a rule resolves to. It determines the reply
// template and the follow-up suggestion list.
type Category string

const (
	CategoryWebsite        Category = "website"
	CategoryVideos         Category = "videos"
	CategoryArticles       Category = "articles"
	CategoryCertifications Category = "certifications"
	CategoryCommonQuestion Category = "common-question"
	CategoryFallback       Category = "fallback"
)

// Predicate reports whether an utterance triggers a rule. Implementations
// receive the raw utterance and are responsible for their own normalization,
// so the matching technology (substring, regex, similarity) can change
// without touching the table's ordering contract.
type Predicate interface {
	Match(utterance string) bool
}

// Keywords is a substring-containment Predicate: it matches when the
// lowercased utterance contains any of its keywords. Containment is
// deliberate — "videos" matches a rule keyed on "video".
type Keywords []string

func (k Keywords) Match(utterance string) bool {
	lower := strings.ToLower(utterance)
	for _, kw := range k {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rule pairs a predicate with the category it resolves to.
type Rule struct {
	Category  Category
	Predicate Predicate
}

// Table is an ordered rule list. The order is a design decision, not an
// implementation detail: "show me the video on my website" must resolve to
// website, so the website rule sits above the video rule.
type Table struct {
	rules []Rule
}

// defaultRules maps each keyword category to its trigger keywords.
var defaultRules = map[Category]Predicate{
	CategoryWebsite:        Keywords{"website", "personal site", "portfolio"},
	CategoryVideos:         Keywords{"video", "youtube"},
	CategoryArticles:       Keywords{"article", "medium", "written", "blog"},
	CategoryCertifications: Keywords{"certification", "certificate", "certified"},
}

// DefaultOrder is the authoritative priority order: website before videos
// before articles before certifications. Common-question and fallback are
// not keyword rules and always come last.
var DefaultOrder = []Category{
	CategoryWebsite,
	CategoryVideos,
	CategoryArticles,
	CategoryCertifications,
}

// ParseOrder turns a comma-separated category list ("videos,website,...")
// into a priority order for NewTable. Unknown or empty entries are dropped;
// an empty result means the default order applies.
func ParseOrder(spec string) []Category {
	var order []Category
	for _, part := range strings.Split(spec, ",") {
		cat := Category(strings.TrimSpace(strings.ToLower(part)))
		if _, ok := defaultRules[cat]; ok {
			order = append(order, cat)
		}
	}
	return order
}

var defaultTable = NewTable(nil)

// Default returns the shared table built from DefaultOrder.
func Default() *Table {
	return defaultTable
}

// NewTable builds a rule table evaluating the given keyword categories in
// order. Unknown categories are skipped. Passing nil uses DefaultOrder.
func NewTable(order []Category) *Table {
	if order == nil {
		order = DefaultOrder
	}
	t := &Table{}
	for _, cat := range order {
		pred, ok := defaultRules[cat]
		if !ok {
			continue
		}
		t.rules = append(t.rules, Rule{Category: cat, Predicate: pred})
	}
	return t
}

// Match resolves an utterance to a category. It scans the keyword rules in
// priority order, then the profile's common questions, and finally settles
// on fallback. It never fails: every utterance gets a category. The QA pair
// is non-nil exactly when the category is common-question.
func (t *Table) Match(utterance string, p *profile.Profile) (Category, *profile.QA) {
	for _, r := range t.rules {
		if r.Predicate.Match(utterance) {
			return r.Category, nil
		}
	}
	if p != nil {
		if qa := matchCommonQuestion(utterance, p.CommonQuestions); qa != nil {
			return CategoryCommonQuestion, qa
		}
	}
	return CategoryFallback, nil
}

// commonLeads are leading-keyword fragments shared between utterance and
// stored question. "your skills" in the utterance pairs with any stored
// question mentioning "skills", and likewise for experience.
var commonLeads = [][2]string{
	{"who are you", "who are you"},
	{"what do you do", "what do you do"},
	{"your skills", "skills"},
	{"your experience", "experience"},
	{"how do you", "how do you"},
}

func matchCommonQuestion(utterance string, qas []profile.QA) *profile.QA {
	msg := strings.ToLower(strings.TrimSpace(utterance))

	for i := range qas {
		question := strings.ToLower(strings.TrimSpace(qas[i].Question))

		if msg == question {
			return &qas[i]
		}
		for _, lead := range commonLeads {
			if strings.Contains(msg, lead[0]) && strings.Contains(question, lead[1]) {
				return &qas[i]
			}
		}
	}
	return nil
}
