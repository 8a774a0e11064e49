package faq

import "strings"

// minTokenLen is the shortest token that counts toward an overlap score.
// Shorter words ("do", "i", "it") are mostly articles and prepositions.
const minTokenLen = 3

// trailingPunctuation is stripped from queries when the matcher is built
// with WithTrimPunctuation.
const trailingPunctuation = "?!.,;:"

// Outcome names the path that produced an answer.
type Outcome string

const (
	OutcomeExact    Outcome = "exact"
	OutcomeKeyword  Outcome = "keyword"
	OutcomeFallback Outcome = "fallback"
)

// Result describes a single matching decision. Question is empty for the
// fallback outcome.
type Result struct {
	Answer   string
	Question string
	Outcome  Outcome
}

// Matcher maps free text to one canned answer. It holds no mutable state and
// is safe for concurrent use.
type Matcher struct {
	kb              *KnowledgeBase
	trimPunctuation bool
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithTrimPunctuation strips trailing punctuation from the normalized query
// before both the exact and keyword steps, so "what are your hours?" hits the
// exact entry. Off by default.
func WithTrimPunctuation(enabled bool) MatcherOption {
	return func(m *Matcher) { m.trimPunctuation = enabled }
}

func NewMatcher(kb *KnowledgeBase, opts ...MatcherOption) *Matcher {
	m := &Matcher{kb: kb}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match returns the answer for query, or the fallback answer when nothing
// matches. It never fails.
func (m *Matcher) Match(query string) string {
	return m.Resolve(query).Answer
}

// Resolve is Match with the deciding path attached.
func (m *Matcher) Resolve(query string) Result {
	q := normalize(query)
	if m.trimPunctuation {
		q = strings.TrimRight(q, trailingPunctuation+" \t")
	}

	if answer, ok := m.kb.Lookup(q); ok {
		return Result{Answer: answer, Question: q, Outcome: OutcomeExact}
	}

	best, bestScore := -1, 0
	queryTokens := tokenize(q)
	for i, e := range m.kb.entries {
		if s := score(queryTokens, tokenize(e.Question)); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Result{Answer: m.kb.fallback, Outcome: OutcomeFallback}
	}
	e := m.kb.entries[best]
	return Result{Answer: e.Answer, Question: e.Question, Outcome: OutcomeKeyword}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenize splits on whitespace and drops duplicates.
func tokenize(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// score counts the query tokens of at least minTokenLen characters that also
// appear in the key.
func score(query, key map[string]struct{}) int {
	n := 0
	for tok := range query {
		if len([]rune(tok)) < minTokenLen {
			continue
		}
		if _, ok := key[tok]; ok {
			n++
		}
	}
	return n
}
