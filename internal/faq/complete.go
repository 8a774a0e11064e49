package faq

import (
	"unicode"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

// Complete returns up to limit knowledge-base questions that fuzzy-match the
// partial input, best first.
func (kb *KnowledgeBase) Complete(input string, limit int) []string {
	input = normalize(input)
	if input == "" || limit <= 0 {
		return nil
	}

	questions := kb.Questions()
	matches := fuzzy.Find(input, questions)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, questions[m.Index])
	}
	return out
}

// Prompt turns a stored key into display text: "what are your hours" becomes
// "What are your hours?".
func Prompt(question string) string {
	if question == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(question)
	return string(unicode.ToUpper(r)) + question[size:] + "?"
}
