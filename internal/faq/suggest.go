package faq

import "strings"

// Bucket names a set of follow-up prompts.
type Bucket string

const (
	BucketInitial       Bucket = "initial"
	BucketAfterServices Bucket = "after-services"
	BucketAfterProcess  Bucket = "after-process"
)

// SuggestionSets maps each bucket to its ordered prompts.
type SuggestionSets map[Bucket][]string

func (s SuggestionSets) clone() SuggestionSets {
	out := make(SuggestionSets, len(s))
	for b, prompts := range s {
		out[b] = append([]string(nil), prompts...)
	}
	return out
}

// DefaultSuggestionSets returns the prompts offered by the site's chat widget.
func DefaultSuggestionSets() SuggestionSets {
	return SuggestionSets{
		BucketInitial: {
			"What services do you offer?",
			"How much do your services cost?",
			"What is your development process?",
		},
		BucketAfterServices: {
			"How long does it take?",
			"Do you offer support after launch?",
			"What technologies do you work with?",
		},
		BucketAfterProcess: {
			"How do I contact support?",
			"What are your hours?",
		},
	}
}

type trigger struct {
	words  []string
	bucket Bucket
}

// triggers are checked in order; the first hit wins.
var triggers = []trigger{
	{words: []string{"service"}, bucket: BucketAfterServices},
	{words: []string{"process", "work"}, bucket: BucketAfterProcess},
}

// SuggestionProvider picks follow-up prompts from the last user query.
type SuggestionProvider struct {
	sets SuggestionSets
}

func NewSuggestionProvider(sets SuggestionSets) *SuggestionProvider {
	return &SuggestionProvider{sets: sets.clone()}
}

// Next returns the bucket to show after query. Substring containment is
// enough: "services" triggers "service". Without a trigger the current bucket
// stays.
func (p *SuggestionProvider) Next(current Bucket, query string) Bucket {
	q := strings.ToLower(query)
	for _, t := range triggers {
		for _, w := range t.words {
			if strings.Contains(q, w) {
				return t.bucket
			}
		}
	}
	return current
}

// Suggestions returns a copy of the prompts in bucket b.
func (p *SuggestionProvider) Suggestions(b Bucket) []string {
	return append([]string(nil), p.sets[b]...)
}
