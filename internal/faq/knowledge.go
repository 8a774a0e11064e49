package faq

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultFallback is returned when no entry shares a qualifying token with the query.
const DefaultFallback = "I'm not sure I understand that question. Could you rephrase it or choose from one of the suggested questions below?"

// DefaultGreeting opens every new transcript.
const DefaultGreeting = "👋 Hi there! I'm your FAQ assistant. How can I help you today?"

// Entry is a single question/answer pair. Question is the lookup key and is
// authored already normalized (trimmed, lowercase).
type Entry struct {
	Question string `toml:"question"`
	Answer   string `toml:"answer"`
}

// KnowledgeBase is the ordered, read-only set of entries the matcher consults.
// It is never modified after NewKnowledgeBase returns.
type KnowledgeBase struct {
	entries     []Entry
	index       map[string]int
	fallback    string
	greeting    string
	suggestions SuggestionSets
}

var (
	ErrNoEntries      = errors.New("knowledge base has no entries")
	ErrEmptyQuestion  = errors.New("empty question")
	ErrNotNormalized  = errors.New("question is not normalized")
	ErrDuplicateEntry = errors.New("duplicate question")
	ErrEmptyAnswer    = errors.New("empty answer")
)

// Option customises a KnowledgeBase at construction time.
type Option func(*KnowledgeBase)

// WithFallback overrides DefaultFallback. Blank values are ignored.
func WithFallback(text string) Option {
	return func(kb *KnowledgeBase) {
		if text != "" {
			kb.fallback = text
		}
	}
}

// WithGreeting overrides DefaultGreeting. Blank values are ignored.
func WithGreeting(text string) Option {
	return func(kb *KnowledgeBase) {
		if text != "" {
			kb.greeting = text
		}
	}
}

// WithSuggestions replaces the non-empty buckets of the default suggestion sets.
func WithSuggestions(sets SuggestionSets) Option {
	return func(kb *KnowledgeBase) {
		for bucket, prompts := range sets {
			if len(prompts) > 0 {
				kb.suggestions[bucket] = append([]string(nil), prompts...)
			}
		}
	}
}

// NewKnowledgeBase validates entries and returns an immutable knowledge base
// that preserves their order.
func NewKnowledgeBase(entries []Entry, opts ...Option) (*KnowledgeBase, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	kb := &KnowledgeBase{
		entries:     make([]Entry, 0, len(entries)),
		index:       make(map[string]int, len(entries)),
		fallback:    DefaultFallback,
		greeting:    DefaultGreeting,
		suggestions: DefaultSuggestionSets(),
	}
	for i, e := range entries {
		switch {
		case e.Question == "":
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyQuestion)
		case normalize(e.Question) != e.Question:
			return nil, fmt.Errorf("entry %d %q: %w", i, e.Question, ErrNotNormalized)
		case e.Answer == "":
			return nil, fmt.Errorf("entry %d %q: %w", i, e.Question, ErrEmptyAnswer)
		}
		if _, ok := kb.index[e.Question]; ok {
			return nil, fmt.Errorf("entry %d %q: %w", i, e.Question, ErrDuplicateEntry)
		}
		kb.index[e.Question] = len(kb.entries)
		kb.entries = append(kb.entries, e)
	}
	for _, opt := range opts {
		opt(kb)
	}
	return kb, nil
}

// Default returns the knowledge base shipped with the site.
func Default() *KnowledgeBase {
	kb, err := NewKnowledgeBase(DefaultEntries())
	if err != nil {
		panic(fmt.Sprintf("faq: invalid built-in knowledge base: %v", err))
	}
	return kb
}

// DefaultEntries returns a fresh copy of the built-in entries.
func DefaultEntries() []Entry {
	return []Entry{
		{"what services do you offer", "I specialize in creating custom websites and applications that are tailored to your business needs. Whether you need a simple landing page or a complex web application, I can help you achieve your goals."},
		{"how much do your services cost", "My services are priced based on the complexity of the project and the time required to complete it. You can message me at my Facebook account for more information."},
		{"what is your development process", "I follow a structured development process to ensure the highest quality of work. We start with a discovery phase to understand your requirements, then move to design, development, testing, and deployment phases."},
		{"how long does it take to complete a project", "Project timelines vary based on complexity. Simple websites can take 2-4 weeks, while complex applications might take 3-6 months."},
		{"do you offer support after launch", "Yes, I offer post-launch support and maintenance packages to ensure your application continues running smoothly."},
		{"what technologies do you work with", "We work with modern web technologies including React, Next.js, Node.js, TypeScript, Tailwind CSS, and various database solutions."},
		{"how do i contact support", "You can reach out to me using my social media accounts. They are located in the footer of this website."},
		{"what are your hours", "My business hours are Monday through Friday, 9:00 AM to 6:00 PM Eastern Time."},
	}
}

// fileFormat is the on-disk TOML layout. Entries are an array of tables so
// their authoring order survives decoding.
type fileFormat struct {
	Fallback    string  `toml:"fallback"`
	Greeting    string  `toml:"greeting"`
	Entries     []Entry `toml:"entry"`
	Suggestions struct {
		Initial       []string `toml:"initial"`
		AfterServices []string `toml:"after_services"`
		AfterProcess  []string `toml:"after_process"`
	} `toml:"suggestions"`
}

// LoadFile reads a knowledge base from a TOML file.
func LoadFile(path string) (*KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	return Parse(data)
}

// Parse decodes a TOML knowledge base document.
func Parse(data []byte) (*KnowledgeBase, error) {
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode knowledge base: %w", err)
	}
	kb, err := NewKnowledgeBase(f.Entries,
		WithFallback(f.Fallback),
		WithGreeting(f.Greeting),
		WithSuggestions(SuggestionSets{
			BucketInitial:       f.Suggestions.Initial,
			BucketAfterServices: f.Suggestions.AfterServices,
			BucketAfterProcess:  f.Suggestions.AfterProcess,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("build knowledge base: %w", err)
	}
	return kb, nil
}

// Len returns the number of entries.
func (kb *KnowledgeBase) Len() int { return len(kb.entries) }

// Entries returns a copy of the entries in iteration order.
func (kb *KnowledgeBase) Entries() []Entry {
	return append([]Entry(nil), kb.entries...)
}

// Questions returns the keys in iteration order.
func (kb *KnowledgeBase) Questions() []string {
	out := make([]string, len(kb.entries))
	for i, e := range kb.entries {
		out[i] = e.Question
	}
	return out
}

// Lookup returns the answer stored under an exact key.
func (kb *KnowledgeBase) Lookup(question string) (string, bool) {
	i, ok := kb.index[question]
	if !ok {
		return "", false
	}
	return kb.entries[i].Answer, true
}

func (kb *KnowledgeBase) Fallback() string { return kb.fallback }

func (kb *KnowledgeBase) Greeting() string { return kb.greeting }

// Suggestions returns the configured suggestion sets for building a SuggestionProvider.
func (kb *KnowledgeBase) Suggestions() SuggestionSets { return kb.suggestions.clone() }
