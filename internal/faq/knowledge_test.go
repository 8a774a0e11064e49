package faq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKnowledgeBase_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr error
	}{
		{"no entries", nil, ErrNoEntries},
		{"empty question", []Entry{{Question: "", Answer: "a"}}, ErrEmptyQuestion},
		{"uppercase question", []Entry{{Question: "What Are Your Hours", Answer: "a"}}, ErrNotNormalized},
		{"padded question", []Entry{{Question: " hours", Answer: "a"}}, ErrNotNormalized},
		{"empty answer", []Entry{{Question: "hours", Answer: ""}}, ErrEmptyAnswer},
		{"duplicate", []Entry{{Question: "hours", Answer: "a"}, {Question: "hours", Answer: "b"}}, ErrDuplicateEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKnowledgeBase(tt.entries)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewKnowledgeBase_PreservesOrderAndCopies(t *testing.T) {
	entries := []Entry{
		{Question: "zulu", Answer: "z"},
		{Question: "alpha", Answer: "a"},
	}
	kb, err := NewKnowledgeBase(entries)
	require.NoError(t, err)

	entries[0].Answer = "mutated"
	assert.Equal(t, []string{"zulu", "alpha"}, kb.Questions())
	answer, ok := kb.Lookup("zulu")
	assert.True(t, ok)
	assert.Equal(t, "z", answer)

	got := kb.Entries()
	got[1].Answer = "mutated"
	answer, _ = kb.Lookup("alpha")
	assert.Equal(t, "a", answer)
}

func TestDefault(t *testing.T) {
	kb := Default()
	assert.Equal(t, 8, kb.Len())
	assert.Equal(t, DefaultFallback, kb.Fallback())
	assert.Equal(t, DefaultGreeting, kb.Greeting())
	assert.Equal(t, DefaultSuggestionSets(), kb.Suggestions())
}

const sampleFile = `
fallback = "No idea, sorry."

[[entry]]
question = "what are your hours"
answer = "Nine to six."

[[entry]]
question = "where are you based"
answer = "Manila."

[suggestions]
initial = ["Where are you based?"]
`

func TestParse(t *testing.T) {
	kb, err := Parse([]byte(sampleFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"what are your hours", "where are you based"}, kb.Questions())
	assert.Equal(t, "No idea, sorry.", kb.Fallback())
	assert.Equal(t, DefaultGreeting, kb.Greeting())

	sets := kb.Suggestions()
	assert.Equal(t, []string{"Where are you based?"}, sets[BucketInitial])
	assert.Equal(t, DefaultSuggestionSets()[BucketAfterProcess], sets[BucketAfterProcess])

	m := NewMatcher(kb)
	assert.Equal(t, "No idea, sorry.", m.Match("pricing"))
	assert.Equal(t, "Manila.", m.Match("based where?"))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("[[entry]\nquestion ="))
	assert.Error(t, err)

	_, err = Parse([]byte("[[entry]]\nquestion = \"Hours\"\nanswer = \"x\"\n"))
	assert.ErrorIs(t, err, ErrNotNormalized)

	_, err = Parse([]byte(`fallback = "only a fallback"`))
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile), 0o644))

	kb, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, kb.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
