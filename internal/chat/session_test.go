package chat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/Cedrix49/portfolio/internal/faq"
)

func newTestStore(cfg StoreConfig) *Store {
	if cfg.Greeting == "" {
		cfg.Greeting = faq.DefaultGreeting
	}
	return NewStore(cfg)
}

type fakeAnswerer struct {
	queries []string
}

func (f *fakeAnswerer) Resolve(query string) faq.Result {
	f.queries = append(f.queries, query)
	return faq.Result{Answer: "re: " + query, Outcome: faq.OutcomeKeyword}
}

func TestSession_InitialView(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	v := s.View()

	assert.Equal(t, s.ID, v.ID)
	assert.False(t, v.Open)
	assert.False(t, v.Typing)
	require.Len(t, v.Messages, 1)
	assert.Equal(t, faq.SenderBot, v.Messages[0].Sender)
	assert.Equal(t, faq.DefaultSuggestionSets()[faq.BucketInitial], v.Suggestions)
}

func TestSession_Toggle(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	assert.True(t, s.Toggle())
	assert.True(t, s.View().Open)
	assert.False(t, s.Toggle())
}

func TestSession_SubmitRejectsBlank(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	assert.ErrorIs(t, s.Submit("   "), ErrEmptyMessage)
	assert.Len(t, s.View().Messages, 1)
	assert.False(t, s.Typing())
}

func TestSession_SubmitAndReply(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	a := &fakeAnswerer{}

	require.NoError(t, s.Submit("What services do you offer?"))
	v := s.View()
	assert.True(t, v.Open)
	assert.True(t, v.Typing)
	assert.Empty(t, v.Suggestions, "suggestions are hidden while typing")
	assert.Equal(t, faq.SenderUser, v.Messages[len(v.Messages)-1].Sender)

	res, ok := s.Reply(a)
	require.True(t, ok)
	assert.Equal(t, "re: What services do you offer?", res.Answer)

	v = s.View()
	assert.False(t, v.Typing)
	require.Len(t, v.Messages, 3)
	assert.Equal(t, faq.SenderBot, v.Messages[2].Sender)
	assert.Equal(t, faq.DefaultSuggestionSets()[faq.BucketAfterServices], v.Suggestions)

	_, ok = s.Reply(a)
	assert.False(t, ok)
}

func TestSession_RepliesInOrder(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	a := &fakeAnswerer{}

	require.NoError(t, s.Submit("first"))
	require.NoError(t, s.Submit("second"))

	s.Reply(a)
	assert.True(t, s.Typing())
	s.Reply(a)
	assert.False(t, s.Typing())
	assert.Equal(t, []string{"first", "second"}, a.queries)
}

func TestSession_WithMatcher(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	m := faq.NewMatcher(faq.Default())

	require.NoError(t, s.Submit("qwerty"))
	res, ok := s.Reply(m)
	require.True(t, ok)
	assert.Equal(t, faq.OutcomeFallback, res.Outcome)
	assert.Equal(t, faq.DefaultFallback, s.View().Messages[2].Text)
}

func TestSession_RateLimited(t *testing.T) {
	st := newTestStore(StoreConfig{Rate: rate.Every(time.Hour), Burst: 2})
	s := st.Create()

	require.NoError(t, s.Submit("one"))
	require.NoError(t, s.Submit("two"))
	assert.ErrorIs(t, s.Submit("three"), ErrRateLimited)
	assert.Len(t, s.View().Messages, 3)
}

func TestStore_GetOrCreate(t *testing.T) {
	st := newTestStore(StoreConfig{})

	s, created := st.GetOrCreate("")
	assert.True(t, created)

	again, created := st.GetOrCreate(s.ID)
	assert.False(t, created)
	assert.Same(t, s, again)

	_, created = st.GetOrCreate("unknown-id")
	assert.True(t, created)
	assert.Equal(t, 2, st.Len())
}

func TestStore_Sweep(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	st := newTestStore(StoreConfig{TTL: 10 * time.Minute})
	st.now = func() time.Time { return now }

	stale := st.Create()
	now = now.Add(5 * time.Minute)
	fresh := st.Create()

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, st.Sweep())

	_, ok := st.Get(stale.ID)
	assert.False(t, ok)
	_, ok = st.Get(fresh.ID)
	assert.True(t, ok)

	// Get refreshed fresh, so it survives another sweep inside the TTL.
	now = now.Add(9 * time.Minute)
	assert.Equal(t, 0, st.Sweep())
}

func TestStore_RunStopsOnCancel(t *testing.T) {
	st := newTestStore(StoreConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		st.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestSession_AskAnswersEarlierQueriesFirst(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	a := &fakeAnswerer{}

	require.NoError(t, s.Submit("what is your process"))
	res, earlier, err := s.Ask("what are your hours", a)
	require.NoError(t, err)

	assert.Equal(t, "re: what are your hours", res.Answer)
	require.Len(t, earlier, 1)
	assert.Equal(t, "re: what is your process", earlier[0].Answer)
	assert.Equal(t, []string{"what is your process", "what are your hours"}, a.queries)
	assert.False(t, s.Typing())

	texts := make([]string, 0)
	for _, m := range s.View().Messages[1:] {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{
		"what is your process", "what are your hours",
		"re: what is your process", "re: what are your hours",
	}, texts)
}

func TestSession_AskErrors(t *testing.T) {
	s := newTestStore(StoreConfig{Rate: rate.Every(time.Hour), Burst: 1}).Create()
	a := &fakeAnswerer{}

	_, _, err := s.Ask("  ", a)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, _, err = s.Ask("hours", a)
	require.NoError(t, err)
	_, _, err = s.Ask("hours", a)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Len(t, a.queries, 1)
}

func TestSession_AskConcurrent(t *testing.T) {
	s := newTestStore(StoreConfig{}).Create()
	a := &fakeAnswerer{}

	const n = 50
	answers := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _, err := s.Ask(fmt.Sprintf("query %d", i), a)
			if err == nil {
				answers[i] = res.Answer
			}
		}(i)
	}
	wg.Wait()

	for i, got := range answers {
		assert.Equal(t, fmt.Sprintf("re: query %d", i), got)
	}
	assert.Len(t, s.View().Messages, 1+2*n)
	assert.False(t, s.Typing())
}
