package chat

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Cedrix49/portfolio/internal/faq"
)

// StoreConfig controls session creation and expiry.
type StoreConfig struct {
	Greeting    string
	Suggestions *faq.SuggestionProvider
	TTL         time.Duration
	Rate        rate.Limit
	Burst       int
}

// Store keeps widget sessions in memory, keyed by ID.
type Store struct {
	cfg StoreConfig
	now func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(cfg StoreConfig) *Store {
	if cfg.Suggestions == nil {
		cfg.Suggestions = faq.NewSuggestionProvider(faq.DefaultSuggestionSets())
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.Rate <= 0 {
		cfg.Rate = rate.Inf
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return &Store{
		cfg:      cfg,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns a live session and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(st.now())
	return s, true
}

// Create starts a new session with a fresh transcript.
func (st *Store) Create() *Session {
	s := &Session{
		ID:         uuid.NewString(),
		bucket:     faq.BucketInitial,
		transcript: faq.NewTranscript(st.cfg.Greeting),
		limiter:    rate.NewLimiter(st.cfg.Rate, st.cfg.Burst),
		suggest:    st.cfg.Suggestions,
		lastSeen:   st.now(),
	}
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// GetOrCreate looks up id and falls back to a new session. created reports
// whether the caller must hand out a new ID.
func (st *Store) GetOrCreate(id string) (s *Session, created bool) {
	if id != "" {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}
	return st.Create(), true
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
// were removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.cfg.TTL)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				log.Printf("Chat: expired %d idle sessions", n)
			}
		}
	}
}
