// Package chat holds the per-visitor state of the FAQ chat widget.
package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Cedrix49/portfolio/internal/faq"
)

var (
	ErrEmptyMessage = errors.New("empty message")
	ErrRateLimited  = errors.New("too many messages")
)

// Answerer resolves a user query to a reply.
type Answerer interface {
	Resolve(query string) faq.Result
}

// Session is the widget state of one visitor. Every field changes only
// through the event methods below.
type Session struct {
	ID string

	mu         sync.Mutex
	open       bool
	pending    []string
	bucket     faq.Bucket
	transcript *faq.Transcript
	limiter    *rate.Limiter
	suggest    *faq.SuggestionProvider
	lastSeen   time.Time
}

// View is a render-ready snapshot of a Session.
type View struct {
	ID          string
	Open        bool
	Typing      bool
	Messages    []faq.Message
	Suggestions []string
}

// Toggle opens or closes the widget and reports the new state.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
	return s.open
}

// Submit records a user message and queues it for a reply. Sending also
// opens the widget.
func (s *Session) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked(text)
}

func (s *Session) submitLocked(text string) error {
	if !s.limiter.Allow() {
		return ErrRateLimited
	}
	s.open = true
	s.transcript.Append(faq.SenderUser, text)
	s.pending = append(s.pending, text)
	s.bucket = s.suggest.Next(s.bucket, text)
	return nil
}

// Ask submits text and answers it before returning. Queries already pending
// are answered first, in order, so the transcript stays paired. The whole
// exchange happens under one lock; concurrent callers on the same session
// each get the answer to their own text.
func (s *Session) Ask(text string, a Answerer) (faq.Result, []faq.Result, error) {
	if strings.TrimSpace(text) == "" {
		return faq.Result{}, nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.submitLocked(text); err != nil {
		return faq.Result{}, nil, err
	}

	var earlier []faq.Result
	for {
		res, _ := s.replyLocked(a)
		if len(s.pending) == 0 {
			return res, earlier, nil
		}
		earlier = append(earlier, res)
	}
}

// Reply answers the oldest pending query. It reports false when nothing is
// waiting.
func (s *Session) Reply(a Answerer) (faq.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replyLocked(a)
}

func (s *Session) replyLocked(a Answerer) (faq.Result, bool) {
	if len(s.pending) == 0 {
		return faq.Result{}, false
	}
	query := s.pending[0]
	s.pending = s.pending[1:]

	res := a.Resolve(query)
	s.transcript.Append(faq.SenderBot, res.Answer)
	return res, true
}

// Typing reports whether a reply is still owed.
func (s *Session) Typing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		ID:       s.ID,
		Open:     s.open,
		Typing:   len(s.pending) > 0,
		Messages: s.transcript.Messages(),
	}
	if !v.Typing {
		v.Suggestions = s.suggest.Suggestions(s.bucket)
	}
	return v
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
