package faq

import (
	"sync"
	"time"
)

// Sender identifies who wrote a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type Message struct {
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	At     time.Time `json:"at"`
}

// Transcript is an append-only, ordered message log. It is safe for
// concurrent use.
type Transcript struct {
	mu   sync.RWMutex
	msgs []Message
	now  func() time.Time
}

// NewTranscript returns a transcript that opens with a bot greeting. A blank
// greeting starts it empty.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{now: time.Now}
	if greeting != "" {
		t.Append(SenderBot, greeting)
	}
	return t
}

func (t *Transcript) Append(sender Sender, text string) Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	msg := Message{Sender: sender, Text: text, At: t.now()}
	t.msgs = append(t.msgs, msg)
	return msg
}

// Messages returns a snapshot of the log.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Message(nil), t.msgs...)
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.msgs)
}
