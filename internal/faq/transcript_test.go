package faq

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_GreetingAndOrder(t *testing.T) {
	tr := NewTranscript("hello")
	tr.Append(SenderUser, "what are your hours")
	tr.Append(SenderBot, "nine to six")

	msgs := tr.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, SenderBot, msgs[0].Sender)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, SenderUser, msgs[1].Sender)
	assert.Equal(t, "nine to six", msgs[2].Text)
	assert.False(t, msgs[2].At.Before(msgs[0].At))
}

func TestTranscript_EmptyGreeting(t *testing.T) {
	assert.Equal(t, 0, NewTranscript("").Len())
}

func TestTranscript_SnapshotIsIsolated(t *testing.T) {
	tr := NewTranscript("hi")
	snap := tr.Messages()
	snap[0].Text = "mutated"
	tr.Append(SenderUser, "next")

	assert.Len(t, snap, 1)
	assert.Equal(t, "hi", tr.Messages()[0].Text)
}

func TestTranscript_ConcurrentAppend(t *testing.T) {
	tr := NewTranscript("")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(SenderUser, "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, tr.Len())
}
