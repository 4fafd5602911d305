package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sender tags who authored a transcript entry.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one transcript entry.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// Transcript is an ordered, append-only list of messages that always starts
// with the greeting.
type Transcript struct {
	greeting string
	now      func() time.Time

	mu       sync.RWMutex
	messages []Message
}

// NewTranscript creates a transcript holding only the greeting.
func NewTranscript(greeting string) *Transcript {
	t := &Transcript{greeting: greeting, now: time.Now}
	t.messages = []Message{t.greetingMessage()}
	return t
}

func (t *Transcript) greetingMessage() Message {
	return Message{
		ID:        uuid.NewString(),
		Content:   t.greeting,
		Sender:    SenderBot,
		Timestamp: t.now(),
	}
}

// Append adds a message from sender and returns it.
func (t *Transcript) Append(sender Sender, content string) Message {
	m := Message{
		ID:        uuid.NewString(),
		Content:   content,
		Sender:    sender,
		Timestamp: t.now(),
	}
	t.mu.Lock()
	t.messages = append(t.messages, m)
	t.mu.Unlock()
	return m
}

// Messages returns a copy of the transcript in display order.
func (t *Transcript) Messages() []Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of entries, greeting included.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// Reset clears the conversation back to a fresh greeting.
func (t *Transcript) Reset() {
	g := t.greetingMessage()
	t.mu.Lock()
	t.messages = []Message{g}
	t.mu.Unlock()
}
