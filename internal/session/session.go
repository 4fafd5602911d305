package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
)

var (
	// ErrEmptyInput is returned for empty or whitespace-only questions.
	ErrEmptyInput = errors.New("message is empty")
	// ErrBusy is returned when a question is submitted while another is
	// still being answered.
	ErrBusy = errors.New("a response is already in progress")
)

// Generator produces display text for one user utterance. It never fails;
// failures come back as apology text. Implemented by chat.Orchestrator.
type Generator interface {
	Generate(ctx context.Context, userText string) string
}

// Session pairs a transcript with a generator and allows one outstanding
// question at a time.
type Session struct {
	ID         string
	transcript *Transcript
	gen        Generator
	busy       atomic.Bool
	lastActive atomic.Int64
}

// New creates a session whose transcript starts with greeting.
func New(id string, gen Generator, greeting string) *Session {
	s := &Session{
		ID:         id,
		transcript: NewTranscript(greeting),
		gen:        gen,
	}
	s.touch()
	return s
}

// Ask records text as a user entry, generates the reply, records it as a bot
// entry and returns the bot entry. Empty input is rejected before anything is
// recorded or sent.
func (s *Session) Ask(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyInput
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Message{}, ErrBusy
	}
	defer s.busy.Store(false)
	s.touch()

	s.transcript.Append(SenderUser, text)
	reply := s.gen.Generate(ctx, text)
	s.touch()
	return s.transcript.Append(SenderBot, reply), nil
}

// Busy reports whether a question is currently being answered.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Messages returns the transcript.
func (s *Session) Messages() []Message {
	return s.transcript.Messages()
}

// Clear resets the transcript to the greeting. It fails while a question is
// outstanding so the pending reply cannot land in a cleared transcript.
func (s *Session) Clear() error {
	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)
	s.transcript.Reset()
	s.touch()
	return nil
}

// LastActive returns when the session last saw activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// Greeting is the first transcript entry shown to visitors.
func Greeting(p profile.Profile) string {
	return fmt.Sprintf("Hi there! I'm %s's virtual assistant. Ask me about %s's experience, projects, skills, or how to get in touch. How can I help you today?", p.FirstName(), p.FirstName())
}

// SuggestedQuestions returns the canned prompts offered next to the input.
func SuggestedQuestions(p profile.Profile) []string {
	first := p.FirstName()
	return []string{
		fmt.Sprintf("What are %s's technical skills?", first),
		fmt.Sprintf("How can I contact %s?", first),
		fmt.Sprintf("What experience does %s have?", first),
		fmt.Sprintf("Tell me about %s's projects", first),
		fmt.Sprintf("What is %s's education?", first),
		fmt.Sprintf("What are %s's interests?", first),
	}
}
