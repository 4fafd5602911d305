package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

type echoGenerator struct {
	calls atomic.Int32
	last  atomic.Value
}

func (g *echoGenerator) Generate(ctx context.Context, text string) string {
	g.calls.Add(1)
	g.last.Store(text)
	return "answer: " + text
}

var suggestions = []string{
	"What are Benjamin's technical skills?",
	"How can I contact Benjamin?",
	"What experience does Benjamin have?",
	"Tell me about Benjamin's projects",
	"What is Benjamin's education?",
	"What are Benjamin's interests?",
}

func newTestModel(t *testing.T) (Model, *session.Session, *echoGenerator) {
	t.Helper()
	gen := &echoGenerator{}
	sess := session.New("tui", gen, "Hi there!")
	m := New(context.Background(), sess, Options{Name: "Benjamin", Suggestions: suggestions})
	return m, sess, gen
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return mm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

// awaitReply runs cmd (and any batched commands) until the ask result arrives.
func awaitReply(t *testing.T, cmd tea.Cmd) replyMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	out := make(chan tea.Msg, 8)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, bc := range batch {
					run(bc)
				}
				return
			}
			out <- msg
		}()
	}
	run(cmd)

	timeout := time.After(5 * time.Second)
	for {
		select {
		case msg := <-out:
			if r, ok := msg.(replyMsg); ok {
				return r
			}
		case <-timeout:
			t.Fatal("timed out waiting for reply")
		}
	}
}

func TestModel_StartsWithGreeting(t *testing.T) {
	m, _, _ := newTestModel(t)
	if !strings.Contains(m.View(), "Hi there!") {
		t.Error("view does not show greeting")
	}
	if !strings.Contains(m.View(), "1. What are Benjamin's technical skills?") {
		t.Error("view does not list suggestions")
	}
}

func TestModel_EnterSubmits(t *testing.T) {
	m, sess, gen := newTestModel(t)

	m = typeText(t, m, "Where did Benjamin study?")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Busy() {
		t.Fatal("model not busy after Enter")
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	reply := awaitReply(t, cmd)
	if reply.err != nil {
		t.Fatalf("reply error: %v", reply.err)
	}
	m, _ = update(t, m, reply)
	if m.Busy() {
		t.Error("model still busy after reply")
	}
	if gen.calls.Load() != 1 {
		t.Errorf("generator calls = %d, want 1", gen.calls.Load())
	}

	msgs := sess.Messages()
	if len(msgs) != 3 {
		t.Fatalf("transcript len = %d, want 3", len(msgs))
	}
	if msgs[2].Content != "answer: Where did Benjamin study?" {
		t.Errorf("bot entry = %q", msgs[2].Content)
	}
	if !strings.Contains(m.View(), "answer: Where did Benjamin study?") {
		t.Error("view does not show reply")
	}
}

func TestModel_EnterIgnoredWhenEmpty(t *testing.T) {
	m, sess, gen := newTestModel(t)

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no command for blank input")
	}
	if m.Busy() {
		t.Error("model busy after blank Enter")
	}
	if gen.calls.Load() != 0 || len(sess.Messages()) != 1 {
		t.Error("blank input reached the session")
	}
}

func TestModel_EnterIgnoredWhileBusy(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = typeText(t, m, "first")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Busy() {
		t.Fatal("expected busy")
	}

	m = typeText(t, m, "second")
	if m.input.Value() != "" {
		t.Errorf("input accepted text while busy: %q", m.input.Value())
	}
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Enter while busy produced a command")
	}
}

func TestModel_DigitSendsSuggestion(t *testing.T) {
	m, _, gen := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	if !m.Busy() {
		t.Fatal("digit did not submit suggestion")
	}
	awaitReply(t, cmd)
	if got := gen.last.Load(); got != "How can I contact Benjamin?" {
		t.Errorf("sent %v, want second suggestion", got)
	}
}

func TestModel_DigitTypesWhenInputNotEmpty(t *testing.T) {
	m, _, gen := newTestModel(t)

	m = typeText(t, m, "top ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	if m.Busy() {
		t.Error("digit submitted with non-empty input")
	}
	if m.input.Value() != "top 3" {
		t.Errorf("input = %q, want %q", m.input.Value(), "top 3")
	}
	if gen.calls.Load() != 0 {
		t.Error("generator called")
	}
}

func TestModel_CtrlLClears(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = typeText(t, m, "hello")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, awaitReply(t, cmd))
	if len(sess.Messages()) != 3 {
		t.Fatalf("transcript len = %d, want 3", len(sess.Messages()))
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(sess.Messages()) != 1 {
		t.Errorf("transcript len after clear = %d, want 1", len(sess.Messages()))
	}
	if strings.Contains(m.View(), "answer: hello") {
		t.Error("view still shows cleared reply")
	}
}

func TestModel_CtrlDTogglesTheme(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.Dark() {
		t.Fatal("expected light theme by default")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if !m.Dark() {
		t.Error("Ctrl+D did not switch to dark")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.Dark() {
		t.Error("Ctrl+D did not switch back to light")
	}
}

func TestModel_WindowResize(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.viewport.Width != 118 {
		t.Errorf("viewport width = %d, want 118", m.viewport.Width)
	}
	if m.viewport.Height <= 0 {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Ctrl+C did not quit")
	}
}
