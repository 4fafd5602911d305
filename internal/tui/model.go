// Package tui is the terminal chat window: a scrolling transcript, a single
// line input, and the suggested questions.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/benjaminnamo/portfolio-chatbot/internal/session"
)

const (
	headerHeight = 2
	footerHeight = 3
)

// replyMsg carries the result of one Ask back to Update.
type replyMsg struct {
	reply session.Message
	err   error
}

// Options configures a Model.
type Options struct {
	// Name is shown in the header and used to label bot entries.
	Name        string
	Suggestions []string
	Dark        bool
}

// Model is the bubbletea model for the chat window.
type Model struct {
	ctx         context.Context
	session     *session.Session
	name        string
	suggestions []string

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   styles

	busy   bool
	status string
	width  int
	height int
}

// New builds a chat model over sess. ctx bounds every question asked.
func New(ctx context.Context, sess *session.Session, opts Options) Model {
	theme := LightTheme()
	if opts.Dark {
		theme = DarkTheme()
	}
	st := newStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "Ask a question... (Enter to send)"
	ti.Prompt = "> "
	ti.CharLimit = 1000
	ti.Width = 76
	ti.PromptStyle = st.Prompt
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	m := Model{
		ctx:         ctx,
		session:     sess,
		name:        opts.Name,
		suggestions: opts.Suggestions,
		input:       ti,
		viewport:    viewport.New(80, 20),
		spinner:     sp,
		styles:      st,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-2, 10)
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight-m.suggestionLines(), 3)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil

	case replyMsg:
		m.busy = false
		m.input.Focus()
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// The user entry lands in the transcript once the ask starts.
		m.refresh()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+d":
		if m.styles.Theme.IsDark {
			m.styles = newStyles(LightTheme())
		} else {
			m.styles = newStyles(DarkTheme())
		}
		m.input.PromptStyle = m.styles.Prompt
		m.spinner.Style = m.styles.Spinner
		m.refresh()
		return m, nil

	case "ctrl+l":
		if m.busy {
			return m, nil
		}
		if err := m.session.Clear(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
		m.refresh()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case "enter":
		if m.busy {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		return m.submit(text)
	}

	if m.busy {
		return m, nil
	}

	if i, ok := suggestionIndex(msg); ok && m.input.Value() == "" && i < len(m.suggestions) {
		return m.submit(m.suggestions[i])
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// suggestionIndex maps the digit keys 1-6 to a zero-based suggestion index.
func suggestionIndex(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '6' {
		return 0, false
	}
	return int(r - '1'), true
}

func (m Model) submit(text string) (tea.Model, tea.Cmd) {
	m.busy = true
	m.status = ""
	m.input.Blur()
	return m, tea.Batch(m.spinner.Tick, m.ask(text))
}

func (m Model) ask(text string) tea.Cmd {
	sess, ctx := m.session, m.ctx
	return func() tea.Msg {
		reply, err := sess.Ask(ctx, text)
		return replyMsg{reply: reply, err: err}
	}
}

// Busy reports whether a question is being answered.
func (m Model) Busy() bool { return m.busy }

// Dark reports whether the dark theme is active.
func (m Model) Dark() bool { return m.styles.Theme.IsDark }

func (m Model) suggestionLines() int {
	if len(m.suggestions) == 0 {
		return 0
	}
	return len(m.suggestions) + 1
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	width := max(m.viewport.Width-4, 20)
	botLabel := "Assistant"
	if m.name != "" {
		botLabel = m.name + "'s assistant"
	}

	var b strings.Builder
	for _, msg := range m.session.Messages() {
		label, style := "You", m.styles.User
		if msg.Sender == session.SenderBot {
			label, style = botLabel, m.styles.Bot
		}
		b.WriteString(m.styles.Meta.Render(fmt.Sprintf("%s · %s", label, msg.Timestamp.Format("15:04"))))
		b.WriteString("\n")
		b.WriteString(style.Width(width).Render(msg.Content))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) View() string {
	var b strings.Builder

	title := "Chat"
	if m.name != "" {
		title = "Chat with " + m.name + "'s assistant"
	}
	b.WriteString(m.styles.Header.Render(title))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if !m.busy && m.input.Value() == "" && len(m.suggestions) > 0 {
		b.WriteString(m.styles.Meta.Render("Suggested questions:"))
		b.WriteString("\n")
		for i, q := range m.suggestions {
			b.WriteString(m.styles.Suggestion.Render(fmt.Sprintf("  %d. %s", i+1, q)))
			b.WriteString("\n")
		}
	}

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " " + m.styles.Meta.Render("Thinking..."))
	case m.status != "":
		b.WriteString(m.styles.Error.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter send · 1-6 suggestion · ctrl+l clear · ctrl+d theme · esc quit"))

	return lipgloss.NewStyle().MaxWidth(max(m.width, 80)).Render(b.String())
}

// Run starts the chat window and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		New(ctx, sess, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
