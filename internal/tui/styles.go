package tui

import "github.com/charmbracelet/lipgloss"

// Theme is a color scheme for the chat window.
type Theme struct {
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	UserBubble lipgloss.Color
	BotBubble  lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Muted:      lipgloss.Color("#6b7280"),
		Accent:     lipgloss.Color("#2563eb"),
		UserBubble: lipgloss.Color("#dbeafe"),
		BotBubble:  lipgloss.Color("#f3f4f6"),
		Border:     lipgloss.Color("#d1d5db"),
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Muted:      lipgloss.Color("#9ca3af"),
		Accent:     lipgloss.Color("#60a5fa"),
		UserBubble: lipgloss.Color("#1e3a8a"),
		BotBubble:  lipgloss.Color("#1f2937"),
		Border:     lipgloss.Color("#374151"),
		IsDark:     true,
	}
}

type styles struct {
	Theme      Theme
	Header     lipgloss.Style
	User       lipgloss.Style
	Bot        lipgloss.Style
	Meta       lipgloss.Style
	Suggestion lipgloss.Style
	Help       lipgloss.Style
	Spinner    lipgloss.Style
	Prompt     lipgloss.Style
	Error      lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Theme: t,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		User: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.UserBubble).
			Padding(0, 1),
		Bot: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.BotBubble).
			Padding(0, 1),
		Meta:       lipgloss.NewStyle().Foreground(t.Muted),
		Suggestion: lipgloss.NewStyle().Foreground(t.Accent),
		Help:       lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Spinner:    lipgloss.NewStyle().Foreground(t.Accent),
		Prompt:     lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}
