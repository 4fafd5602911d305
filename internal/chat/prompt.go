package chat

import (
	"fmt"
	"strings"

	"github.com/benjaminnamo/portfolio-chatbot/internal/profile"
)

// SystemPrompt builds the system instruction: fixed response rules followed
// by the profile snapshot. The rules keep answers to plain text of at most
// three sentences.
func SystemPrompt(p profile.Profile, snapshot string) string {
	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = "the portfolio owner"
	}
	first := p.FirstName()

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s's personal assistant chatbot. Answer questions about %s's background, skills, experience, education, projects, and interests based on the data provided.\n\n", name, first)
	sb.WriteString("IMPORTANT: You MUST NOT use ANY formatting in your responses - no asterisks (*), no bullet points, no markdown, no bold or italics, and no special characters for formatting. Your responses must be plain text only.\n\n")
	sb.WriteString("Keep your responses extremely concise (2-3 sentences maximum). Be direct and to the point. Prioritize the most relevant information only. ")
	sb.WriteString("For work experience, mention only company names, positions, and 1-2 key achievements total. For skills, mention only the most relevant categories. For education, just the degree and institution.\n\n")
	sb.WriteString("When listing projects or multiple items, use commas or simple sentences. Never use bullet points, numbers, or any special formatting.\n\n")
	if ex := exampleAnswer(p); ex != "" {
		fmt.Fprintf(&sb, "Example response style:\n%q\n\n", ex)
	}
	fmt.Fprintf(&sb, "Here's %s's information:\n", name)
	sb.WriteString(snapshot)
	return sb.String()
}

// exampleAnswer renders a style sample from the profile itself so the model
// sees the expected shape without invented facts.
func exampleAnswer(p profile.Profile) string {
	first := p.FirstName()
	var parts []string

	var jobs []string
	for _, w := range p.Experience {
		if w.Company == "" || w.Position == "" {
			continue
		}
		jobs = append(jobs, fmt.Sprintf("as %s at %s", w.Position, w.Company))
		if len(jobs) == 2 {
			break
		}
	}
	if len(jobs) > 0 {
		parts = append(parts, fmt.Sprintf("%s worked %s.", first, strings.Join(jobs, " and ")))
	}

	var skills []string
	for _, s := range p.Skills {
		skills = append(skills, s.Items...)
		if len(skills) >= 4 {
			skills = skills[:4]
			break
		}
	}
	if len(skills) > 0 {
		parts = append(parts, fmt.Sprintf("They have experience with %s.", strings.Join(skills, ", ")))
	}
	return strings.Join(parts, " ")
}
