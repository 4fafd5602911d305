package profile

import "strings"

// Profile is the portfolio owner's personal record: the document every
// answer is grounded in.
type Profile struct {
	Name       string           `json:"name" yaml:"name"`
	Title      string           `json:"title" yaml:"title"`
	Summary    string           `json:"summary" yaml:"summary"`
	Education  []Education      `json:"education" yaml:"education"`
	Experience []WorkExperience `json:"experience" yaml:"experience"`
	Projects   []Project        `json:"projects" yaml:"projects"`
	Skills     []SkillCategory  `json:"skills" yaml:"skills"`
	Interests  []string         `json:"interests" yaml:"interests"`
	Contact    Contact          `json:"contact" yaml:"contact"`
}

type Education struct {
	Institution string `json:"institution" yaml:"institution"`
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	StartDate   string `json:"startDate" yaml:"startDate"`
	EndDate     string `json:"endDate" yaml:"endDate"`
	Description string `json:"description" yaml:"description"`
}

type WorkExperience struct {
	Company      string   `json:"company" yaml:"company"`
	Position     string   `json:"position" yaml:"position"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      string   `json:"endDate" yaml:"endDate"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements" yaml:"achievements"`
}

type Project struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Link         string   `json:"link,omitempty" yaml:"link,omitempty"`
	GitHub       string   `json:"github,omitempty" yaml:"github,omitempty"`
}

// SkillCategory groups skills under a label, e.g. "Languages" → Go, Python.
type SkillCategory struct {
	Category string   `json:"category" yaml:"category"`
	Items    []string `json:"items" yaml:"items"`
}

type Contact struct {
	Email     string `json:"email" yaml:"email"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty" yaml:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty" yaml:"portfolio,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// FirstName returns the first word of Name, or "the owner" when Name is
// blank. Used wherever prose addresses the person informally.
func (p Profile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return "the owner"
	}
	return fields[0]
}
