package profile

// Placeholder returns the built-in template profile used when no private
// profile file is configured. Every value is obviously fictitious.
func Placeholder() Profile {
	return Profile{
		Name:    "Your Name",
		Title:   "Your Title",
		Summary: "Write a brief summary about yourself here. Describe your passion, expertise, and what you're looking for.",
		Education: []Education{
			{
				Institution: "University Name",
				Degree:      "Your Degree",
				Field:       "Your Field",
				StartDate:   "Year Started",
				EndDate:     "Year Ended",
				Description: "Brief description of your education experience, courses, achievements, etc.",
			},
		},
		Experience: []WorkExperience{
			{
				Company:     "Company Name",
				Position:    "Your Position",
				StartDate:   "Start Date",
				EndDate:     "End Date",
				Description: "Brief description of your role and responsibilities.",
				Achievements: []string{
					"Notable achievement 1",
					"Notable achievement 2",
					"Notable achievement 3",
				},
			},
		},
		Projects: []Project{
			{
				Name:         "Project Name",
				Description:  "Brief description of your project, its purpose, and impact.",
				Technologies: []string{"Technology 1", "Technology 2", "Technology 3"},
				GitHub:       "https://github.com/yourusername/project",
			},
		},
		Skills: []SkillCategory{
			{Category: "Skill Category", Items: []string{"Skill 1", "Skill 2", "Skill 3"}},
		},
		Interests: []string{"Interest 1", "Interest 2", "Interest 3"},
		Contact: Contact{
			Email:     "your.email@example.com",
			LinkedIn:  "https://linkedin.com/in/yourusername",
			GitHub:    "https://github.com/yourusername",
			Portfolio: "https://yourportfolio.com",
			Phone:     "Your Phone Number",
		},
	}
}
