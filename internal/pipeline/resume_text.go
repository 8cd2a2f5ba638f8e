package pipeline

import (
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// ResumeText renders a record as plain text for the gap-analysis prompt.
// Empty fields and sections are left out.
func ResumeText(r *types.ResumeRecord) string {
	if r == nil {
		return ""
	}
	var lines []string
	add := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	add("Name", r.Name)
	add("Email", r.Email)
	add("Phone", r.Phone)
	add("Location", r.Location)
	add("Summary", r.Summary)

	if len(r.Experience) > 0 {
		lines = append(lines, "Experience:")
		for _, e := range r.Experience {
			line := "- " + e.Title + " at " + e.Company
			if d := experienceDates(e); d != "" {
				line += " (" + d + ")"
			}
			if e.Description != "" {
				line += ": " + e.Description
			}
			lines = append(lines, line)
		}
	}

	if len(r.Education) > 0 {
		lines = append(lines, "Education:")
		for _, e := range r.Education {
			line := "- " + e.Degree
			if e.Field != "" {
				line += " in " + e.Field
			}
			if e.School != "" {
				line += " from " + e.School
			}
			if e.GraduationYear != "" {
				line += " (" + e.GraduationYear + ")"
			}
			lines = append(lines, line)
		}
	}

	if len(r.Projects) > 0 {
		lines = append(lines, "Projects:")
		for _, p := range r.Projects {
			line := "- " + p.Name
			if len(p.Technologies) > 0 {
				line += " [" + strings.Join(p.Technologies, ", ") + "]"
			}
			if p.Description != "" {
				line += ": " + p.Description
			}
			lines = append(lines, line)
		}
	}

	add("Skills", strings.Join(r.Skills, ", "))
	add("Certifications", strings.Join(r.Certifications, ", "))
	add("Languages", strings.Join(r.Languages, ", "))

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// experienceDates prefers the duration string, then start - end
func experienceDates(e types.ExperienceEntry) string {
	if e.Duration != "" {
		return e.Duration
	}
	if e.StartDate != "" && e.EndDate != "" {
		return e.StartDate + " - " + e.EndDate
	}
	return firstNonEmpty(e.StartDate, e.EndDate)
}
