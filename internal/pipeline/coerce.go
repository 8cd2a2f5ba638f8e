package pipeline

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Coerce fills a ResumeRecord from a parsed model response. Absent or null
// fields get empty defaults, a comma-separated skills string is split, and a
// single education/experience/project object is wrapped in a list. Both the
// quick shape and the full shape (personal_info, institution, year) are read.
func Coerce(parsed map[string]any) *types.ResumeRecord {
	record := types.NewResumeRecord()
	if parsed == nil {
		return record
	}

	personal, _ := parsed["personal_info"].(map[string]any)
	record.Name = firstNonEmpty(stringValue(parsed["name"]), stringValue(personal["name"]))
	record.Email = firstNonEmpty(stringValue(parsed["email"]), stringValue(personal["email"]))
	record.Phone = firstNonEmpty(stringValue(parsed["phone"]), stringValue(personal["phone"]))
	record.Location = firstNonEmpty(stringValue(parsed["location"]), stringValue(personal["location"]))
	record.Summary = stringValue(parsed["summary"])

	record.Skills = stringList(parsed["skills"], true)
	record.Certifications = stringList(parsed["certifications"], true)
	record.Languages = stringList(parsed["languages"], true)

	for _, entry := range objectList(parsed["education"]) {
		if e, ok := educationEntry(entry); ok {
			record.Education = append(record.Education, e)
		}
	}
	for _, entry := range objectList(parsed["experience"]) {
		if e, ok := experienceEntry(entry); ok {
			record.Experience = append(record.Experience, e)
		}
	}
	for _, entry := range objectList(parsed["projects"]) {
		if p, ok := projectEntry(entry); ok {
			record.Projects = append(record.Projects, p)
		}
	}
	return record
}

// CoerceGapAnalysis fills a GapAnalysisRecord from a parsed model response and
// truncates every category to types.MaxGapItems.
func CoerceGapAnalysis(parsed map[string]any) *types.GapAnalysisRecord {
	record := types.NewGapAnalysisRecord()
	for _, key := range types.GapCategories {
		*record.Category(key) = stringList(parsed[key], false)
	}
	record.Truncate()
	return record
}

func educationEntry(v any) (types.EducationEntry, bool) {
	switch e := v.(type) {
	case string:
		e = strings.TrimSpace(e)
		return types.EducationEntry{Degree: e}, e != ""
	case map[string]any:
		return types.EducationEntry{
			Degree:         stringValue(e["degree"]),
			Field:          firstNonEmpty(stringValue(e["field"]), stringValue(e["field_of_study"])),
			School:         firstNonEmpty(stringValue(e["school"]), stringValue(e["institution"])),
			GraduationYear: firstNonEmpty(stringValue(e["graduation_year"]), stringValue(e["year"])),
			Details:        stringValue(e["details"]),
		}, true
	}
	return types.EducationEntry{}, false
}

func experienceEntry(v any) (types.ExperienceEntry, bool) {
	switch e := v.(type) {
	case string:
		e = strings.TrimSpace(e)
		return types.ExperienceEntry{Title: e}, e != ""
	case map[string]any:
		return types.ExperienceEntry{
			Title:       stringValue(e["title"]),
			Company:     stringValue(e["company"]),
			Location:    stringValue(e["location"]),
			StartDate:   stringValue(e["start_date"]),
			EndDate:     stringValue(e["end_date"]),
			Duration:    stringValue(e["duration"]),
			Description: joinedText(e["description"]),
		}, true
	}
	return types.ExperienceEntry{}, false
}

func projectEntry(v any) (types.ProjectEntry, bool) {
	switch p := v.(type) {
	case string:
		p = strings.TrimSpace(p)
		return types.ProjectEntry{Name: p, Technologies: []string{}}, p != ""
	case map[string]any:
		return types.ProjectEntry{
			Name:         stringValue(p["name"]),
			Technologies: stringList(p["technologies"], true),
			Description:  joinedText(p["description"]),
		}, true
	}
	return types.ProjectEntry{}, false
}

// objectList wraps a single object in a list; anything but a list or object
// yields nil
func objectList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case map[string]any:
		return []any{x}
	}
	return nil
}

// stringList reads a list of strings. Non-string scalars are formatted, objects
// contribute their "name", empty entries are dropped. A bare string becomes a
// one-element list, or is split on commas when splitCommas is set.
func stringList(v any, splitCommas bool) []string {
	out := []string{}
	switch x := v.(type) {
	case string:
		if !splitCommas {
			if s := strings.TrimSpace(x); s != "" {
				out = append(out, s)
			}
			return out
		}
		for _, part := range strings.Split(x, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range x {
			s := stringValue(item)
			if m, ok := item.(map[string]any); ok {
				s = stringValue(m["name"])
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// stringValue formats a JSON scalar; objects, lists and null give ""
func stringValue(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// joinedText accepts a string or a list of strings (bullet points)
func joinedText(v any) string {
	if list, ok := v.([]any); ok {
		return strings.Join(stringList(list, false), "\n")
	}
	return stringValue(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
