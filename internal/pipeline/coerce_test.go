package pipeline

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func parseObject(t *testing.T, s string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &m))
	return m
}

func TestCoerce_SkillsString(t *testing.T) {
	record := Coerce(parseObject(t, `{"skills": "Python, Django, React"}`))
	assert.Equal(t, []string{"Python", "Django", "React"}, record.Skills)
}

func TestCoerce_SkillsStringDropsEmptyTokens(t *testing.T) {
	record := Coerce(parseObject(t, `{"skills": " Go,, SQL , "}`))
	assert.Equal(t, []string{"Go", "SQL"}, record.Skills)
}

func TestCoerce_MissingFieldsGetDefaults(t *testing.T) {
	record := Coerce(parseObject(t, `{"name": "Jane Doe"}`))

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "", record.Email)
	assert.Equal(t, []types.ExperienceEntry{}, record.Experience)
	assert.Equal(t, []types.EducationEntry{}, record.Education)
	assert.Equal(t, []types.ProjectEntry{}, record.Projects)
	assert.Equal(t, []string{}, record.Skills)
	assert.Equal(t, []string{}, record.Certifications)
	assert.Equal(t, []string{}, record.Languages)

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
	assert.NoError(t, schemas.ValidateResumeRecord(record))
}

func TestCoerce_NilMap(t *testing.T) {
	record := Coerce(nil)
	assert.Equal(t, types.NewResumeRecord(), record)
}

func TestCoerce_NullsAndWrongTypes(t *testing.T) {
	record := Coerce(parseObject(t, `{
		"name": null,
		"email": ["not", "a", "string"],
		"skills": null,
		"education": "BSc somewhere",
		"experience": 42,
		"languages": {"primary": "English"}
	}`))

	assert.Equal(t, "", record.Name)
	assert.Equal(t, "", record.Email)
	assert.Equal(t, []string{}, record.Skills)
	assert.Equal(t, []types.EducationEntry{}, record.Education)
	assert.Equal(t, []types.ExperienceEntry{}, record.Experience)
	assert.Equal(t, []string{}, record.Languages)
}

func TestCoerce_SingleObjectsWrapped(t *testing.T) {
	record := Coerce(parseObject(t, `{
		"education": {"degree": "BSc", "field": "CS", "school": "MIT", "graduation_year": 2019},
		"experience": {"title": "Engineer", "company": "Acme", "start_date": "2019", "end_date": "Present"},
		"projects": {"name": "resume-analyzer", "technologies": "Go, AWS", "description": "CLI"}
	}`))

	assert.Equal(t, []types.EducationEntry{{Degree: "BSc", Field: "CS", School: "MIT", GraduationYear: "2019"}}, record.Education)
	assert.Equal(t, []types.ExperienceEntry{{Title: "Engineer", Company: "Acme", StartDate: "2019", EndDate: "Present"}}, record.Experience)
	assert.Equal(t, []types.ProjectEntry{{Name: "resume-analyzer", Technologies: []string{"Go", "AWS"}, Description: "CLI"}}, record.Projects)
}

func TestCoerce_FullExtractionShape(t *testing.T) {
	record := Coerce(parseObject(t, `{
		"personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": "555-0100", "location": "Austin, TX"},
		"summary": "Backend engineer",
		"experience": [{"title": "Engineer", "company": "Acme", "duration": "2019 - 2023", "description": ["Built APIs", "Led migrations"]}],
		"education": [{"degree": "BSc", "institution": "UT Austin", "year": "2018", "details": "Honors"}],
		"skills": ["Go", "PostgreSQL"],
		"certifications": ["AWS SAA"],
		"languages": ["English", "Spanish"]
	}`))

	assert.Equal(t, "Jane Doe", record.Name)
	assert.Equal(t, "jane@example.com", record.Email)
	assert.Equal(t, "555-0100", record.Phone)
	assert.Equal(t, "Austin, TX", record.Location)
	assert.Equal(t, "Backend engineer", record.Summary)
	assert.Equal(t, []types.ExperienceEntry{{
		Title: "Engineer", Company: "Acme", Duration: "2019 - 2023", Description: "Built APIs\nLed migrations",
	}}, record.Experience)
	assert.Equal(t, []types.EducationEntry{{Degree: "BSc", School: "UT Austin", GraduationYear: "2018", Details: "Honors"}}, record.Education)
	assert.Equal(t, []string{"AWS SAA"}, record.Certifications)
	assert.Equal(t, []string{"English", "Spanish"}, record.Languages)
}

func TestCoerce_TopLevelWinsOverPersonalInfo(t *testing.T) {
	record := Coerce(parseObject(t, `{"name": "Top", "personal_info": {"name": "Nested", "email": "n@example.com"}}`))
	assert.Equal(t, "Top", record.Name)
	assert.Equal(t, "n@example.com", record.Email)
}

func TestCoerce_ListEntries(t *testing.T) {
	record := Coerce(parseObject(t, `{
		"skills": ["Go", 3.5, {"name": "Kafka"}, "", null, true],
		"education": ["BSc Computer Science", "", 7],
		"projects": ["side project"]
	}`))

	assert.Equal(t, []string{"Go", "3.5", "Kafka", "true"}, record.Skills)
	assert.Equal(t, []types.EducationEntry{{Degree: "BSc Computer Science"}}, record.Education)
	assert.Equal(t, []types.ProjectEntry{{Name: "side project", Technologies: []string{}}}, record.Projects)
}

func TestCoerceGapAnalysis(t *testing.T) {
	many := make([]string, 12)
	for i := range many {
		many[i] = `"skill ` + strings.Repeat("x", i+1) + `"`
	}
	record := CoerceGapAnalysis(parseObject(t, `{
		"missing_technical_skills": [`+strings.Join(many, ",")+`],
		"missing_education": "Master's degree in CS, or equivalent",
		"missing_certifications": null,
		"recommended_actions": ["Take a Kubernetes course", ""],
		"unexpected_key": ["ignored"]
	}`))

	assert.Len(t, record.MissingTechnicalSkills, types.MaxGapItems)
	assert.Equal(t, "skill x", record.MissingTechnicalSkills[0])
	assert.Equal(t, []string{"Master's degree in CS, or equivalent"}, record.MissingEducation)
	assert.Equal(t, []string{}, record.MissingCertifications)
	assert.Equal(t, []string{}, record.MissingExperience)
	assert.Equal(t, []string{}, record.MissingSoftSkills)
	assert.Equal(t, []string{"Take a Kubernetes course"}, record.RecommendedActions)
	assert.NoError(t, schemas.ValidateGapAnalysis(record))
}
