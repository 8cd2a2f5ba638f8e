package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-analyzer/internal/llm"
	"github.com/jonathan/resume-analyzer/internal/pipeline/steps"
	"github.com/jonathan/resume-analyzer/internal/types"
)

func jobsPayload() map[string]any {
	return map[string]any{
		"data": []any{
			map[string]any{
				"job_title": "Backend Engineer",
				"job_highlights": map[string]any{
					"Qualifications": []any{"5+ years of Go", "Kubernetes in production"},
				},
			},
			map[string]any{
				"job_title":       "Platform Engineer",
				"job_description": "We build infra. A bachelor degree in computer science is required. Must be AWS certified.",
			},
		},
	}
}

func TestAnalyzeGaps(t *testing.T) {
	caller := replying(reply{text: `Here you go:
{"missing_technical_skills": ["Kubernetes"], "missing_certifications": "AWS Certified Solutions Architect", "recommended_actions": ["Earn the AWS certification"]}`})
	opts := testOptions()
	var path []steps.State
	opts.OnTransition = func(tr Transition) { path = append(path, tr.To) }

	record, err := New(caller, opts).AnalyzeGaps(context.Background(), GapRequest{
		Resume:      &types.ResumeRecord{Name: "Jane Doe", Skills: []string{"Go"}},
		JobsPayload: jobsPayload(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Kubernetes"}, record.MissingTechnicalSkills)
	assert.Equal(t, []string{"AWS Certified Solutions Architect"}, record.MissingCertifications)
	assert.Equal(t, []string{}, record.MissingEducation)
	assert.Equal(t, []string{"Earn the AWS certification"}, record.RecommendedActions)
	assert.Equal(t, steps.Sequence[1:], path)

	require.Equal(t, 1, caller.calls())
	req := caller.requests[0]
	assert.Equal(t, llm.TierAdvanced, req.Tier)
	assert.Equal(t, 4000, req.MaxTokens)
	assert.Contains(t, req.Prompt, "Name: Jane Doe")
	assert.Contains(t, req.Prompt, "- 5+ years of Go")
	assert.Contains(t, req.Prompt, "- Kubernetes in production")
	assert.Contains(t, req.Prompt, "A bachelor degree in computer science is required")
}

func TestAnalyzeGaps_TruncatesCategories(t *testing.T) {
	items := make([]string, 12)
	for i := range items {
		items[i] = fmt.Sprintf("%q", fmt.Sprintf("skill %d", i))
	}
	caller := replying(reply{text: `{"missing_soft_skills": [` + strings.Join(items, ",") + `]}`})

	record, err := New(caller, testOptions()).AnalyzeGaps(context.Background(), GapRequest{
		ResumeText:  "Jane Doe, Go developer",
		JobsPayload: jobsPayload(),
	})
	require.NoError(t, err)
	require.Len(t, record.MissingSoftSkills, types.MaxGapItems)
	assert.Equal(t, "skill 0", record.MissingSoftSkills[0])
	assert.Equal(t, "skill 7", record.MissingSoftSkills[7])
}

func TestAnalyzeGaps_CapsQualificationsInPrompt(t *testing.T) {
	quals := make([]any, 60)
	for i := range quals {
		quals[i] = fmt.Sprintf("qualification number %02d", i)
	}
	payload := []any{map[string]any{
		"job_title":      "Engineer",
		"job_highlights": map[string]any{"Qualifications": quals},
	}}
	caller := replying(reply{text: `{}`})

	_, err := New(caller, testOptions()).AnalyzeGaps(context.Background(), GapRequest{
		ResumeText:  "Jane Doe",
		JobsPayload: payload,
	})
	require.NoError(t, err)

	prompt := caller.requests[0].Prompt
	assert.Contains(t, prompt, "qualification number 49")
	assert.NotContains(t, prompt, "qualification number 50")
}

func TestAnalyzeGaps_PayloadFailures(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		kind    Kind
	}{
		{name: "nil payload", payload: nil, kind: KindMalformedUpstreamPayload},
		{name: "number", payload: 42, kind: KindMalformedUpstreamPayload},
		{name: "mapping without jobs", payload: map[string]any{"status": "OK"}, kind: KindMalformedUpstreamPayload},
		{name: "empty list", payload: []any{}, kind: KindNoQualificationsFound},
		{name: "jobs without qualifications", payload: []any{map[string]any{"job_title": "Chef"}}, kind: KindNoQualificationsFound},
		{name: "undecodable string", payload: "not json", kind: KindNoQualificationsFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := replying(reply{text: `{}`})
			_, err := New(caller, testOptions()).AnalyzeGaps(context.Background(), GapRequest{
				ResumeText:  "Jane Doe",
				JobsPayload: tt.payload,
			})

			f := requireFailure(t, err, tt.kind)
			assert.Equal(t, steps.Preparing, f.Stage)
			assert.Zero(t, caller.calls(), "gateway must not be called")
		})
	}
}

func TestAnalyzeGaps_ResumeSources(t *testing.T) {
	tests := []struct {
		name   string
		req    GapRequest
		want   string
		failed bool
	}{
		{name: "record", req: GapRequest{Resume: &types.ResumeRecord{Name: "From Record"}}, want: "Name: From Record"},
		{name: "text", req: GapRequest{ResumeText: "From   Text"}, want: "From Text"},
		{name: "document", req: GapRequest{Document: &Document{Text: "From Document"}}, want: "From Document"},
		{name: "record wins", req: GapRequest{Resume: &types.ResumeRecord{Name: "Winner"}, ResumeText: "Loser"}, want: "Name: Winner"},
		{
			name: "empty record falls through to text",
			req:  GapRequest{Resume: types.NewResumeRecord(), ResumeText: "Jane Doe, Go developer"},
			want: "Jane Doe, Go developer",
		},
		{
			name: "blank text falls through to document",
			req:  GapRequest{Resume: types.NewResumeRecord(), ResumeText: "  \n ", Document: &Document{Text: "From Document"}},
			want: "From Document",
		},
		{name: "nothing", req: GapRequest{}, failed: true},
		{name: "empty record", req: GapRequest{Resume: types.NewResumeRecord()}, failed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caller := replying(reply{text: `{}`})
			tt.req.JobsPayload = jobsPayload()

			_, err := New(caller, testOptions()).AnalyzeGaps(context.Background(), tt.req)
			if tt.failed {
				f := requireFailure(t, err, KindNoExtractableText)
				assert.Equal(t, steps.Flattening, f.Stage)
				assert.Zero(t, caller.calls())
				return
			}
			require.NoError(t, err)
			assert.Contains(t, caller.requests[0].Prompt, tt.want)
		})
	}
}

func TestAnalyzeGaps_MalformedResponse(t *testing.T) {
	caller := replying(reply{text: "Sorry, I cannot help with that."})
	_, err := New(caller, testOptions()).AnalyzeGaps(context.Background(), GapRequest{
		ResumeText:  "Jane Doe",
		JobsPayload: jobsPayload(),
	})

	f := requireFailure(t, err, KindMalformedResponse)
	assert.Equal(t, "Sorry, I cannot help with that.", f.RawText)
}
