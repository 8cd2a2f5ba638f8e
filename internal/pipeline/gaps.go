package pipeline

import (
	"context"

	"github.com/jonathan/resume-analyzer/internal/ingestion"
	"github.com/jonathan/resume-analyzer/internal/jobs"
	"github.com/jonathan/resume-analyzer/internal/pipeline/steps"
	"github.com/jonathan/resume-analyzer/internal/prompts"
	"github.com/jonathan/resume-analyzer/internal/schemas"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// GapRequest is the input of AnalyzeGaps. The résumé comes from the first of
// Resume, ResumeText and Document that yields text. JobsPayload may have any shape that
// jobs.Normalize accepts.
type GapRequest struct {
	Resume      *types.ResumeRecord
	ResumeText  string
	Document    *Document
	JobsPayload any
}

// AnalyzeGaps compares a résumé against the qualifications aggregated from a
// job-search payload
func (o *Orchestrator) AnalyzeGaps(ctx context.Context, req GapRequest) (*types.GapAnalysisRecord, error) {
	r, ctx := o.start(ctx, "analyze_gaps")

	jobList, kind := jobs.NormalizeShape(req.JobsPayload)
	if kind == jobs.KindUnknown {
		return nil, r.failKind(KindMalformedUpstreamPayload, "jobs payload has no recognisable shape", nil)
	}
	quals := jobs.AggregateQualifications(jobList)
	r.log.Debug().
		Str("payload_shape", kind.String()).
		Int("jobs", len(jobList)).
		Int("qualifications", quals.Len()).
		Msg("aggregated job qualifications")
	if quals.Len() == 0 {
		return nil, r.failKind(KindNoQualificationsFound, "no qualifications found in jobs payload", nil)
	}

	r.to(steps.Flattening)
	text, err := req.resumeText()
	if err != nil {
		return nil, r.fail(err)
	}

	r.to(steps.Prompting)
	prompt := prompts.BuildGapAnalysisPrompt(text, quals.Items())
	if quals.Len() > prompts.MaxQualifications {
		r.log.Debug().Int("dropped", quals.Len()-prompts.MaxQualifications).Msg("qualifications over prompt cap")
	}

	r.to(steps.CallingLLM)
	raw, err := o.call(ctx, r, o.opts.Gap, prompt)
	if err != nil {
		return nil, r.fail(err)
	}

	r.to(steps.Parsing)
	parsed := o.parse(r, raw)

	r.to(steps.Coercing)
	obj, ok := parsed.Object()
	if !ok || parsed.IsFallback() {
		return nil, r.malformed(raw)
	}
	record := CoerceGapAnalysis(obj)
	if o.opts.ValidateSchema {
		if err := schemas.ValidateGapAnalysis(record); err != nil {
			return nil, r.failKind(KindSchemaViolation, "coerced gap analysis does not match schema", err)
		}
	}

	r.done()
	return record, nil
}

// resumeText tries Resume, ResumeText and Document in that order; a source
// that yields no text falls through to the next one
func (g GapRequest) resumeText() (string, error) {
	if g.Resume != nil {
		if text := ResumeText(g.Resume); text != "" {
			return text, nil
		}
	}
	if g.ResumeText != "" {
		if text := ingestion.CleanText(g.ResumeText); text != "" {
			return text, nil
		}
	}
	if g.Document != nil {
		return g.Document.Flatten()
	}
	return "", &ingestion.NoExtractableTextError{Format: ingestion.FormatText}
}
