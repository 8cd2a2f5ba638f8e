package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// BatchResult is the outcome of one document in ExtractBatch
type BatchResult struct {
	Index  int
	Name   string
	Record *types.ResumeRecord
	Err    error
}

// ExtractBatch extracts every document with at most concurrency requests in
// flight. A failed document does not cancel the others; results keep input
// order.
func (o *Orchestrator) ExtractBatch(ctx context.Context, docs []Document, mode Mode, concurrency int) []BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]BatchResult, len(docs))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			record, err := o.ExtractResume(ctx, doc, mode)
			results[i] = BatchResult{Index: i, Name: doc.Name, Record: record, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	logging.Ctx(ctx).Info().Int("documents", len(docs)).Int("failed", failed).Msg("batch extraction finished")
	return results
}
