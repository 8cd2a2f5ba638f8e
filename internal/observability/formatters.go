// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/jobs"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
	"github.com/jonathan/resume-analyzer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to n runes, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes a labelled bullet list capped at limit items
func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of an extracted résumé.
func (p *Printer) PrintResume(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", record.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", record.Email))
	if record.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", record.Location))
	}
	sb.WriteString("\n")

	if len(record.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n\n", strings.Join(record.Skills, ", ")))
	}

	experience := make([]string, 0, len(record.Experience))
	for _, e := range record.Experience {
		line := e.Title
		if e.Company != "" {
			line += " @ " + e.Company
		}
		experience = append(experience, line)
	}
	writeList(&sb, "Experience", experience, maxItemsToShow)

	education := make([]string, 0, len(record.Education))
	for _, e := range record.Education {
		line := strings.TrimSpace(e.Degree + " " + e.Field)
		if e.School != "" {
			line += ", " + e.School
		}
		education = append(education, line)
	}
	writeList(&sb, "Education", education, 3)
	writeList(&sb, "Certifications", record.Certifications, 3)

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapAnalysis outputs every non-empty gap category.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintGapAnalysis(record *types.GapAnalysisRecord) {
	if record == nil {
		return
	}
	if record.Total() == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ NO GAPS FOUND")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for _, key := range types.GapCategories {
		label := strings.ReplaceAll(key, "_", " ")
		writeList(&sb, strings.ToUpper(label[:1])+label[1:], *record.Category(key), types.MaxGapItems)
	}
	p.printBox("QUALIFICATION GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobSummaries outputs the digests of the jobs a gap analysis was run against.
func (p *Printer) PrintJobSummaries(summaries []jobs.Summary, total int) {
	if len(summaries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Jobs in payload: %d\n\n", total))
	for i, s := range summaries {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, s.Title))
		sb.WriteString(fmt.Sprintf("    %s\n", s.Company))
		if quals, ok := s.Highlights["Qualifications"].([]any); ok {
			sb.WriteString(fmt.Sprintf("    %d listed qualifications\n", len(quals)))
		}
		if i < len(summaries)-1 {
			sb.WriteString("\n")
		}
	}
	if total > len(summaries) {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs", total-len(summaries)))
	}

	p.printBox("JOB POSTINGS", sb.String())
}

// PrintQualifications outputs the aggregated qualifications sent to the model.
func (p *Printer) PrintQualifications(items []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Unique qualifications: %d\n\n", len(items)))
	writeList(&sb, "First", items, maxItemsToShow)
	p.printBox("AGGREGATED QUALIFICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTransition writes one line per request state change. It matches
// pipeline.TransitionCallback.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintTransition(t pipeline.Transition) {
	id := t.RequestID
	if len(id) > 8 {
		id = id[:8]
	}
	line := fmt.Sprintf("[%s] %-14s %s → %s (%dms)", id, t.Task, t.From, t.To, t.Elapsed.Milliseconds())
	if t.Err != nil {
		line += "  " + t.Err.Error()
	}
	fmt.Fprintln(p.out, line)
}

// PrintBatch outputs one line per document of a batch run.
func (p *Printer) PrintBatch(results []pipeline.BatchResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			sb.WriteString(fmt.Sprintf("✗ %s: %s\n", res.Name, pipeline.KindOf(res.Err)))
			continue
		}
		sb.WriteString(fmt.Sprintf("✓ %s: %s\n", res.Name, res.Record.Name))
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d succeeded", len(results)-failed, len(results)))

	p.printBox("BATCH RESULTS", sb.String())
}
