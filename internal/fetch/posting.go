package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// JobPosting fetches a job board page and turns it into a job record that the
// qualification aggregator can scan.
func JobPosting(ctx context.Context, urlStr string, opts *Options) (types.JobRecord, error) {
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	return ParseJobPosting(result.HTML(), urlStr)
}

// ParseJobPosting builds a job record from a posting page. The title is the
// first h1, falling back to the document title; the description is the main
// text under the platform's content selectors.
func ParseJobPosting(html, urlStr string) (types.JobRecord, error) {
	platform := DetectPlatform(urlStr)
	description, err := ExtractMainText(html, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "unreadable job posting", Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "unreadable job posting", Cause: err}
	}
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	return types.JobRecord{
		"job_title":       title,
		"job_description": description,
		"job_apply_link":  urlStr,
		"job_publisher":   string(platform),
	}, nil
}
