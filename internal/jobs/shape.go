// Package jobs collapses job-search payloads of unknown shape into canonical
// job records and aggregates qualification strings from them.
package jobs

import (
	"encoding/json"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// Kind is the variant of a classified payload
type Kind int

// Payload variants, in dispatch order
const (
	KindUnknown Kind = iota
	KindList
	KindMappingWithData
	KindJSONString
	KindSingleObject
)

func (k Kind) String() string {
	switch k {
	case KindList:
		return "list"
	case KindMappingWithData:
		return "mapping_with_data"
	case KindJSONString:
		return "json_string"
	case KindSingleObject:
		return "single_object"
	default:
		return "unknown"
	}
}

// jobIndicators are the fields that mark a bare mapping as one job posting
var jobIndicators = []string{
	"job_title", "job_description", "employer_name", "job_highlights", "title", "description",
}

// Shape is the result of classifying a payload. Exactly the field matching
// Kind is set.
type Shape struct {
	Kind Kind
	// List holds the entries of a KindList payload
	List []any
	// Data holds the value under "data" of a KindMappingWithData payload; it
	// is either a []any or a string.
	Data any
	// Text holds the JSON text of a KindJSONString payload
	Text string
	// Object holds a KindSingleObject payload
	Object map[string]any
}

// Classify determines the variant of payload in a single step.
// []byte and json.RawMessage are treated as JSON text.
func Classify(payload any) Shape {
	switch v := payload.(type) {
	case nil:
		return Shape{Kind: KindUnknown}
	case []any:
		return Shape{Kind: KindList, List: v}
	case []types.JobRecord:
		list := make([]any, len(v))
		for i, job := range v {
			list[i] = map[string]any(job)
		}
		return Shape{Kind: KindList, List: list}
	case []map[string]any:
		list := make([]any, len(v))
		for i, job := range v {
			list[i] = job
		}
		return Shape{Kind: KindList, List: list}
	case string:
		return Shape{Kind: KindJSONString, Text: v}
	case json.RawMessage:
		return Shape{Kind: KindJSONString, Text: string(v)}
	case []byte:
		return Shape{Kind: KindJSONString, Text: string(v)}
	case types.JobRecord:
		return classifyMapping(v)
	case map[string]any:
		return classifyMapping(v)
	}
	return Shape{Kind: KindUnknown}
}

func classifyMapping(m map[string]any) Shape {
	if data, ok := m["data"]; ok {
		switch data.(type) {
		case []any, string:
			return Shape{Kind: KindMappingWithData, Data: data}
		}
	}
	for _, key := range jobIndicators {
		if _, ok := m[key]; ok {
			return Shape{Kind: KindSingleObject, Object: m}
		}
	}
	return Shape{Kind: KindUnknown}
}
