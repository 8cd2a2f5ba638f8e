package jobs

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-analyzer/internal/logging"
	"github.com/jonathan/resume-analyzer/internal/types"
)

// maxDecodes bounds how many JSON-text layers Normalize will unwrap
const maxDecodes = 2

// Normalize returns the job records contained in payload. It never fails:
// anything it cannot interpret yields an empty list.
//
// Dispatch order: list, mapping whose "data" is a list, mapping whose "data"
// is JSON text, top-level JSON text, single job object, anything else.
// Decoded JSON text is re-dispatched to the non-string branches only, so a
// string that decodes to another string stops there.
func Normalize(payload any) []types.JobRecord {
	jobs, _ := NormalizeShape(payload)
	return jobs
}

// NormalizeShape is Normalize that also reports the variant of the
// top-level payload.
func NormalizeShape(payload any) ([]types.JobRecord, Kind) {
	shape := Classify(payload)
	return normalize(shape, 0), shape.Kind
}

func normalize(shape Shape, decodes int) []types.JobRecord {
	log := logging.L()

	switch shape.Kind {
	case KindList:
		return fromList(shape.List)

	case KindMappingWithData:
		if list, ok := shape.Data.([]any); ok {
			return fromList(list)
		}
		text, _ := shape.Data.(string)
		return decodeAndDispatch(text, decodes)

	case KindJSONString:
		return decodeAndDispatch(shape.Text, decodes)

	case KindSingleObject:
		return []types.JobRecord{types.JobRecord(shape.Object)}
	}

	log.Debug().Msg("jobs payload has no recognisable shape")
	return []types.JobRecord{}
}

func decodeAndDispatch(text string, decodes int) []types.JobRecord {
	log := logging.L()
	if decodes >= maxDecodes {
		log.Warn().Int("depth", decodes).Msg("jobs payload nested too deeply")
		return []types.JobRecord{}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []types.JobRecord{}
	}
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		log.Warn().Err(err).Str("preview", logging.Preview(text, 80)).Msg("jobs payload is not valid JSON")
		return []types.JobRecord{}
	}

	shape := Classify(decoded)
	if shape.Kind == KindJSONString {
		log.Warn().Msg("jobs payload decodes to a JSON string")
		return []types.JobRecord{}
	}
	return normalize(shape, decodes+1)
}

// fromList keeps the object entries of a list in order
func fromList(list []any) []types.JobRecord {
	jobs := make([]types.JobRecord, 0, len(list))
	skipped := 0
	for _, item := range list {
		switch job := item.(type) {
		case map[string]any:
			jobs = append(jobs, types.JobRecord(job))
		case types.JobRecord:
			jobs = append(jobs, job)
		default:
			skipped++
		}
	}
	if skipped > 0 {
		logging.L().Debug().Int("skipped", skipped).Msg("dropped non-object job entries")
	}
	return jobs
}
