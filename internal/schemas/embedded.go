package schemas

import (
	"sync"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/resume-analyzer/schemas"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// Validate checks a Go value (marshaled as JSON) against one of the embedded
// schemas, e.g. schemafiles.ResumeRecord.
func Validate(schemaName string, value any) error {
	schema, err := load(schemaName)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "document could not be loaded", Cause: err}
	}
	return newValidationError(result)
}

// ValidateResumeRecord validates against resume_record.schema.json
func ValidateResumeRecord(value any) error {
	return Validate(schemafiles.ResumeRecord, value)
}

// ValidateGapAnalysis validates against gap_analysis.schema.json
func ValidateGapAnalysis(value any) error {
	return Validate(schemafiles.GapAnalysis, value)
}

func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}
	data, err := schemafiles.Files.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema not found", Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = schema
	return schema, nil
}
