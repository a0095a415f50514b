package workflow

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/flowlint/flowlint/pkg/logger"
)

var schemaLog = logger.New("workflow:schema")

//go:embed workflow.schema.json
var documentSchemaJSON string

const documentSchemaResource = "https://flowlint.dev/workflow.schema.json"

// compileDocumentSchema compiles the embedded envelope schema exactly once
// per process.
var compileDocumentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	schemaDoc, err := jsonschema.UnmarshalJSON(strings.NewReader(documentSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to decode embedded document schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(documentSchemaResource, schemaDoc); err != nil {
		return nil, fmt.Errorf("failed to register document schema: %w", err)
	}
	schema, err := compiler.Compile(documentSchemaResource)
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}
	return schema, nil
})

// ValidateEnvelope checks the generic JSON value of a document against the
// embedded envelope schema and returns one human-readable violation per
// schema failure. An empty slice means the envelope is well shaped. The error
// return is reserved for schema compilation problems, not for document
// violations.
func ValidateEnvelope(value any) ([]string, error) {
	schema, err := compileDocumentSchema()
	if err != nil {
		return nil, err
	}

	err = schema.Validate(value)
	if err == nil {
		return nil, nil
	}

	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}, nil
	}

	violations := splitViolations(validationErr.Error())
	schemaLog.Printf("Envelope validation failed: violations=%d", len(violations))
	return violations, nil
}

// splitViolations breaks the multi-line validation error into per-violation
// lines. The first line is a header naming the schema; the remaining lines
// each describe one failing instance location. If the text does not follow
// that layout the whole message becomes a single violation.
func splitViolations(text string) []string {
	var violations []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(line, "- "); ok {
			violations = append(violations, after)
		}
	}
	if len(violations) == 0 {
		return []string{text}
	}
	return violations
}
