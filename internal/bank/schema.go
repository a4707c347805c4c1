package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const fileSchemaURL = "schema://quizz/question-bank.json"

// fileSchema is the JSON schema every bank file must satisfy before the
// structural checks in validateQuestions run.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":     map[string]any{"type": "integer"},
					"prompt": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": MinOptions,
						"items":    map[string]any{"type": "string"},
					},
					"correct":     map[string]any{"type": "integer", "minimum": 0},
					"explanation": map[string]any{"type": "string"},
				},
				"required":             []any{"id", "prompt", "options", "correct"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"questions"},
	"additionalProperties": false,
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects parsed JSON values, not Go literals with int fields.
	def, err := jsonValue(fileSchema)
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(fileSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(fileSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return compiled, nil
})

// validateDocument checks a decoded bank document against fileSchema.
func validateDocument(doc any) error {
	// YAML decoding produces ints and typed maps; the validator wants the
	// shapes encoding/json produces.
	parsed, err := jsonValue(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("bank schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// jsonValue converts v into the generic representation produced by
// encoding/json (map[string]any, []any, float64, string, bool, nil).
func jsonValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
