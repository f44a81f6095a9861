package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const quizSchemaURL = "schema://quiz-payload.json"

// quizSchema describes the GET /quiz body. Question type is deliberately left
// open: unknown types render as free text.
var quizSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"quiz_id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":     map[string]any{"type": []any{"string", "number"}},
					"prompt": map[string]any{"type": "string"},
					"type":   map[string]any{"type": "string"},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"keywords": map[string]any{"type": "array"},
					"stats":    map[string]any{"type": []any{"object", "null"}},
				},
				"required": []any{"id", "prompt"},
			},
		},
		"keywords": map[string]any{
			"type": []any{"array", "null"},
		},
	},
	"required": []any{"quiz_id", "questions"},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ErrInvalidPayload indicates the server's quiz body does not match the
// expected shape.
type ErrInvalidPayload struct {
	Err error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid quiz payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// ValidateQuizPayload checks a GET /quiz body against the quiz schema.
func ValidateQuizPayload(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidPayload{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile quiz schema: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return &ErrInvalidPayload{Err: err}
	}
	return nil
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		defBytes, err := json.Marshal(quizSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = err
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(quizSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(quizSchemaURL)
	})
	return compiledSchema, compileErr
}
