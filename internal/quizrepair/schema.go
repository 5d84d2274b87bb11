package quizrepair

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var optionalString = map[string]any{"type": []any{"string", "null"}}

var optionalStrings = map[string]any{
	"type":  []any{"array", "null"},
	"items": map[string]any{"type": "string"},
}

// quizSchema is the minimum shape a generated quiz must have. Options may be
// strings or bare numbers; both are normalised to strings when decoded.
// correctAnswer may be an integer or a quoted integer.
var quizSchema = map[string]any{
	"type":     "object",
	"required": []any{"questions"},
	"properties": map[string]any{
		"title":       optionalString,
		"description": optionalString,
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"question", "options", "correctAnswer"},
				"properties": map[string]any{
					"question": map[string]any{"type": "string"},
					"options": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": []any{"string", "number"}},
					},
					"correctAnswer": map[string]any{
						"anyOf": []any{
							map[string]any{"type": "integer"},
							map[string]any{"type": "string", "pattern": `^-?[0-9]+$`},
						},
					},
					"explanation": optionalString,
				},
			},
		},
	},
}

var curriculumSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "lessons"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": optionalString,
		"lessons": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title", "content"},
				"properties": map[string]any{
					"title":      map[string]any{"type": "string"},
					"content":    map[string]any{"type": "string"},
					"objectives": optionalStrings,
					"activities": optionalStrings,
					"duration":   optionalString,
				},
			},
		},
	},
}

var (
	compileOnce        sync.Once
	compiledQuiz       *jsonschema.Schema
	compiledCurriculum *jsonschema.Schema
	compileErr         error
)

func compileSchemas() {
	compileOnce.Do(func() {
		compiledQuiz, compileErr = compile("quiz", quizSchema)
		if compileErr != nil {
			return
		}
		compiledCurriculum, compileErr = compile("curriculum", curriculumSchema)
	})
}

func compile(name string, def map[string]any) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	return c.Compile(url)
}

// validateDocument parses raw JSON and checks it against a compiled schema.
func validateDocument(compiled *jsonschema.Schema, raw string) error {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return err
	}
	return compiled.Validate(doc)
}

func quizValidator() (*jsonschema.Schema, error) {
	compileSchemas()
	return compiledQuiz, compileErr
}

func curriculumValidator() (*jsonschema.Schema, error) {
	compileSchemas()
	return compiledCurriculum, compileErr
}
