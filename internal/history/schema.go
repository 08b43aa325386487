package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// historySchema describes the persisted history document: a JSON array of
// result objects. Stored data that does not conform is discarded on load.
var historySchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"date":  map[string]any{"type": "string"},
			"type":  map[string]any{"type": "string", "enum": []any{"REFLEX", "CALCULATION", "MEMORY", "RIDDLE"}},
			"score": map[string]any{"type": "integer", "minimum": 0},
			"details": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"date", "type", "score"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// validate checks raw against the history schema.
func validate(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, not Go maps with
		// arbitrary types; round-trip through encoding/json.
		defBytes, err := json.Marshal(historySchema)
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
		const url = "schema://history.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = err
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}
