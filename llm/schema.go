package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor reflects a JSON schema from a result struct for use as a
// request-side structured-output constraint.
func SchemaFor(v interface{}) (json.RawMessage, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		Anonymous:      true,
	}
	schema := reflector.Reflect(v)
	schema.Version = "" // the API rejects the $schema marker

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return raw, nil
}
