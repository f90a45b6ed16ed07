// Package schema generates JSON schemas for the plugin's configuration, so
// hosts and editors can check a user's settings before the plugin starts.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/nu-plugin-lua/domain/errors"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, &errors.SchemaError{Err: fmt.Errorf("failed to marshal schema: %w", err), Type: fmt.Sprintf("%T", v)}
	}

	return jsonBytes, nil
}
