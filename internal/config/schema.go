package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaURL is the $schema value written into generated config files.
const SchemaURL = "https://ledgerlens.dev/ledgerlens.json"

// Schema returns the JSON schema of [Config].
func Schema() ([]byte, error) {
	reflector := new(jsonschema.Reflector)
	schema := reflector.Reflect(&Config{})
	schema.ID = SchemaURL
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
