package prefabs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const characterSchemaURL = "https://github.com/milk9111/fpscontroller/schema/character.schema.json"

//go:embed schema/character.schema.json
var characterSchemaJSON string

var (
	schemaOnce      sync.Once
	characterSchema *jsonschema.Schema
	schemaErr       error
)

func compiledCharacterSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		characterSchema, schemaErr = jsonschema.CompileString(characterSchemaURL, characterSchemaJSON)
	})
	return characterSchema, schemaErr
}

// ValidateCharacter checks a YAML character template against the embedded
// JSON schema.
func ValidateCharacter(data []byte) error {
	schema, err := compiledCharacterSchema()
	if err != nil {
		return fmt.Errorf("prefabs: compile schema: %w", err)
	}
	doc, err := yamlToJSONValue(data)
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}

// yamlToJSONValue re-decodes YAML through encoding/json so the validator sees
// the value types it expects.
func yamlToJSONValue(data []byte) (any, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("prefabs: parse yaml: %w", err)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("prefabs: convert yaml: %w", err)
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("prefabs: convert yaml: %w", err)
	}
	return out, nil
}
