package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/rules.schema.json
var rulesSchema []byte

var rulesSchemaLoader = gojsonschema.NewBytesLoader(rulesSchema)

// RulesSchema returns the JSON schema rules documents are checked against
func RulesSchema() []byte {
	return append([]byte(nil), rulesSchema...)
}

// ValidateSchema checks a YAML or JSON rules document against the embedded schema
func ValidateSchema(data []byte) error {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("%w: document is empty", ErrInvalidDocument)
	}

	result, err := gojsonschema.Validate(rulesSchemaLoader, gojsonschema.NewGoLoader(jsonCompatible(raw)))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(errs, "; "))
	}
	return nil
}

// jsonCompatible rewrites YAML maps with non-string keys (e.g. an unquoted skip_to: {false: x})
// into string-keyed maps
func jsonCompatible(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = jsonCompatible(val)
		}
		return out
	}
	return v
}
