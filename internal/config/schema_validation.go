package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/stratcalc-config.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/githubnext/stratcalc/schemas/stratcalc-config.schema.json"

// validateJSONSchema validates the configuration, converted to JSON, against
// the embedded schema
func validateJSONSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	var configObj interface{}
	if err := json.Unmarshal(data, &configObj); err != nil {
		return fmt.Errorf("failed to parse configuration JSON: %w", err)
	}

	if err := schema.Validate(configObj); err != nil {
		return formatSchemaError(err)
	}

	return nil
}

// formatSchemaError flattens a schema validation error into one line per cause
func formatSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("configuration validation error:")
	formatValidationErrorRecursive(ve, &sb, 1)
	return errors.New(sb.String())
}

func formatValidationErrorRecursive(ve *jsonschema.ValidationError, sb *strings.Builder, depth int) {
	// Leaf causes carry the useful message; intermediate nodes only repeat it
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			formatValidationErrorRecursive(cause, sb, depth)
		}
		return
	}

	location := ve.InstanceLocation
	if location == "" {
		location = "<root>"
	}
	fmt.Fprintf(sb, "\n%s%s: %s", strings.Repeat("  ", depth), location, ve.Message)
}
