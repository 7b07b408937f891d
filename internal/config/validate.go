package config

import (
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ValidateWithCue validates a YAML configuration file against a CUE
// schema file before it is decoded.
func ValidateWithCue(configFile, cueFile string) error {
	schemaBytes, err := os.ReadFile(cueFile)
	if err != nil {
		return fmt.Errorf("cannot read CUE schema: %w", err)
	}
	yamlBytes, err := os.ReadFile(configFile)
	if err != nil {
		return fmt.Errorf("cannot read YAML config: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaBytes)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("invalid CUE schema: %w", err)
	}
	if err := cueyaml.Validate(yamlBytes, schema); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}
