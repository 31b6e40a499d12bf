package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"setup-lint/internal/logger"
)

// defaultProfile is the profile applied when no --config file is given.
//
//go:embed defaults/profile.yaml
var defaultProfile []byte

//go:embed defaults/profile.schema.json
var profileSchema []byte

const profileSchemaURL = "https://setup-lint.invalid/profile.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// LoadProfile returns the profile stored at path, or the built-in default
// profile when path is empty. The file replaces the default wholesale; there
// is no per-field fallback.
func LoadProfile(path string) (*Profile, error) {
	if path == "" {
		logger.Debug("[DEBUG] Using built-in profile\n")
		return ParseProfile(defaultProfile)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded profile from %s\n", path)

	p, err := ParseProfile(raw)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// ParseProfile decodes and validates a profile document.
func ParseProfile(data []byte) (*Profile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	// ----- Validate against the JSON Schema -----
	asJSON, err := nodeToJSON(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert profile to JSON: %w", err)
	}
	if err := validateProfile(asJSON); err != nil {
		return nil, err
	}

	// ----- Decode into the typed layout -----
	var raw rawProfile
	if err := doc.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	p := &Profile{
		Name:         raw.Name,
		Dependencies: make(map[string][]string, len(raw.PackageManagers)),
		Blocks:       make([]Block, 0, len(raw.Blocks)),
	}
	for name, m := range raw.PackageManagers {
		p.Dependencies[name] = m.Dependencies
	}

	seen := make(map[string]bool, len(raw.Blocks))
	for _, b := range raw.Blocks {
		if seen[b.Key] {
			return nil, fmt.Errorf("block %q is defined more than once", b.Key)
		}
		seen[b.Key] = true

		value, err := nodeToJSON(&b.Value)
		if err != nil {
			return nil, fmt.Errorf("block %q: %w", b.Key, err)
		}
		p.Blocks = append(p.Blocks, Block{Key: b.Key, Value: value})
	}

	return p, nil
}

// validateProfile checks a profile, already rendered as JSON, against the
// embedded schema.
func validateProfile(doc []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return fmt.Errorf("failed to read profile for validation: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(profileSchema))
		if err != nil {
			schemaErr = fmt.Errorf("failed to read profile schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(profileSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("failed to register profile schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(profileSchemaURL)
	})
	return compiledSchema, schemaErr
}
