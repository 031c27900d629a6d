package plugin

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://webie.local/schema/plugin-config.json"

const schemaTemplate = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["pluginName"],
  "properties": {
    "pluginName": {"type": "string"},
    "adminRoutes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["title", "url", "iconName"],
        "properties": {
          "title": {"type": "string"},
          "url": {"type": "string"},
          "iconName": {"enum": %s}
        }
      }
    },
    "dependencies": {
      "type": "array",
      "items": {"type": "string"},
      "uniqueItems": true
    }
  }
}`

// Schema validates plugin configs. The icon enum is fixed when the schema
// is built.
type Schema struct {
	compiled *jsonschema.Schema
	icons    []string
}

// NewSchema compiles the plugin config schema for the given icon names.
func NewSchema(iconNames []string) (*Schema, error) {
	if len(iconNames) == 0 {
		return nil, errors.New("plugin: schema needs at least one icon name")
	}
	enum, err := json.Marshal(iconNames)
	if err != nil {
		return nil, fmt.Errorf("plugin: encode icon names: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(fmt.Sprintf(schemaTemplate, enum)))
	if err != nil {
		return nil, fmt.Errorf("plugin: parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("plugin: add schema: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("plugin: compile schema: %w", err)
	}
	names := make([]string, len(iconNames))
	copy(names, iconNames)
	return &Schema{compiled: compiled, icons: names}, nil
}

// MustSchema is NewSchema that panics on error. Use at startup only.
func MustSchema(iconNames []string) *Schema {
	s, err := NewSchema(iconNames)
	if err != nil {
		panic(err)
	}
	return s
}

// Icons returns the icon names the schema accepts.
func (s *Schema) Icons() []string {
	out := make([]string, len(s.icons))
	copy(out, s.icons)
	return out
}

// Validate checks cfg against the schema.
func (s *Schema) Validate(cfg Config) error {
	return s.ValidateDocument(cfg)
}

// ValidateDocument checks a raw config document, such as a decoded
// manifest, against the schema. Documents that have no JSON form (for
// example mappings with non-string keys) are rejected.
func (s *Schema) ValidateDocument(doc any) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return s.compiled.Validate(inst)
}

// DecodeDocument converts a document that passed ValidateDocument into a
// Config. Unknown keys are ignored.
func DecodeDocument(doc any) (Config, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return Config{}, fmt.Errorf("encode config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
