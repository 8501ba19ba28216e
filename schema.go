package cyls

import (
	"context"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// SchemaIntrospector is implemented by databases that can produce a schema
// snapshot for completion.
type SchemaIntrospector interface {
	// IntrospectSchema extracts labels, relationship types, callables and
	// catalog names from a live database.
	IntrospectSchema(ctx context.Context) (*Schema, error)
}

// Schema is a read-only snapshot of the names completion can offer. Any field
// may be empty; the completion engine never mutates a snapshot, so one
// snapshot may be shared by reference across concurrent requests.
type Schema struct {
	Labels            []string             `yaml:"labels,omitempty"`
	RelationshipTypes []string             `yaml:"relationshipTypes,omitempty"`
	Procedures        map[string]Signature `yaml:"procedures,omitempty"`
	Functions         map[string]Signature `yaml:"functions,omitempty"`
	Databases         []string             `yaml:"databases,omitempty"`
	Aliases           []string             `yaml:"aliases,omitempty"`
}

// Signature describes a callable's shape. Completion only needs the name, but
// hover and signature help consume the rest.
type Signature struct {
	Args        []string `yaml:"args,omitempty"`
	Returns     []string `yaml:"returns,omitempty"`
	Description string   `yaml:"description,omitempty"`
}

// ProcedureNames returns the procedure names in sorted order.
func (s *Schema) ProcedureNames() []string {
	return sortedKeys(s.Procedures)
}

// FunctionNames returns the function names in sorted order.
func (s *Schema) FunctionNames() []string {
	return sortedKeys(s.Functions)
}

func sortedKeys(m map[string]Signature) []string {
	if len(m) == 0 {
		return nil
	}

	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// LoadSchema reads a schema snapshot from a YAML file.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseSchema(data)
}

// ParseSchema parses a schema snapshot from YAML.
func ParseSchema(data []byte) (*Schema, error) {
	var schema Schema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, err
	}

	return &schema, nil
}
