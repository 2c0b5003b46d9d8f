package main

import (
	"fmt"
	"go/token"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind says whether a key takes a value.
type ValueKind string

const (
	ValueOptional ValueKind = "optional"
	ValueRequired ValueKind = "required"
	ValueNone     ValueKind = "none"
)

// RawSchema is the YAML description of a driver's accepted keys.
type RawSchema struct {
	Package string      `yaml:"package"`
	Name    string      `yaml:"name"`
	Keys    []RawKeyDef `yaml:"keys"`
}

// RawKeyDef describes one key.
type RawKeyDef struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description,omitempty"`
	Required    bool      `yaml:"required,omitempty"`
	Value       ValueKind `yaml:"value,omitempty"`
}

// ParseSchema parses a schema from YAML data.
func ParseSchema(data []byte) (*RawSchema, error) {
	var s RawSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	for i := range s.Keys {
		if s.Keys[i].Value == "" {
			s.Keys[i].Value = ValueOptional
		}
	}
	if s.Name == "" && nullName(data) {
		return nil, fmt.Errorf("schema name is null, quote it as %q", "null")
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// nullName reports whether the schema spells its name as a YAML null,
// which drivers such as net_null hit when the value is left unquoted.
func nullName(data []byte) bool {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	v, ok := raw["name"]
	return ok && v == nil
}

// LoadSchema reads and parses a schema file.
func LoadSchema(path string) (*RawSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSchema(data)
}

// HasValueChecks reports whether any key constrains value presence.
func (s *RawSchema) HasValueChecks() bool {
	for _, k := range s.Keys {
		if k.Value != ValueOptional {
			return true
		}
	}
	return false
}

func (s *RawSchema) validate() error {
	if !token.IsIdentifier(s.Package) || token.IsKeyword(s.Package) {
		return fmt.Errorf("invalid package name %q", s.Package)
	}
	if goTitleCase(s.Name) == "" {
		return fmt.Errorf("invalid schema name %q", s.Name)
	}
	if len(s.Keys) == 0 {
		return fmt.Errorf("schema %s: no keys", s.Name)
	}

	seen := make(map[string]bool, len(s.Keys))
	idents := make(map[string]string, len(s.Keys))
	for _, k := range s.Keys {
		if k.Name == "" || strings.ContainsAny(k.Name, ",=") {
			return fmt.Errorf("invalid key name %q", k.Name)
		}
		if seen[k.Name] {
			return fmt.Errorf("duplicate key %q", k.Name)
		}
		seen[k.Name] = true

		id := goTitleCase(k.Name)
		if id == "" {
			return fmt.Errorf("key %q has no identifier characters", k.Name)
		}
		if other, ok := idents[id]; ok {
			return fmt.Errorf("keys %q and %q both map to %s", other, k.Name, id)
		}
		idents[id] = k.Name

		switch k.Value {
		case ValueOptional, ValueRequired, ValueNone:
		default:
			return fmt.Errorf("key %q: unknown value kind %q", k.Name, k.Value)
		}
	}
	return nil
}

// goTitleCase converts "rx_queue-size" to "RxQueueSize". Characters that
// cannot appear in an identifier separate words.
func goTitleCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !isLetter && !isDigit {
			upper = true
			continue
		}
		if b.Len() == 0 && isDigit {
			b.WriteByte('K')
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		b.WriteRune(r)
		upper = false
	}
	return b.String()
}
