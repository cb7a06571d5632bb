package fs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/keyloom/pkg/core"
)

// DefaultIndent matches the indentation the documents are usually written with.
const DefaultIndent = 4

// ErrNotFlat is returned when the top level of a document is not an object.
var ErrNotFlat = errors.New("top level is not a key-value object")

// Serializer defines how to read and write a specific file format.
// Documents are flat: Parse returns the top-level members, nested values
// are kept as opaque values.
type Serializer interface {
	// Parse reads from r and returns the top-level entries.
	Parse(r io.Reader) (core.Entries, error)
	// Serialize converts the entries to bytes.
	Serialize(entries core.Entries) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers(strict bool, indent int) map[string]Serializer {
	if indent <= 0 {
		indent = DefaultIndent
	}
	y := NewYAMLSerializer(indent)
	return map[string]Serializer{
		".json": NewJSONSerializer(strict, indent),
		".yaml": y,
		".yml":  y,
		".toml": NewTOMLSerializer(indent),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON files.
type JSONSerializer struct {
	// Strict enables strict number parsing (as json.Number) so numbers are
	// written back exactly as they were read.
	Strict bool
	Indent int
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool, indent int) *JSONSerializer {
	return &JSONSerializer{Strict: strict, Indent: indent}
}

func (s *JSONSerializer) Parse(r io.Reader) (core.Entries, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.New("invalid json: trailing data after top-level value")
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w (got %s)", ErrNotFlat, kindOf(payload))
	}
	return core.Entries(obj), nil
}

func (s *JSONSerializer) Serialize(entries core.Entries) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", strings.Repeat(" ", s.Indent))
	if err := encoder.Encode(map[string]any(entries)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML files.
type YAMLSerializer struct {
	Indent int
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(indent int) *YAMLSerializer {
	return &YAMLSerializer{Indent: indent}
}

func (s *YAMLSerializer) Parse(r io.Reader) (core.Entries, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if payload == nil {
		// An empty file is an empty document.
		return make(core.Entries), nil
	}

	switch obj := payload.(type) {
	case map[string]any:
		return core.Entries(obj), nil
	case map[any]any:
		return yamlEntries(obj)
	default:
		return nil, fmt.Errorf("%w (got %s)", ErrNotFlat, kindOf(payload))
	}
}

// yamlEntries converts a mapping with non-string keys, such as "10: ten",
// keying each entry by the scalar's text.
func yamlEntries(obj map[any]any) (core.Entries, error) {
	entries := make(core.Entries, len(obj))
	for k, v := range obj {
		switch k.(type) {
		case map[string]any, map[any]any, []any:
			return nil, fmt.Errorf("%w (key of kind %s)", ErrNotFlat, kindOf(k))
		}
		key := fmt.Sprint(k)
		if k == nil {
			key = "null"
		}
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("duplicate key %q", key)
		}
		entries[key] = v
	}
	return entries, nil
}

func (s *YAMLSerializer) Serialize(entries core.Entries) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(s.Indent)
	if err := encoder.Encode(map[string]any(entries)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- TOML Serializer ---

// TOMLSerializer handles reading and writing TOML files. The top level of
// a TOML file is always a table, so only syntax errors are rejected.
type TOMLSerializer struct {
	Indent int
}

// NewTOMLSerializer creates a new TOML serializer.
func NewTOMLSerializer(indent int) *TOMLSerializer {
	return &TOMLSerializer{Indent: indent}
}

func (s *TOMLSerializer) Parse(r io.Reader) (core.Entries, error) {
	payload := make(map[string]any)
	if _, err := toml.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid toml: %w", err)
	}
	return core.Entries(payload), nil
}

func (s *TOMLSerializer) Serialize(entries core.Entries) ([]byte, error) {
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	encoder.Indent = strings.Repeat(" ", s.Indent)
	if err := encoder.Encode(map[string]any(entries)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- Helpers ---

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
