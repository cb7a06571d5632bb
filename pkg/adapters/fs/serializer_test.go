package fs

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyloom/pkg/core"
)

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer(true, 4)

	t.Run("Parses flat object and keeps nested values opaque", func(t *testing.T) {
		entries, err := s.Parse(strings.NewReader(`{"a": "A", "n": 12345678901234567890, "nested": {"x": [1, 2]}, "z": null}`))
		require.NoError(t, err)

		assert.Equal(t, "A", entries["a"])
		assert.Equal(t, json.Number("12345678901234567890"), entries["n"])
		assert.IsType(t, map[string]any{}, entries["nested"])
		assert.Contains(t, entries, "z")
		assert.Nil(t, entries["z"])
	})

	t.Run("Rejects non-object top level", func(t *testing.T) {
		for _, input := range []string{`[1, 2]`, `"text"`, `42`, `null`} {
			_, err := s.Parse(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrNotFlat, input)
		}
	})

	t.Run("Rejects invalid json", func(t *testing.T) {
		_, err := s.Parse(strings.NewReader(`{"a": `))
		assert.Error(t, err)

		_, err = s.Parse(strings.NewReader(`{"a": 1} {"b": 2}`))
		assert.Error(t, err)
	})

	t.Run("Serializes with indent and without html escaping", func(t *testing.T) {
		data, err := s.Serialize(core.Entries{"b": "<b>bold</b> & co", "a": json.Number("1.50")})
		require.NoError(t, err)

		want := "{\n    \"a\": 1.50,\n    \"b\": \"<b>bold</b> & co\"\n}\n"
		assert.Equal(t, want, string(data))
	})

	t.Run("Lenient mode decodes floats", func(t *testing.T) {
		entries, err := NewJSONSerializer(false, 2).Parse(strings.NewReader(`{"n": 3}`))
		require.NoError(t, err)
		assert.Equal(t, 3.0, entries["n"])
	})
}

func TestYAMLSerializer(t *testing.T) {
	s := NewYAMLSerializer(2)

	entries, err := s.Parse(strings.NewReader("greeting: Hallo\ncount: 3\nenabled: true\n"))
	require.NoError(t, err)
	assert.Equal(t, core.Entries{"greeting": "Hallo", "count": 3, "enabled": true}, entries)

	empty, err := s.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = s.Parse(strings.NewReader("- a\n- b\n"))
	assert.ErrorIs(t, err, ErrNotFlat)

	data, err := s.Serialize(entries)
	require.NoError(t, err)
	back, err := s.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, entries, back)
}

func TestYAMLSerializer_ScalarKeys(t *testing.T) {
	s := NewYAMLSerializer(2)

	entries, err := s.Parse(strings.NewReader("a: A\n10: ten\n2: two\n"))
	require.NoError(t, err)
	assert.Equal(t, core.Entries{"a": "A", "10": "ten", "2": "two"}, entries)

	doc := core.Document{Name: "en.yaml", Entries: entries}
	assert.Equal(t, []string{"a", "10", "2"}, doc.Keys())

	_, err = s.Parse(strings.NewReader("1: one\n\"1\": uno\n"))
	assert.Error(t, err)
}

func TestTOMLSerializer(t *testing.T) {
	s := NewTOMLSerializer(2)

	entries, err := s.Parse(strings.NewReader("greeting = \"Bonjour\"\ncount = 3\n"))
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", entries["greeting"])
	assert.Equal(t, int64(3), entries["count"])

	_, err = s.Parse(strings.NewReader("greeting = "))
	assert.Error(t, err)

	data, err := s.Serialize(entries)
	require.NoError(t, err)
	back, err := s.Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, entries, back)
}

func TestDefaultSerializers(t *testing.T) {
	serializers := DefaultSerializers(true, 0)
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		assert.Contains(t, serializers, ext)
	}
	assert.Equal(t, DefaultIndent, serializers[".json"].(*JSONSerializer).Indent)
}
