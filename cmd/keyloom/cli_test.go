package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	files = nil
	addValues = nil
	editValues = nil
	deleteYes = false
	keepGoing = false
	changeReason = ""
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestCLI_AddDeleteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	en := filepath.Join(dir, "en.json")
	de := filepath.Join(dir, "de.json")
	require.NoError(t, os.WriteFile(en, []byte(`{"hello": "Hello"}`), 0644))
	require.NoError(t, os.WriteFile(de, []byte(`{"hello": "Hallo"}`), 0644))
	pattern := filepath.Join(dir, "*.json")

	require.NoError(t, runCLI(t, "add", "bye", "-f", pattern, "--value", "en.json=Bye", "--value", "de.json="))

	data, err := os.ReadFile(en)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"bye\": \"Bye\",\n    \"hello\": \"Hello\"\n}\n", string(data))

	data, err = os.ReadFile(de)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"hello\": \"Hallo\"\n}\n", string(data))

	err = runCLI(t, "add", "hello", "-f", pattern, "--value", "en.json=Again")
	assert.Error(t, err)

	require.NoError(t, runCLI(t, "delete", "hello", "-f", pattern, "--yes"))

	data, err = os.ReadFile(de)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	data, err = os.ReadFile(en)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"bye\": \"Bye\"\n}\n", string(data))
}

func TestCLI_NoDocuments(t *testing.T) {
	t.Chdir(t.TempDir())
	err := runCLI(t, "show", "-f", filepath.Join(t.TempDir(), "*.json"))
	assert.Error(t, err)
}

func TestCLI_AddWithOnlyEmptyValues(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	en := filepath.Join(dir, "en.json")
	require.NoError(t, os.WriteFile(en, []byte(`{"hello": "Hello"}`), 0644))

	require.NoError(t, runCLI(t, "add", "bye", "-f", en, "--value", "en.json="))

	data, err := os.ReadFile(en)
	require.NoError(t, err)
	assert.Equal(t, `{"hello": "Hello"}`, string(data))
}
