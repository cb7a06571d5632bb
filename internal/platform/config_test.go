package platform

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Defaults(t *testing.T) {
	root := t.TempDir()
	v := NewViper()
	require.NoError(t, ReadConfig(v, root, ""))

	s, err := LoadSettings(v, root)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Indent)
	assert.True(t, s.Strict)
	assert.False(t, s.Versioning)
	assert.Empty(t, s.Files)
	assert.Equal(t, slog.LevelInfo, s.LogLevel())
}

func TestSettings_FromFile(t *testing.T) {
	root := t.TempDir()
	content := `files:
  - locales/*.json
  - /abs/fr.json
indent: 2
strict: false
log:
  level: debug
  file: keyloom.log
`
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigName+".yaml"), []byte(content), 0644))

	v := NewViper()
	require.NoError(t, ReadConfig(v, root, ""))
	s, err := LoadSettings(v, root)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Indent)
	assert.False(t, s.Strict)
	assert.Equal(t, "keyloom.log", s.Log.File)
	assert.Equal(t, slog.LevelDebug, s.LogLevel())
	assert.Equal(t, []string{filepath.Join(root, "locales/*.json"), "/abs/fr.json"}, s.Patterns())
	assert.Len(t, s.Options(nil), 6)
}

func TestSettings_Env(t *testing.T) {
	t.Setenv("KEYLOOM_INDENT", "8")
	t.Setenv("KEYLOOM_READ_ONLY", "true")

	v := NewViper()
	require.NoError(t, ReadConfig(v, t.TempDir(), ""))
	s, err := LoadSettings(v, "")
	require.NoError(t, err)
	assert.Equal(t, 8, s.Indent)
	assert.True(t, s.ReadOnly)
}

func TestSettings_Invalid(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "custom.yaml"), []byte("indent: 0\n"), 0644))

	v := NewViper()
	require.NoError(t, ReadConfig(v, root, filepath.Join(root, "custom.yaml")))
	_, err := LoadSettings(v, root)
	assert.Error(t, err)

	assert.Error(t, ReadConfig(NewViper(), root, filepath.Join(root, "missing.yaml")))
}
