package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyloom/pkg/core"
)

func TestWriteView_JSON(t *testing.T) {
	view := core.View{
		"en.json": {{Key: "save", Value: "Save"}},
		"fr.json": nil,
	}

	var buf bytes.Buffer
	require.NoError(t, writeView(&buf, []string{"en.json", "de.json", "fr.json"}, view, true))

	want := `[
  {
    "document": "en.json",
    "rows": [
      {
        "key": "save",
        "value": "Save"
      }
    ]
  },
  {
    "document": "fr.json",
    "rows": []
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestRenderView_SkipsAbsentDocuments(t *testing.T) {
	out := renderView([]string{"en.json", "de.json"}, core.View{"en.json": {{Key: "save", Value: "Save"}}})
	assert.Contains(t, out, "en.json")
	assert.Contains(t, out, "save")
	assert.NotContains(t, out, "de.json")
}
