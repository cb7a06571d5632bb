package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyloom/pkg/core"
)

func TestSource_TagsDocuments(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	docs := []*core.Document{
		{Name: "en.json", Origin: "/tmp/en.json"},
		{Name: "de.json", Origin: "/tmp/de.json"},
	}

	in := make(chan core.Event, 3)
	in <- core.Event{Type: core.EventModify, Origin: "/tmp/en.json"}
	in <- core.Event{Type: core.EventModify, Origin: "/tmp/other.json"}
	in <- core.Event{Type: core.EventDelete, Origin: "/tmp/de.json"}
	close(in)

	src := NewSource(in, docs)
	require.NoError(t, src.Start(ctx))

	var got []DocumentEvent
	for e := range src.Events() {
		ev, ok := e.(DocumentEvent)
		require.True(t, ok)
		got = append(got, ev)
	}

	require.Len(t, got, 2)
	assert.Equal(t, "en.json", got[0].Document)
	assert.Equal(t, "/tmp/en.json", got[0].Origin)
	assert.Equal(t, core.EventDelete, got[1].Type)
	assert.Equal(t, "DELETE de.json", got[1].String())
}

func TestSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan core.Event)

	src := NewSource(in, nil)
	require.NoError(t, src.Start(ctx))
	cancel()

	_, open := <-src.Events()
	assert.False(t, open)
}
