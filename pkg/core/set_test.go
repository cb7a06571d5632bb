package core_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/keyloom/pkg/core"
)

// MockRepository implements core.Repository in memory.
// It deliberately does NOT implement core.Watchable.
type MockRepository struct {
	files     map[string]core.Entries
	failWrite map[string]bool
	written   []string
	commits   []string
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		files:     make(map[string]core.Entries),
		failWrite: make(map[string]bool),
	}
}

func (m *MockRepository) Load(ctx context.Context, origin string) (core.Document, error) {
	entries, ok := m.files[origin]
	if !ok {
		return core.Document{}, &core.LoadError{Origin: origin, Err: errors.New("no such file")}
	}
	copied := make(core.Entries, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return core.Document{Name: filepath.Base(origin), Origin: origin, Entries: copied}, nil
}

func (m *MockRepository) Persist(ctx context.Context, doc core.Document) error {
	if m.failWrite[doc.Origin] {
		return errors.New("permission denied")
	}
	copied := make(core.Entries, len(doc.Entries))
	for k, v := range doc.Entries {
		copied[k] = v
	}
	m.files[doc.Origin] = copied
	m.written = append(m.written, doc.Origin)
	return nil
}

// VersionedRepository adds core.Versioned on top of MockRepository.
type VersionedRepository struct {
	*MockRepository
}

func (v VersionedRepository) Commit(ctx context.Context, message string, origins []string) error {
	v.commits = append(v.commits, message+": "+strings.Join(origins, ","))
	return nil
}

func TestDocumentSet_Load(t *testing.T) {
	repo := NewMockRepository()
	repo.files["/locales/en.json"] = core.Entries{"hello": "Hello"}
	repo.files["/locales/de.json"] = core.Entries{"hello": "Hallo"}
	set := core.NewDocumentSet(repo, nil)
	ctx := context.TODO()

	t.Run("Registers under origin name", func(t *testing.T) {
		doc, err := set.Load(ctx, "/locales/en.json")
		require.NoError(t, err)
		assert.Equal(t, "en.json", doc.Name)
		assert.Equal(t, "/locales/en.json", doc.Origin)

		_, err = set.Load(ctx, "/locales/de.json")
		require.NoError(t, err)
		assert.Equal(t, []string{"en.json", "de.json"}, set.Names())
	})

	t.Run("Reload replaces and keeps position", func(t *testing.T) {
		repo.files["/locales/en.json"] = core.Entries{"hello": "Hi", "bye": "Bye"}
		doc, err := set.Load(ctx, "/locales/en.json")
		require.NoError(t, err)

		assert.Equal(t, 2, set.Len())
		assert.Equal(t, []string{"en.json", "de.json"}, set.Names())
		assert.Equal(t, core.Entries{"hello": "Hi", "bye": "Bye"}, doc.Entries)

		got, err := set.Get("en.json")
		require.NoError(t, err)
		assert.Same(t, doc, got)
	})

	t.Run("Failure registers nothing", func(t *testing.T) {
		_, err := set.Load(ctx, "/locales/missing.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrLoad)
		assert.Equal(t, 2, set.Len())
	})
}

func TestDocumentSet_Get_NotFound(t *testing.T) {
	set := core.NewDocumentSet(NewMockRepository(), nil)

	_, err := set.Get("fr.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	var nf *core.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "fr.json", nf.Name)
}

func TestDocumentSet_Primitives(t *testing.T) {
	set := core.NewDocumentSet(nil, nil)
	set.Add(core.Document{Name: "a.json"})

	require.NoError(t, set.SetValue("a.json", "k", "v"))
	doc, err := set.Get("a.json")
	require.NoError(t, err)
	assert.Equal(t, "v", doc.Entries["k"])

	removed, err := set.DeleteKey("a.json", "k")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = set.DeleteKey("a.json", "k")
	require.NoError(t, err)
	assert.False(t, removed)

	assert.ErrorIs(t, set.SetValue("b.json", "k", "v"), core.ErrNotFound)
}

func TestDocumentSet_PersistAll(t *testing.T) {
	ctx := context.TODO()

	newSet := func(repo core.Repository, mock *MockRepository) *core.DocumentSet {
		mock.files["/l/a.json"] = core.Entries{"k": "a"}
		mock.files["/l/b.json"] = core.Entries{"k": "b"}
		mock.files["/l/c.json"] = core.Entries{"k": "c"}
		set := core.NewDocumentSet(repo, nil)
		for _, origin := range []string{"/l/a.json", "/l/b.json", "/l/c.json"} {
			_, err := set.Load(ctx, origin)
			require.NoError(t, err)
		}
		return set
	}

	t.Run("Aborts on first failure", func(t *testing.T) {
		mock := NewMockRepository()
		set := newSet(mock, mock)
		mock.failWrite["/l/b.json"] = true

		err := set.PersistAll(ctx, false)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrPersist)

		var pe *core.PersistError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "b.json", pe.Document)
		assert.Equal(t, []string{"/l/a.json"}, mock.written)
	})

	t.Run("Keeps going when asked", func(t *testing.T) {
		mock := NewMockRepository()
		set := newSet(mock, mock)
		mock.failWrite["/l/b.json"] = true

		err := set.PersistAll(ctx, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrPersist)
		assert.Equal(t, []string{"/l/a.json", "/l/c.json"}, mock.written)
	})

	t.Run("Records one revision when versioned", func(t *testing.T) {
		mock := NewMockRepository()
		repo := VersionedRepository{mock}
		set := newSet(repo, mock)

		ctx := context.WithValue(ctx, core.ChangeReasonKey, "chore: sync")
		require.NoError(t, set.PersistAll(ctx, false))
		require.Len(t, mock.commits, 1)
		assert.Equal(t, "chore: sync: /l/a.json,/l/b.json,/l/c.json", mock.commits[0])
	})

	t.Run("Records the documents written before an abort", func(t *testing.T) {
		mock := NewMockRepository()
		repo := VersionedRepository{mock}
		set := newSet(repo, mock)
		mock.failWrite["/l/b.json"] = true

		ctx := context.WithValue(ctx, core.ChangeReasonKey, "chore: sync")
		err := set.PersistAll(ctx, false)
		assert.ErrorIs(t, err, core.ErrPersist)
		assert.Equal(t, []string{"/l/a.json"}, mock.written)
		require.Len(t, mock.commits, 1)
		assert.Equal(t, "chore: sync: /l/a.json", mock.commits[0])
	})
}

func TestDocumentSet_Watch_Unsupported(t *testing.T) {
	set := core.NewDocumentSet(NewMockRepository(), nil)

	_, err := set.Watch(context.TODO())
	require.Error(t, err)
	assert.Equal(t, "repository does not support watching", err.Error())
}

func TestDocumentSet_State(t *testing.T) {
	set := core.NewDocumentSet(NewMockRepository(), nil)
	set.Add(core.Document{Name: "en.json", Entries: core.Entries{"a": "1", "b": "2"}})

	state, ok := set.State().(core.SetState)
	require.True(t, ok)
	assert.Equal(t, []string{"en.json"}, state.Documents)
	assert.Equal(t, 2, state.Keys["en.json"])
	assert.Equal(t, "repository", state.RepositoryType)
}
