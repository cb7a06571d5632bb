package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// DocumentSet holds the authoritative per-document state. It knows nothing
// about cross-document consistency; that lives in SyncEngine.
//
// A DocumentSet is owned by a single control goroutine and is not safe for
// concurrent use.
type DocumentSet struct {
	repo   Repository
	logger *slog.Logger
	docs   map[string]*Document
	order  []string
}

// NewDocumentSet creates an empty set backed by repo. A nil logger discards output.
func NewDocumentSet(repo Repository, logger *slog.Logger) *DocumentSet {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DocumentSet{
		repo:   repo,
		logger: logger,
		docs:   make(map[string]*Document),
	}
}

// Load reads origin through the repository and registers the resulting
// document. A document with the same name is replaced (last load wins) and
// keeps its position in the iteration order. On failure nothing is registered.
func (s *DocumentSet) Load(ctx context.Context, origin string) (*Document, error) {
	if s.repo == nil {
		return nil, &LoadError{Origin: origin, Err: errors.New("no repository configured")}
	}

	doc, err := s.repo.Load(ctx, origin)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Origin: origin, Err: err}
	}

	registered := s.Add(doc)
	s.logger.Info("document loaded", "name", registered.Name, "origin", origin, "keys", len(registered.Entries))
	return registered, nil
}

// Add registers doc directly, without going through the repository.
// It follows the same replacement rule as Load.
func (s *DocumentSet) Add(doc Document) *Document {
	if doc.Entries == nil {
		doc.Entries = make(Entries)
	}
	if _, exists := s.docs[doc.Name]; !exists {
		s.order = append(s.order, doc.Name)
	} else {
		s.logger.Debug("replacing document", "name", doc.Name)
	}
	d := &doc
	s.docs[doc.Name] = d
	return d
}

// Persist writes the current entries of doc back to its origin.
func (s *DocumentSet) Persist(ctx context.Context, doc *Document) error {
	if s.repo == nil {
		return &PersistError{Document: doc.Name, Origin: doc.Origin, Err: errors.New("no repository configured")}
	}
	if err := s.repo.Persist(ctx, *doc); err != nil {
		var pe *PersistError
		if errors.As(err, &pe) {
			return err
		}
		return &PersistError{Document: doc.Name, Origin: doc.Origin, Err: err}
	}
	s.logger.Info("document persisted", "name", doc.Name, "origin", doc.Origin)
	return nil
}

// PersistAll writes every document in load order.
//
// By default the first failure aborts the remaining writes and is returned
// as is. With continueOnError every document is attempted and all failures
// are returned joined. In-memory state is never rolled back.
//
// If the repository is Versioned, the origins written successfully are
// recorded as one revision, also when a failure aborted the rest. The
// message is taken from ChangeReasonKey in ctx when present.
func (s *DocumentSet) PersistAll(ctx context.Context, continueOnError bool) error {
	var (
		written []string
		errs    []error
	)
	for _, doc := range s.All() {
		if err := s.Persist(ctx, doc); err != nil {
			errs = append(errs, err)
			if !continueOnError {
				break
			}
			continue
		}
		written = append(written, doc.Origin)
	}

	if v, ok := s.repo.(Versioned); ok && len(written) > 0 {
		msg := fmt.Sprintf("save %d documents", len(written))
		if val, ok := ctx.Value(ChangeReasonKey).(string); ok && val != "" {
			msg = val
		}
		if err := v.Commit(ctx, msg, written); err != nil {
			errs = append(errs, fmt.Errorf("failed to record revision: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Get returns the document registered under name.
func (s *DocumentSet) Get(name string) (*Document, error) {
	doc, ok := s.docs[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return doc, nil
}

// Lookup returns the document whose origin is origin.
func (s *DocumentSet) Lookup(origin string) (*Document, bool) {
	for _, name := range s.order {
		if doc := s.docs[name]; doc.Origin == origin {
			return doc, true
		}
	}
	return nil, false
}

// All returns the documents in load order.
func (s *DocumentSet) All() []*Document {
	out := make([]*Document, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.docs[name])
	}
	return out
}

// Names returns the document names in load order.
func (s *DocumentSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of loaded documents.
func (s *DocumentSet) Len() int {
	return len(s.order)
}

// SetValue sets key to value in the named document.
func (s *DocumentSet) SetValue(name, key string, value any) error {
	doc, err := s.Get(name)
	if err != nil {
		return err
	}
	doc.Entries[key] = value
	return nil
}

// DeleteKey removes key from the named document. It reports whether the key was present.
func (s *DocumentSet) DeleteKey(name, key string) (bool, error) {
	doc, err := s.Get(name)
	if err != nil {
		return false, err
	}
	if _, ok := doc.Entries[key]; !ok {
		return false, nil
	}
	delete(doc.Entries, key)
	return true, nil
}

// Watch reports external changes to the loaded origins, if the repository supports it.
func (s *DocumentSet) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.repo.(Watchable)
	if !ok {
		return nil, errors.New("repository does not support watching")
	}
	origins := make([]string, 0, len(s.order))
	for _, doc := range s.All() {
		origins = append(origins, doc.Origin)
	}
	return w.Watch(ctx, origins)
}
