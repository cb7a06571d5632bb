package core

import (
	"log/slog"
	"sort"
	"strings"
)

// SyncEngine implements the key-synchronized view over a DocumentSet:
// adding a key to all documents, deleting it everywhere, editing it per
// document, and the two-phase search. It keeps no state of its own besides
// the set; the selected key lives in a Session owned by the caller.
type SyncEngine struct {
	set    *DocumentSet
	logger *slog.Logger
}

// NewSyncEngine creates an engine over set. A nil logger discards output.
func NewSyncEngine(set *DocumentSet, logger *slog.Logger) *SyncEngine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncEngine{set: set, logger: logger}
}

// Documents returns the underlying document set.
func (e *SyncEngine) Documents() *DocumentSet {
	return e.set
}

// AddKey inserts key into every document named in values with a non-empty
// value. The key must not exist in any loaded document and every named
// document must exist; otherwise nothing is changed.
func (e *SyncEngine) AddKey(key string, values map[string]string) error {
	if key == "" {
		return ErrEmptyKey
	}

	var holders []string
	for _, doc := range e.set.All() {
		if doc.Has(key) {
			holders = append(holders, doc.Name)
		}
	}
	if len(holders) > 0 {
		return &DuplicateKeyError{Key: key, Documents: holders}
	}

	names := sortedNames(values)
	for _, name := range names {
		if _, err := e.set.Get(name); err != nil {
			return err
		}
	}

	var touched []string
	for _, name := range names {
		if values[name] == "" {
			continue
		}
		if err := e.set.SetValue(name, key, values[name]); err != nil {
			return err
		}
		touched = append(touched, name)
	}

	e.logger.Debug("key added", "key", key, "documents", touched)
	return nil
}

// DeleteKey removes key from every document that has it and returns the
// names of the documents that changed. An empty key is a no-op.
func (e *SyncEngine) DeleteKey(key string) []string {
	if key == "" {
		return nil
	}

	var touched []string
	for _, doc := range e.set.All() {
		if !doc.Has(key) {
			continue
		}
		delete(doc.Entries, key)
		touched = append(touched, doc.Name)
	}

	e.logger.Debug("key deleted", "key", key, "documents", touched)
	return touched
}

// DeleteSelected deletes the key selected in session from all documents
// and clears the selection. Without a selection it does nothing.
func (e *SyncEngine) DeleteSelected(session *Session) []string {
	key, ok := session.Selected()
	if !ok {
		return nil
	}
	touched := e.DeleteKey(key)
	session.Clear()
	return touched
}

// EditValues sets key to the given value in each named document, creating
// the key where it was absent. Every named document must exist; otherwise
// nothing is changed.
func (e *SyncEngine) EditValues(key string, values map[string]string) error {
	if key == "" {
		return ErrEmptyKey
	}

	names := sortedNames(values)
	for _, name := range names {
		if _, err := e.set.Get(name); err != nil {
			return err
		}
	}
	for _, name := range names {
		if err := e.set.SetValue(name, key, values[name]); err != nil {
			return err
		}
	}

	e.logger.Debug("key edited", "key", key, "documents", names)
	return nil
}

// Display returns every document with all of its rows in display order.
func (e *SyncEngine) Display() View {
	view := make(View, e.set.Len())
	for _, doc := range e.set.All() {
		keys := doc.Keys()
		rows := make([]Row, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, Row{Key: k, Value: doc.Entries[k]})
		}
		view[doc.Name] = rows
	}
	return view
}

// Search resolves query case-insensitively against keys first and, only
// when no key matches, against values. Every matched key is then expanded
// to each document holding it. Rows are ordered by key; documents without
// a matching row are left out. A blank query returns Display().
func (e *SyncEngine) Search(query string) View {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return e.Display()
	}

	matched := e.match(func(key string, _ any) bool {
		return strings.Contains(strings.ToLower(key), q)
	})
	if len(matched) == 0 {
		matched = e.match(func(_ string, value any) bool {
			return strings.Contains(strings.ToLower(FormatValue(value)), q)
		})
	}

	view := make(View)
	if len(matched) == 0 {
		return view
	}
	for _, doc := range e.set.All() {
		var rows []Row
		for key := range matched {
			if value, ok := doc.Entries[key]; ok {
				rows = append(rows, Row{Key: key, Value: value})
			}
		}
		if len(rows) == 0 {
			continue
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
		view[doc.Name] = rows
	}
	return view
}

func (e *SyncEngine) match(pred func(key string, value any) bool) map[string]struct{} {
	matched := make(map[string]struct{})
	for _, doc := range e.set.All() {
		for key, value := range doc.Entries {
			if pred(key, value) {
				matched[key] = struct{}{}
			}
		}
	}
	return matched
}

// Values returns the display value of key in every document that has it.
func (e *SyncEngine) Values(key string) map[string]string {
	out := make(map[string]string)
	for _, doc := range e.set.All() {
		if v, ok := doc.Entries[key]; ok {
			out[doc.Name] = FormatValue(v)
		}
	}
	return out
}

// Keys returns the union of keys across all documents in display order.
func (e *SyncEngine) Keys() []string {
	seen := make(map[string]struct{})
	var keys []string
	for _, doc := range e.set.All() {
		for k := range doc.Entries {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	return DisplayOrder(keys)
}

// Missing reports, per document, the keys held by some other document but
// not by this one. Documents that are complete are left out.
func (e *SyncEngine) Missing() map[string][]string {
	union := e.Keys()
	out := make(map[string][]string)
	for _, doc := range e.set.All() {
		var gaps []string
		for _, k := range union {
			if !doc.Has(k) {
				gaps = append(gaps, k)
			}
		}
		if len(gaps) > 0 {
			out[doc.Name] = gaps
		}
	}
	return out
}

func sortedNames(values map[string]string) []string {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
