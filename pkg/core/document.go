// Package core holds the domain of keyloom: a set of flat key-value
// documents edited as one key-aligned table.
package core

import (
	"encoding/json"
	"fmt"
)

// Entries is the flat key-value mapping of a single document.
// Values are kept as decoded (string, json.Number, bool, nested maps...)
// so that persisting an untouched document does not change it.
type Entries map[string]any

// Document is one loaded key-value file.
type Document struct {
	// Name identifies the document inside a set. It is derived from the
	// origin (e.g. the base file name) so reloading replaces instead of duplicating.
	Name string
	// Origin is the persistence handle (e.g. the file path). Only the repository reads it.
	Origin  string
	Entries Entries
}

// Has reports whether the document holds key.
func (d *Document) Has(key string) bool {
	_, ok := d.Entries[key]
	return ok
}

// Keys returns the document keys in display order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, len(d.Entries))
	for k := range d.Entries {
		keys = append(keys, k)
	}
	return DisplayOrder(keys)
}

// Row is a single key/value pair as presented to the user.
type Row struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// Text returns the value coerced to its display string.
func (r Row) Text() string {
	return FormatValue(r.Value)
}

func (r Row) String() string {
	return r.Key + ": " + r.Text()
}

// View maps a document name to the ordered rows shown for it.
type View map[string][]Row

// Len returns the total number of rows across all documents.
func (v View) Len() int {
	n := 0
	for _, rows := range v {
		n += len(rows)
	}
	return n
}

// FormatValue coerces a stored value to the string used for display and
// value matching. Strings are returned as is, everything else is rendered
// as its JSON text.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case nil:
		return "null"
	}
	b, err := json.Marshal(v)
	if err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
