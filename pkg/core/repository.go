package core

import "context"

// Repository defines the contract for reading and writing whole documents.
// Adhering to this interface keeps the document set independent of the
// storage format (JSON, YAML, TOML files, or anything else).
type Repository interface {
	// Load reads the full mapping found at origin. The returned document is
	// named deterministically from the origin. Errors must be *LoadError.
	Load(ctx context.Context, origin string) (Document, error)

	// Persist writes the entries of doc back to doc.Origin verbatim.
	// Errors must be *PersistError.
	Persist(ctx context.Context, doc Document) error
}

// Versioned is implemented by repositories that can record a batch of
// persisted origins as one revision (e.g. a git commit).
type Versioned interface {
	Commit(ctx context.Context, message string, origins []string) error
}

// Watchable is implemented by repositories that can report external
// changes to loaded origins.
type Watchable interface {
	Watch(ctx context.Context, origins []string) (<-chan Event, error)
}

// EventType represents the kind of change observed on an origin.
type EventType string

const (
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of an origin outside of this process.
type Event struct {
	Type      EventType
	Origin    string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return string(e.Type) + " " + e.Origin
}

type contextKey string

// ChangeReasonKey is the context key for passing a change reason (commit
// message) to PersistAll.
const ChangeReasonKey contextKey = "change_reason"
