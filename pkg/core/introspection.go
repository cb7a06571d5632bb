package core

import (
	"github.com/aretw0/introspection"
)

// SetState exposes the document set for observability.
type SetState struct {
	Documents      []string       `json:"documents"`
	Keys           map[string]int `json:"keys"`
	RepositoryType string         `json:"repository_type"`
}

// State implements introspection.Introspectable.
func (s *DocumentSet) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	keys := make(map[string]int, len(s.order))
	for _, doc := range s.All() {
		keys[doc.Name] = len(doc.Entries)
	}

	return SetState{
		Documents:      s.Names(),
		Keys:           keys,
		RepositoryType: repoType,
	}
}

// ComponentType implements introspection.Component.
func (s *DocumentSet) ComponentType() string {
	return "document-set"
}

// EngineState exposes the key space seen by the engine.
type EngineState struct {
	UnionKeys  int            `json:"union_keys"`
	MissingPer map[string]int `json:"missing_per_document,omitempty"`
}

// State implements introspection.Introspectable.
func (e *SyncEngine) State() any {
	missing := e.Missing()
	per := make(map[string]int, len(missing))
	for name, keys := range missing {
		per[name] = len(keys)
	}
	return EngineState{
		UnionKeys:  len(e.Keys()),
		MissingPer: per,
	}
}

// ComponentType implements introspection.Component.
func (e *SyncEngine) ComponentType() string {
	return "sync-engine"
}

var _ introspection.Introspectable = (*DocumentSet)(nil)
var _ introspection.Component = (*DocumentSet)(nil)
var _ introspection.Introspectable = (*SyncEngine)(nil)
var _ introspection.Component = (*SyncEngine)(nil)
