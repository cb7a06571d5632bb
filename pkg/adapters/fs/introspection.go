package fs

import (
	"sort"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Root          string   `json:"root"`
	Strict        bool     `json:"strict"`
	Indent        int      `json:"indent"`
	ReadOnly      bool     `json:"read_only"`
	Versioning    bool     `json:"versioning"`
	Serializers   []string `json:"serializers"`
	WatcherActive bool     `json:"watcher_active"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	serializers := make([]string, 0, len(r.serializers))
	for ext := range r.serializers {
		serializers = append(serializers, ext)
	}
	sort.Strings(serializers)

	return RepositoryState{
		Root:          r.config.Root,
		Strict:        r.config.Strict,
		Indent:        r.config.Indent,
		ReadOnly:      r.config.ReadOnly,
		Versioning:    r.config.Versioning,
		Serializers:   serializers,
		WatcherActive: r.watcherActive,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
