package platform

import (
	"github.com/aretw0/keyloom/pkg/core"
)

// New wires a repository, a document set and a sync engine.
//
//	engine, err := keyloom.New(keyloom.WithIndent(2))
//	docs, err := keyloom.LoadAll(ctx, engine, "locales/*.json")
func New(opts ...Option) (*core.SyncEngine, error) {
	repo, err := Init(opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	set := core.NewDocumentSet(repo, o.logger)
	return core.NewSyncEngine(set, o.logger), nil
}
