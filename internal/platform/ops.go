package platform

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/keyloom/pkg/adapters/fs"
	"github.com/aretw0/keyloom/pkg/core"
	"github.com/aretw0/keyloom/pkg/git"
)

// Init builds the repository described by opts.
func Init(opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if o.repository != nil {
		return o.repository, nil
	}
	return initFS(o)
}

// initFS handles the initialization logic for the filesystem adapter.
func initFS(o *options) (core.Repository, error) {
	root, _ := o.config["root"].(string)
	versioning, _ := o.config["versioning"].(bool)
	indent, _ := o.config["indent"].(int)
	readOnly, _ := o.config["read_only"].(bool)
	eventBuffer, _ := o.config["event_buffer"].(int)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	strict := true
	if val, ok := o.config["strict"].(bool); ok {
		strict = val
	}

	if versioning && !git.IsInstalled() {
		return nil, fmt.Errorf("versioning requested but git is not installed")
	}

	serializers := make(map[string]fs.Serializer, len(o.serializers))
	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			if o.logger != nil {
				o.logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			}
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		serializers[ext] = serializer
	}

	return fs.NewRepository(fs.Config{
		Root:         root,
		Strict:       strict,
		Indent:       indent,
		ReadOnly:     readOnly,
		Versioning:   versioning,
		Serializers:  serializers,
		EventBuffer:  eventBuffer,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	}), nil
}

// LoadAll expands patterns (paths or doublestar globs) and loads every
// match into the engine's document set. A file that fails to load is
// skipped and reported; the others are still loaded.
func LoadAll(ctx context.Context, engine *core.SyncEngine, patterns ...string) ([]*core.Document, error) {
	origins, err := fs.ExpandOrigins(patterns)
	if err != nil {
		return nil, err
	}

	var (
		docs []*core.Document
		errs []error
	)
	for _, origin := range origins {
		doc, err := engine.Documents().Load(ctx, origin)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, errors.Join(errs...)
}

// SaveAll persists every loaded document. Unless ctx already carries a
// change reason, a conventional commit message is attached for versioned
// repositories. See core.DocumentSet.PersistAll for failure semantics.
func SaveAll(ctx context.Context, engine *core.SyncEngine, continueOnError bool) error {
	set := engine.Documents()
	if val, ok := ctx.Value(core.ChangeReasonKey).(string); !ok || val == "" {
		msg := FormatChangeReason(CommitTypeChore, "documents", fmt.Sprintf("save %d documents", set.Len()), "")
		ctx = context.WithValue(ctx, core.ChangeReasonKey, msg)
	}
	return set.PersistAll(ctx, continueOnError)
}
