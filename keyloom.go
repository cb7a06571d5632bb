package keyloom

import (
	"context"
	"log/slog"

	"github.com/aretw0/keyloom/internal/platform"
	"github.com/aretw0/keyloom/pkg/core"
)

// --- Types ---

// Engine is the cross-document sync engine.
type Engine = core.SyncEngine

// Session holds the key currently selected by the user.
type Session = core.Session

// View maps document names to the rows shown for them.
type View = core.View

// --- Configuration ---

// Option defines a functional option for configuring keyloom.
type Option = platform.Option

// WithLogger sets the logger for the engine and its repository.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStrict keeps JSON numbers byte-exact (enabled by default).
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithIndent sets the number of spaces used when writing documents.
func WithIndent(spaces int) Option {
	return platform.WithIndent(spaces)
}

// WithVersioning records every save as a git commit.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithRoot sets the working directory used for versioning.
func WithRoot(path string) Option {
	return platform.WithRoot(path)
}

// WithReadOnly makes every save fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithSerializer registers a custom fs.Serializer for an extension.
func WithSerializer(ext string, s any) Option {
	return platform.WithSerializer(ext, s)
}

// --- Factory ---

// New creates a new engine with an empty document set.
func New(opts ...Option) (*Engine, error) {
	return platform.New(opts...)
}

// LoadAll loads every file matched by patterns (paths or globs).
func LoadAll(ctx context.Context, engine *Engine, patterns ...string) ([]*core.Document, error) {
	return platform.LoadAll(ctx, engine, patterns...)
}

// SaveAll writes every loaded document back to its file, stopping at the
// first failure unless continueOnError is set.
func SaveAll(ctx context.Context, engine *Engine, continueOnError bool) error {
	return platform.SaveAll(ctx, engine, continueOnError)
}
