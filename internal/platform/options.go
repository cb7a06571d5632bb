package platform

import (
	"log/slog"

	"github.com/aretw0/keyloom/pkg/core"
)

// options holds the internal configuration for the keyloom engine.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	config      map[string]interface{}
	serializers map[string]any
}

// Option defines a functional option for configuring keyloom.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		repository:  nil,
		logger:      nil,
		config:      make(map[string]interface{}),
		serializers: make(map[string]any),
	}
}

// WithSerializer registers a custom serializer for a specific extension.
// The serializer 's' must implement fs.Serializer; this is validated in Init.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithRoot sets the working directory used for versioning.
func WithRoot(path string) Option {
	return func(o *options) {
		o.config["root"] = path
	}
}

// WithVersioning records every save as a git commit. Disabled by default.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioning"] = enabled
	}
}

// WithStrict controls number parsing for JSON documents. When enabled
// (the default) numbers are kept as json.Number so that saving an
// untouched document writes them back unchanged.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithIndent sets the number of spaces used when writing documents.
func WithIndent(spaces int) Option {
	return func(o *options) {
		o.config["indent"] = spaces
	}
}

// WithReadOnly makes every save fail with core.ErrReadOnly.
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithEventBuffer sets the size of the watch event channel.
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithWatcherErrorHandler registers a callback for errors raised inside
// the watch loop, which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithLogger sets the logger for the engine and its repository.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}
