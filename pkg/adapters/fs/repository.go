package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/keyloom/pkg/core"
	"github.com/aretw0/keyloom/pkg/git"
)

// Repository implements core.Repository on local files. Every file is one
// document; the document name is the base name of the file.
type Repository struct {
	config      Config
	serializers map[string]Serializer
	git         *git.Client

	mu            sync.Mutex
	watcherActive bool
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	// Root is the working directory used for versioning. Defaults to the
	// process working directory.
	Root string
	// Strict parses JSON numbers as json.Number to keep them byte-exact.
	Strict bool
	// Indent is the number of spaces used when writing. Zero means DefaultIndent.
	Indent int
	// ReadOnly makes Persist fail with core.ErrReadOnly.
	ReadOnly bool
	// Versioning records each PersistAll batch as a git commit.
	Versioning bool
	// Serializers overrides or extends the default serializers by extension.
	Serializers map[string]Serializer
	// EventBuffer is the size of the watch channel buffer. Zero means 16.
	EventBuffer int
	Logger      *slog.Logger
	// ErrorHandler receives errors raised inside the watcher goroutine.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.Indent <= 0 {
		config.Indent = DefaultIndent
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = 16
	}

	serializers := DefaultSerializers(config.Strict, config.Indent)
	for ext, s := range config.Serializers {
		serializers[strings.ToLower(ext)] = s
	}

	return &Repository{
		config:      config,
		serializers: serializers,
		git:         git.NewClient(config.Root, config.Logger),
	}
}

// serializerFor picks the serializer by extension, falling back to JSON.
func (r *Repository) serializerFor(path string) Serializer {
	if s, ok := r.serializers[strings.ToLower(filepath.Ext(path))]; ok {
		return s
	}
	return r.serializers[".json"]
}

// NameFor returns the document name derived from origin.
func NameFor(origin string) string {
	return filepath.Base(origin)
}

// Load reads origin as a flat key-value document.
func (r *Repository) Load(ctx context.Context, origin string) (core.Document, error) {
	if err := ctx.Err(); err != nil {
		return core.Document{}, &core.LoadError{Origin: origin, Err: err}
	}

	abs, err := filepath.Abs(origin)
	if err != nil {
		return core.Document{}, &core.LoadError{Origin: origin, Err: err}
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return core.Document{}, &core.LoadError{Origin: abs, Err: err}
	}

	entries, err := r.serializerFor(abs).Parse(bytes.NewReader(data))
	if err != nil {
		return core.Document{}, &core.LoadError{Origin: abs, Err: err}
	}

	r.config.Logger.Debug("file parsed", "path", abs, "bytes", len(data), "keys", len(entries))
	return core.Document{
		Name:    NameFor(abs),
		Origin:  abs,
		Entries: entries,
	}, nil
}

// Persist writes doc.Entries back to doc.Origin, replacing the file atomically.
func (r *Repository) Persist(ctx context.Context, doc core.Document) error {
	fail := func(err error) error {
		return &core.PersistError{Document: doc.Name, Origin: doc.Origin, Err: err}
	}

	if r.config.ReadOnly {
		return fail(core.ErrReadOnly)
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if doc.Origin == "" {
		return fail(fmt.Errorf("document has no origin"))
	}

	// The origin must still be writable; a rename over a read-only file would hide that.
	if f, err := os.OpenFile(doc.Origin, os.O_WRONLY, 0); err == nil {
		f.Close()
	} else if !os.IsNotExist(err) {
		return fail(err)
	}

	data, err := r.serializerFor(doc.Origin).Serialize(doc.Entries)
	if err != nil {
		return fail(fmt.Errorf("failed to serialize: %w", err))
	}

	if err := writeFileAtomic(doc.Origin, data); err != nil {
		return fail(err)
	}

	r.config.Logger.Debug("file written", "path", doc.Origin, "bytes", len(data))
	return nil
}

// Commit implements core.Versioned. Without versioning it does nothing.
func (r *Repository) Commit(ctx context.Context, message string, origins []string) error {
	if !r.config.Versioning || len(origins) == 0 {
		return nil
	}
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if !git.IsInstalled() {
		return fmt.Errorf("git is not installed")
	}
	if !r.git.IsRepo(ctx) {
		return fmt.Errorf("not a git repository: %s", r.workDir())
	}

	committed, err := r.git.CommitFiles(ctx, message, origins...)
	if err != nil {
		return err
	}
	if committed {
		r.config.Logger.Info("revision recorded", "files", len(origins))
	}
	return nil
}

func (r *Repository) workDir() string {
	if r.config.Root != "" {
		return r.config.Root
	}
	return "."
}

var (
	_ core.Repository = (*Repository)(nil)
	_ core.Versioned  = (*Repository)(nil)
	_ core.Watchable  = (*Repository)(nil)
)
