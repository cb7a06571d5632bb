package core

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors. The typed errors below match them with errors.Is.
var (
	ErrLoad         = errors.New("document cannot be loaded")
	ErrPersist      = errors.New("document cannot be persisted")
	ErrDuplicateKey = errors.New("key already exists")
	ErrNotFound     = errors.New("document not found")
	ErrEmptyKey     = errors.New("key cannot be empty")
	ErrReadOnly     = errors.New("repository is in read-only mode")
)

// LoadError reports an origin that could not be read as a flat key-value object.
type LoadError struct {
	Origin string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Origin, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// PersistError reports a document whose origin could not be written.
type PersistError struct {
	Document string
	Origin   string
	Err      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s (%s): %v", e.Document, e.Origin, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersist }

// DuplicateKeyError is returned by AddKey when the key is already present
// in at least one document.
type DuplicateKeyError struct {
	Key       string
	Documents []string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q already exists in %s", e.Key, strings.Join(e.Documents, ", "))
}

func (e *DuplicateKeyError) Is(target error) bool { return target == ErrDuplicateKey }

// NotFoundError is returned when a document name was never loaded.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
