package handlekit

import (
	"errors"
	"fmt"
)

// Common resolution and handle errors
var (
	ErrNotExist       = errors.New("resource does not exist")
	ErrExist          = errors.New("resource already exists")
	ErrClosed         = errors.New("handle already closed")
	ErrNotDir         = errors.New("not a directory")
	ErrIsDir          = errors.New("is a directory")
	ErrReadOnly       = errors.New("handle is read-only")
	ErrInvalidOffset  = errors.New("invalid offset")
	ErrInvalidWhence  = errors.New("invalid whence")
	ErrInvalidSize    = errors.New("invalid size")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrNotSupported   = errors.New("operation not supported")
	ErrNoEntries      = errors.New("archive has no entries")
	ErrUnknownLength  = errors.New("length unknown")
)

// PathError records an error and the operation and resource path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// IsNotExist reports whether an error indicates that a resource
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsExist reports whether an error indicates that a resource
// already exists
func IsExist(err error) bool {
	return errors.Is(err, ErrExist)
}

// IsNotSupported reports whether an error indicates that the operation
// is not supported by the chosen backend
func IsNotSupported(err error) bool {
	return errors.Is(err, ErrNotSupported)
}
