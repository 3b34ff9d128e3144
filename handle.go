package handlekit

import (
	"io"
)

// ============================================================================
// Core Interfaces (Interface Segregation)
// ============================================================================

// Handle is the random-access capability every resolved backend provides.
// A Handle is bound to exactly one physical resource. The caller owns the
// handle and must Close it on all exit paths, including error paths; nothing
// in this package pools or tracks handles across calls.
//
// Handles are not safe for concurrent use.
type Handle interface {
	io.Reader
	io.ReaderAt
	io.Seeker
	io.Closer

	// Length returns the total size of the resource in bytes.
	Length() (int64, error)
}

// WritableHandle is implemented by handles that also accept writes.
// Only some backends support writing; use a type assertion to check:
//
//	if w, ok := h.(WritableHandle); ok {
//	    w.Write(data)
//	}
type WritableHandle interface {
	Handle
	io.Writer
	io.WriterAt

	// Truncate changes the size of the underlying resource.
	Truncate(size int64) error
}

// ============================================================================
// Handle Classification
// ============================================================================

// HandleKind names the backend classification chosen for one resolution.
// Exactly one kind is chosen per GetHandle call, in the fixed precedence
// order mapped > url > zip > gzip > bzip2 > registered formats > file.
type HandleKind string

const (
	// KindMapped is a handle pre-registered through MapHandle. It bypasses
	// every scheme and signature check.
	KindMapped HandleKind = "mapped"
	// KindURL is an HTTP-backed handle, selected by identifier prefix.
	KindURL HandleKind = "url"
	// KindZip is a handle over the first entry of a zip archive.
	KindZip HandleKind = "zip"
	// KindGZip is a handle over a gzip-compressed stream.
	KindGZip HandleKind = "gzip"
	// KindBZip2 is a handle over a bzip2-compressed stream.
	KindBZip2 HandleKind = "bzip2"
	// KindFile is a plain local-file handle, the fallback kind.
	KindFile HandleKind = "file"
)

// ============================================================================
// Change Notification (ChangeToken Pattern)
// ============================================================================
// This follows Microsoft's IChangeToken pattern from ASP.NET Core.
// Benefits:
// - Simple interface (one method)
// - Works for all backends (native events OR polling)
// - Consumer decides how to react (poll HasChanged OR register callback)
// - Composable (combine multiple tokens)

// ChangeToken represents a change notification token.
// It provides a mechanism to be notified when a watched resource changes.
//
// Consumers can either:
// 1. Poll HasChanged() periodically
// 2. Register a callback via RegisterChangeCallback()
//
// Check ActiveChangeCallbacks() to know which approach is more efficient
// for the underlying implementation.
type ChangeToken interface {
	// HasChanged returns true if a change has occurred.
	// Once true, it remains true (tokens are single-use).
	HasChanged() bool

	// ActiveChangeCallbacks indicates if the token proactively raises callbacks.
	// If true, RegisterChangeCallback is efficient.
	// If false, consumers should poll HasChanged instead.
	ActiveChangeCallbacks() bool

	// RegisterChangeCallback registers a callback to be invoked when change occurs.
	// Returns a function to unregister the callback.
	// The callback receives no arguments - check the source for what changed.
	RegisterChangeCallback(callback func()) (unregister func())
}
