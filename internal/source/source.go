// internal/source/source.go

// Package source abstracts where image files come from. The scanner only ever
// sees these interfaces, so the same walk runs against a real directory grant
// or the dev HTTP shim.
package source

import (
	"context"

	"github.com/piclens/piclens/internal/model"
)

// Source opens directory handles. Implementations: native (os.Root-backed)
// and httpapi (dev shim-backed).
type Source interface {
	// Supported reports whether this source can work in the current
	// environment. Callers re-check on every grant attempt; the answer may
	// change between calls under test doubles.
	Supported() bool

	// Open turns a location (a filesystem path, or ignored by remote
	// sources) into a directory handle.
	Open(ctx context.Context, location string) (Handle, error)
}

// Handle is an opaque capability for one granted directory. It is never
// persisted across runs; Close releases whatever the platform holds open.
type Handle interface {
	// Name is the directory's display name.
	Name() string

	// Entries enumerates the direct children.
	Entries(ctx context.Context) ([]Entry, error)

	Close() error
}

// Entry is one child of a directory: either a file or a subdirectory.
type Entry interface {
	Name() string
	IsDir() bool

	// Dir opens the entry as a subdirectory handle. Only valid when IsDir.
	Dir(ctx context.Context) (Handle, error)

	// File materializes the entry into a record with size, modification
	// time, and byte access. Only valid when !IsDir. RelPath is left empty;
	// the scanner fills it in with path context.
	File(ctx context.Context) (model.ImageFile, error)
}
