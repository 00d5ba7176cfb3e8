// internal/model/image.go
package model

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// OpenFunc materializes the byte source behind a discovered file. Each call
// returns a fresh reader; the caller closes it.
type OpenFunc func(ctx context.Context) (io.ReadCloser, error)

// ImageFile is one discovered image in a scanned directory tree.
type ImageFile struct {
	Name       string    // Leaf file name
	RelPath    string    // Path from the scan root, '/'-separated on every platform
	Size       int64     // Byte length
	ModifiedAt time.Time // Last modification time (creation time is not tracked separately)
	Thumbnail  string    // Reserved; always empty for now
	Open       OpenFunc  // Byte access, backed by the source that found the file
}

// Ext returns the lower-cased extension including the dot, e.g. ".jpg".
func (f *ImageFile) Ext() string {
	return strings.ToLower(path.Ext(f.Name))
}

// HumanSize renders Size for display, e.g. "1.2 MB".
func (f *ImageFile) HumanSize() string {
	return humanize.Bytes(uint64(f.Size))
}

// Dir returns the directory portion of RelPath, empty for root-level files.
func (f *ImageFile) Dir() string {
	d := path.Dir(f.RelPath)
	if d == "." {
		return ""
	}
	return d
}
