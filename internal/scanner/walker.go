// internal/scanner/walker.go
package scanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/imagemeta"
	"github.com/piclens/piclens/internal/listing"
	"github.com/piclens/piclens/internal/source"
)

const DefaultMaxDepth = 32

// ErrMaxDepth marks subtrees skipped because the nesting bound was hit.
var ErrMaxDepth = errors.New("maximum scan depth exceeded")

// Walker recursively scans a directory handle for image files. One bad entry
// never fails the whole scan; only a failure enumerating the root does.
type Walker struct {
	maxDepth int
	log      *slog.Logger
}

func NewWalker(maxDepth int, log *slog.Logger) *Walker {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Walker{maxDepth: maxDepth, log: log}
}

func (w *Walker) Scan(ctx context.Context, dir source.Handle) (*Result, error) {
	start := time.Now()

	entries, err := dir.Entries(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Nothing to partially return when the root itself is unreadable.
		return nil, access.ScanFailed(err)
	}

	res := &Result{}
	if err := w.walk(ctx, entries, "", 0, res); err != nil {
		return nil, err
	}

	res.Files = listing.Default(res.Files)
	res.Duration = time.Since(start)
	return res, nil
}

// walk processes one directory level. prefix is the '/'-joined path from the
// scan root, empty at the root. The only errors it returns are context ones;
// everything else is recorded in res.Skipped and the walk moves on.
func (w *Walker) walk(ctx context.Context, entries []source.Entry, prefix string, depth int, res *Result) error {
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		childPath := join(prefix, e.Name())

		if e.IsDir() {
			if depth+1 > w.maxDepth {
				w.skip(res, childPath, ErrMaxDepth)
				continue
			}

			sub, err := e.Dir(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				w.skip(res, childPath, err)
				continue
			}

			children, err := sub.Entries(ctx)
			if err != nil {
				_ = sub.Close()
				if ctx.Err() != nil {
					return ctx.Err()
				}
				// Subtree became inaccessible; siblings still scan.
				w.skip(res, childPath, err)
				continue
			}

			err = w.walk(ctx, children, childPath, depth+1, res)
			_ = sub.Close()
			if err != nil {
				return err
			}
			continue
		}

		if !imagemeta.Supported(e.Name()) {
			continue
		}

		rec, err := e.File(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Entry disappeared or became unreadable mid-scan.
			w.skip(res, childPath, err)
			continue
		}
		rec.RelPath = childPath
		res.Files = append(res.Files, rec)
	}
	return nil
}

func (w *Walker) skip(res *Result, path string, err error) {
	w.log.Warn("skipping entry", "path", path, "error", err)
	res.Skipped = append(res.Skipped, SkipError{Path: path, Err: err})
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}
