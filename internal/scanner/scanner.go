// internal/scanner/scanner.go
package scanner

import (
	"context"
	"time"

	"github.com/piclens/piclens/internal/model"
	"github.com/piclens/piclens/internal/source"
)

type Scanner interface {
	Scan(ctx context.Context, dir source.Handle) (*Result, error)
}

// Result is one completed scan. Files is a fresh snapshot sorted newest-first;
// the scanner keeps no reference to it after returning. Skipped records the
// entries that were tolerated rather than aborting the scan.
type Result struct {
	Files    []model.ImageFile
	Skipped  []SkipError
	Duration time.Duration
}

type SkipError struct {
	Path string
	Err  error
}
