// internal/access/classify.go
package access

import (
	"errors"
	"io/fs"
	"strings"
)

// Classify maps a raw platform error onto the closed taxonomy. Structured
// identity only: the same sentinel always maps to the same Kind regardless of
// message text. Already-classified errors pass through unchanged.
func Classify(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied(err)
	case errors.Is(err, fs.ErrNotExist):
		return NotFound(err)
	default:
		return Denied(err)
	}
}

// ClassifyMessage buckets a human-authored error message into a Kind.
// This is a looser, last-resort classifier for messages bubbling up from
// opaque validation code that never attached structured identity; it must
// never be used for platform-level failures (Classify handles those).
func ClassifyMessage(msg string) Kind {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "permission"):
		return KindPermissionDenied
	case strings.Contains(lower, "not found"), strings.Contains(lower, "no such"):
		return KindNotFound
	case strings.Contains(lower, "not supported"), strings.Contains(lower, "unsupported"):
		return KindUnsupported
	default:
		return KindAccessDenied
	}
}
