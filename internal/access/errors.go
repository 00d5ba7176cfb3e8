// internal/access/errors.go

// Package access defines the closed error taxonomy for directory access and
// scanning. Every failure surfaced to the UI layer is one of these kinds;
// user cancellation is deliberately not among them.
package access

import "fmt"

type Kind int

const (
	// KindAccessDenied is a generic failure opening or reading the chosen
	// root. Retryable by picking again.
	KindAccessDenied Kind = iota

	// KindNotFound means the chosen root no longer exists.
	KindNotFound

	// KindScanFailed means the root-level enumeration itself failed.
	KindScanFailed

	// KindPermissionDenied means the platform explicitly refused access.
	// The user has to change permissions before a retry can succeed.
	KindPermissionDenied

	// KindUnsupported means the host environment lacks the capability
	// entirely. Not retryable; callers should offer a fallback.
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindAccessDenied:
		return "access_denied"
	case KindNotFound:
		return "not_found"
	case KindScanFailed:
		return "scan_failed"
	case KindPermissionDenied:
		return "permission_denied"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Error is a classified directory-access failure. Message is ready for
// display; Cause keeps the underlying platform error for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Retryable reports whether re-running the grant flow can plausibly succeed
// without the user changing anything outside the app.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindAccessDenied, KindNotFound, KindScanFailed:
		return true
	}
	return false
}

// Is makes errors.Is match any *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func Denied(cause error) *Error {
	return &Error{Kind: KindAccessDenied, Message: "could not access the selected directory", Cause: cause}
}

func NotFound(cause error) *Error {
	return &Error{Kind: KindNotFound, Message: "the selected directory no longer exists", Cause: cause}
}

func ScanFailed(cause error) *Error {
	return &Error{Kind: KindScanFailed, Message: "failed to scan the selected directory", Cause: cause}
}

func PermissionDenied(cause error) *Error {
	return &Error{Kind: KindPermissionDenied, Message: "permission to read the directory was denied", Cause: cause}
}

func Unsupported(what string) *Error {
	return &Error{Kind: KindUnsupported, Message: what + " is not supported in this environment"}
}
