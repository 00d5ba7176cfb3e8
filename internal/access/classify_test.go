// internal/access/classify_test.go
package access

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "permission sentinel",
			err:  fs.ErrPermission,
			want: KindPermissionDenied,
		},
		{
			name: "wrapped permission sentinel",
			err:  fmt.Errorf("open /x: %w", fs.ErrPermission),
			want: KindPermissionDenied,
		},
		{
			name: "not-exist sentinel",
			err:  fmt.Errorf("open /x: %w", fs.ErrNotExist),
			want: KindNotFound,
		},
		{
			name: "unknown error falls back to denied",
			err:  errors.New("disk on fire"),
			want: KindAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Errorf("Classify() kind = %v, want %v", got.Kind, tt.want)
			}
			if got.Message == "" {
				t.Error("Classify() produced empty display message")
			}
		})
	}
}

func TestClassify_PassesThroughClassified(t *testing.T) {
	orig := ScanFailed(errors.New("boom"))
	got := Classify(fmt.Errorf("scan: %w", orig))
	if got != orig {
		t.Errorf("Classify() rewrapped an already-classified error")
	}
}

func TestClassify_Deterministic(t *testing.T) {
	// Same sentinel, different message text, same kind.
	a := Classify(fmt.Errorf("reading photos: %w", fs.ErrPermission))
	b := Classify(fmt.Errorf("something else entirely: %w", fs.ErrPermission))
	if a.Kind != b.Kind {
		t.Errorf("Classify() not deterministic: %v vs %v", a.Kind, b.Kind)
	}
}

func TestClassifyMessage(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"Permission denied by policy", KindPermissionDenied},
		{"directory not found", KindNotFound},
		{"no such file or directory", KindNotFound},
		{"watching is not supported here", KindUnsupported},
		{"something broke", KindAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			if got := ClassifyMessage(tt.msg); got != tt.want {
				t.Errorf("ClassifyMessage(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want bool
	}{
		{"access denied", Denied(nil), true},
		{"not found", NotFound(nil), true},
		{"scan failed", ScanFailed(nil), true},
		{"permission denied", PermissionDenied(nil), false},
		{"unsupported", Unsupported("directory watching"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Retryable(); got != tt.want {
				t.Errorf("Retryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", PermissionDenied(errors.New("EACCES")))
	if !errors.Is(err, &Error{Kind: KindPermissionDenied}) {
		t.Error("errors.Is should match on Kind")
	}
	if errors.Is(err, &Error{Kind: KindNotFound}) {
		t.Error("errors.Is should not match a different Kind")
	}
}
