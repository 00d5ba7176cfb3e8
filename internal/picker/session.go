// internal/picker/session.go

// Package picker implements the directory grant flow: probe the environment
// for a chooser capability, run it, and hand back an opaque handle for the
// granted directory. User cancellation is a normal outcome, never an error.
package picker

import (
	"context"
	"errors"
	"sync"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/source"
)

// ErrAborted is the chooser's structured cancellation signal.
var ErrAborted = errors.New("directory choice aborted")

// Chooser presents the platform's directory picker.
type Chooser interface {
	// Supported reports whether the chooser can run at all.
	Supported() bool

	// Pick returns the chosen directory location, ErrAborted if the user
	// backed out, or a platform error.
	Pick(ctx context.Context) (string, error)
}

// Grant is one successful directory selection.
type Grant struct {
	Name   string
	Handle source.Handle
}

// Session owns the grant flow for one UI session. Sessions are independent:
// two sessions never share a current grant, so tests and concurrent UIs do
// not interfere.
type Session struct {
	src     source.Source
	chooser Chooser

	mu      sync.Mutex
	current *Grant
}

func NewSession(src source.Source, chooser Chooser) *Session {
	return &Session{src: src, chooser: chooser}
}

// Supported re-probes the capability. Not cached: the answer can change
// between calls, and the grant flow checks it on every attempt.
func (s *Session) Supported() bool {
	return s.src.Supported() && s.chooser.Supported()
}

// SelectDirectory runs the chooser and opens the chosen directory.
// Returns (nil, nil) when the user cancels. On success the grant replaces
// the session's current one, which is closed.
func (s *Session) SelectDirectory(ctx context.Context) (*Grant, error) {
	if !s.Supported() {
		return nil, access.Unsupported("directory selection")
	}

	location, err := s.chooser.Pick(ctx)
	if err != nil {
		if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
			return nil, nil
		}
		return nil, access.Classify(err)
	}

	handle, err := s.src.Open(ctx, location)
	if err != nil {
		return nil, access.Classify(err)
	}

	grant := &Grant{Name: handle.Name(), Handle: handle}

	s.mu.Lock()
	prev := s.current
	s.current = grant
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Handle.Close()
	}
	return grant, nil
}

// Current returns the last successful grant, or nil before any.
func (s *Session) Current() *Grant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close releases the current grant, if any.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	err := s.current.Handle.Close()
	s.current = nil
	return err
}
