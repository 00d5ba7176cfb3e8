// internal/watcher/stub.go
package watcher

import "github.com/piclens/piclens/internal/access"

// Stub is the only DirWatcher. Watch and Unwatch always fail with the
// unsupported error; Events never delivers.
type Stub struct {
	events chan Event
}

func NewStub() *Stub {
	return &Stub{events: make(chan Event)}
}

func (s *Stub) Events() <-chan Event {
	return s.events
}

func (s *Stub) Watch(path string) error {
	return access.Unsupported("directory watching")
}

func (s *Stub) Unwatch(path string) error {
	return access.Unsupported("directory watching")
}

func (s *Stub) Close() error {
	close(s.events)
	return nil
}
