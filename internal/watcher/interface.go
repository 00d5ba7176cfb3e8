// internal/watcher/interface.go

// Package watcher forward-declares directory change notification. The
// interface exists so callers can wire it today, but live watching is
// unsupported and every implementation fails predictably.
package watcher

import "time"

type Event struct {
	Path string
	Time time.Time
}

type DirWatcher interface {
	Events() <-chan Event
	Watch(path string) error
	Unwatch(path string) error
	Close() error
}
