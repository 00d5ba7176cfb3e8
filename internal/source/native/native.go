// internal/source/native/native.go

// Package native backs directory handles with the local filesystem. Handles
// wrap os.Root, so a grant cannot be escaped through symlinks and a hostile
// link cycle cannot walk outside the chosen tree.
package native

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/model"
	"github.com/piclens/piclens/internal/source"
)

type Source struct{}

func New() Source {
	return Source{}
}

// Supported is always true for the local filesystem.
func (Source) Supported() bool {
	return true
}

func (Source) Open(ctx context.Context, dir string) (source.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, access.Classify(err)
	}
	return &handle{root: root, name: filepath.Base(dir)}, nil
}

type handle struct {
	root *os.Root
	name string
}

func (h *handle) Name() string {
	return h.name
}

func (h *handle) Close() error {
	return h.root.Close()
}

func (h *handle) Entries(ctx context.Context) ([]source.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := h.root.Open(".")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirents, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]source.Entry, 0, len(dirents))
	for _, d := range dirents {
		entries = append(entries, &entry{root: h.root, dirent: d})
	}
	return entries, nil
}

type entry struct {
	root   *os.Root
	dirent fs.DirEntry
}

func (e *entry) Name() string {
	return e.dirent.Name()
}

func (e *entry) IsDir() bool {
	return e.dirent.IsDir()
}

func (e *entry) Dir(ctx context.Context) (source.Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub, err := e.root.OpenRoot(e.dirent.Name())
	if err != nil {
		return nil, err
	}
	return &handle{root: sub, name: e.dirent.Name()}, nil
}

func (e *entry) File(ctx context.Context) (model.ImageFile, error) {
	if err := ctx.Err(); err != nil {
		return model.ImageFile{}, err
	}

	info, err := e.dirent.Info()
	if err != nil {
		return model.ImageFile{}, err
	}

	root, name := e.root, e.dirent.Name()
	return model.ImageFile{
		Name:       name,
		Size:       info.Size(),
		ModifiedAt: info.ModTime(),
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return root.Open(name)
		},
	}, nil
}
