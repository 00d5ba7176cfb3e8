// internal/source/httpapi/httpapi.go

// Package httpapi backs directory handles with the dev image server instead
// of real filesystem access. The scanner output is shaped identically either
// way; the server pre-flattens the tree, so entry names may contain '/'.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/piclens/piclens/internal/model"
	"github.com/piclens/piclens/internal/source"
)

type Source struct {
	base   string
	client *http.Client
}

func New(base string) *Source {
	return &Source{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Supported is true whenever a base URL is configured; reachability is
// reported through Open instead, where it can carry a cause.
func (s *Source) Supported() bool {
	return s.base != ""
}

// Open fetches the full listing. The location argument is unused: the server
// decides which directory it exposes.
func (s *Source) Open(ctx context.Context, _ string) (source.Handle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/api/images", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image server returned %s", resp.Status)
	}

	var payload struct {
		Files []struct {
			Name         string `json:"name"`
			Size         int64  `json:"size"`
			LastModified int64  `json:"lastModified"`
			URL          string `json:"url"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	h := &handle{name: s.nameFromBase()}
	for _, f := range payload.Files {
		h.entries = append(h.entries, &entry{
			client: s.client,
			name:   f.Name,
			size:   f.Size,
			mod:    time.UnixMilli(f.LastModified),
			url:    s.base + f.URL,
		})
	}
	return h, nil
}

func (s *Source) nameFromBase() string {
	if u, err := url.Parse(s.base); err == nil && u.Host != "" {
		return u.Host
	}
	return s.base
}

type handle struct {
	name    string
	entries []source.Entry
}

func (h *handle) Name() string { return h.name }
func (h *handle) Close() error { return nil }

func (h *handle) Entries(ctx context.Context) ([]source.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.entries, nil
}

type entry struct {
	client *http.Client
	name   string
	size   int64
	mod    time.Time
	url    string
}

func (e *entry) Name() string { return e.name }

// IsDir is always false: the server flattens subdirectories into the names.
func (e *entry) IsDir() bool { return false }

func (e *entry) Dir(context.Context) (source.Handle, error) {
	return nil, fmt.Errorf("%s is not a directory", e.name)
}

func (e *entry) File(ctx context.Context) (model.ImageFile, error) {
	if err := ctx.Err(); err != nil {
		return model.ImageFile{}, err
	}

	client, fileURL := e.client, e.url
	return model.ImageFile{
		Name:       path.Base(e.name),
		Size:       e.size,
		ModifiedAt: e.mod,
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
			if err != nil {
				return nil, err
			}
			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("image server returned %s", resp.Status)
			}
			return resp.Body, nil
		},
	}, nil
}
