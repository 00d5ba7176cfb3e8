// internal/server/server.go

// Package server is the development-only HTTP shim: it exposes a local
// directory's image listing as JSON plus raw file bytes, so the HTTP-backed
// source can stand in for a real directory grant.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/piclens/piclens/internal/imagemeta"
	"github.com/piclens/piclens/internal/scanner"
	"github.com/piclens/piclens/internal/source/native"
)

// FileEntry is the wire shape of one listed image. LastModified is epoch
// milliseconds; Name is the '/'-separated path from the served root.
type FileEntry struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	LastModified int64  `json:"lastModified"`
	URL          string `json:"url"`
}

type listResponse struct {
	Files []FileEntry `json:"files"`
}

type Server struct {
	dir    string
	walker *scanner.Walker
	log    *slog.Logger
}

func New(dir string, maxDepth int, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		dir:    dir,
		walker: scanner.NewWalker(maxDepth, log),
		log:    log,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/images", s.handleList)
	r.Get("/api/images/file/*", s.handleFile)
	return r
}

// Start runs the shim until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	s.log.Info("dev image server listening", "addr", addr, "dir", s.dir)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return <-errCh
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	handle, err := native.New().Open(r.Context(), s.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer handle.Close()

	res, err := s.walker.Scan(r.Context(), handle)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := listResponse{Files: make([]FileEntry, 0, len(res.Files))}
	for _, f := range res.Files {
		resp.Files = append(resp.Files, FileEntry{
			Name:         f.RelPath,
			Size:         f.Size,
			LastModified: f.ModifiedAt.UnixMilli(),
			URL:          "/api/images/file/" + f.RelPath,
		})
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("encode listing", "error", err)
	}
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := chi.URLParam(r, "*")
	if rel == "" || !imagemeta.Supported(rel) {
		http.NotFound(w, r)
		return
	}

	// os.Root confines the open to the served directory, so a crafted path
	// cannot traverse out of it.
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer root.Close()

	f, err := root.Open(rel)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", imagemeta.MIME(rel))
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
