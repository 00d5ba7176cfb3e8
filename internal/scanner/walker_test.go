// internal/scanner/walker_test.go
package scanner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piclens/piclens/internal/access"
	"github.com/piclens/piclens/internal/model"
	"github.com/piclens/piclens/internal/source"
	"github.com/piclens/piclens/internal/source/native"
)

func writeFile(t *testing.T, root string, rel string, modified time.Time) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !modified.IsZero() {
		if err := os.Chtimes(full, modified, modified); err != nil {
			t.Fatal(err)
		}
	}
}

func openDir(t *testing.T, dir string) source.Handle {
	t.Helper()
	h, err := native.New().Open(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func relPaths(files []model.ImageFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalker_FiltersToImages(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.jpg", time.Time{})
	writeFile(t, tmpDir, "b.PNG", time.Time{})
	writeFile(t, tmpDir, "c.webp", time.Time{})
	writeFile(t, tmpDir, "notes.txt", time.Time{})
	writeFile(t, tmpDir, "noext", time.Time{})

	w := NewWalker(0, nil)
	res, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(res.Files) != 3 {
		t.Errorf("found %d files, want 3: %v", len(res.Files), relPaths(res.Files))
	}
	for _, f := range res.Files {
		if f.Name == "notes.txt" || f.Name == "noext" {
			t.Errorf("non-image %q leaked into listing", f.Name)
		}
	}
}

func TestWalker_DefaultOrderNewestFirst(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "zebra.jpg", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	writeFile(t, tmpDir, "apple.jpg", time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC))
	writeFile(t, tmpDir, "banana.jpg", time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))
	writeFile(t, tmpDir, "notes.txt", time.Time{})

	w := NewWalker(0, nil)
	res, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"apple.jpg", "banana.jpg", "zebra.jpg"}
	got := relPaths(res.Files)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalker_RecursiveRelPath(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a/b.jpg", time.Time{})
	writeFile(t, tmpDir, "a/c/d.gif", time.Time{})
	writeFile(t, tmpDir, "top.png", time.Time{})

	w := NewWalker(0, nil)
	res, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := map[string]bool{}
	for _, f := range res.Files {
		got[f.RelPath] = true
	}
	for _, want := range []string{"a/b.jpg", "a/c/d.gif", "top.png"} {
		if !got[want] {
			t.Errorf("missing relative path %q in %v", want, relPaths(res.Files))
		}
	}
}

func TestWalker_RespectsMaxDepth(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "shallow.jpg", time.Time{})
	writeFile(t, tmpDir, "a/b/c/deep.jpg", time.Time{})

	w := NewWalker(2, nil)
	res, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(res.Files) != 1 || res.Files[0].RelPath != "shallow.jpg" {
		t.Errorf("files = %v, want only shallow.jpg", relPaths(res.Files))
	}

	var depthSkip bool
	for _, s := range res.Skipped {
		if errors.Is(s.Err, ErrMaxDepth) {
			depthSkip = true
		}
	}
	if !depthSkip {
		t.Error("depth-bounded subtree should be recorded in Skipped")
	}
}

func TestWalker_RescanIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a/x.jpg", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC))
	writeFile(t, tmpDir, "y.jpg", time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC))

	w := NewWalker(0, nil)
	first, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Scan(context.Background(), openDir(t, tmpDir))
	if err != nil {
		t.Fatal(err)
	}

	a, b := relPaths(first.Files), relPaths(second.Files)
	if len(a) != len(b) {
		t.Fatalf("listing size changed between scans: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("rescan order diverged at %d: %q vs %q", i, a[i], b[i])
		}
	}
}

func TestWalker_Cancellation(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, "a.jpg", time.Time{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWalker(0, nil)
	_, err := w.Scan(ctx, openDir(t, tmpDir))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

// Fakes for failure injection: a real filesystem can't be made to fail a
// single entry on demand.

type fakeHandle struct {
	name    string
	entries []source.Entry
	err     error
}

func (h *fakeHandle) Name() string { return h.name }
func (h *fakeHandle) Close() error { return nil }
func (h *fakeHandle) Entries(ctx context.Context) ([]source.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.entries, h.err
}

type fakeEntry struct {
	name    string
	dir     *fakeHandle
	dirErr  error
	file    model.ImageFile
	fileErr error
}

func (e *fakeEntry) Name() string { return e.name }
func (e *fakeEntry) IsDir() bool  { return e.dir != nil || e.dirErr != nil }
func (e *fakeEntry) Dir(context.Context) (source.Handle, error) {
	return e.dir, e.dirErr
}
func (e *fakeEntry) File(context.Context) (model.ImageFile, error) {
	return e.file, e.fileErr
}

func TestWalker_SkipsFailingEntries(t *testing.T) {
	root := &fakeHandle{
		name: "photos",
		entries: []source.Entry{
			&fakeEntry{name: "good.jpg", file: model.ImageFile{Name: "good.jpg"}},
			&fakeEntry{name: "gone.jpg", fileErr: errors.New("entry disappeared")},
			&fakeEntry{name: "also-good.png", file: model.ImageFile{Name: "also-good.png"}},
		},
	}

	w := NewWalker(0, nil)
	res, err := w.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v, want partial success", err)
	}

	if len(res.Files) != 2 {
		t.Errorf("got %d files, want 2: %v", len(res.Files), relPaths(res.Files))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Path != "gone.jpg" {
		t.Errorf("Skipped = %+v, want one entry for gone.jpg", res.Skipped)
	}
}

func TestWalker_SkipsFailingSubtree(t *testing.T) {
	root := &fakeHandle{
		name: "photos",
		entries: []source.Entry{
			&fakeEntry{name: "locked", dirErr: errors.New("permission revoked")},
			&fakeEntry{name: "broken", dir: &fakeHandle{name: "broken", err: errors.New("unreadable")}},
			&fakeEntry{name: "ok.jpg", file: model.ImageFile{Name: "ok.jpg"}},
		},
	}

	w := NewWalker(0, nil)
	res, err := w.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v, want sibling to survive", err)
	}

	if len(res.Files) != 1 || res.Files[0].RelPath != "ok.jpg" {
		t.Errorf("files = %v, want [ok.jpg]", relPaths(res.Files))
	}
	if len(res.Skipped) != 2 {
		t.Errorf("Skipped = %+v, want two subtree skips", res.Skipped)
	}
}

func TestWalker_RootFailureIsFatal(t *testing.T) {
	root := &fakeHandle{name: "photos", err: errors.New("enumeration failed")}

	w := NewWalker(0, nil)
	_, err := w.Scan(context.Background(), root)
	if err == nil {
		t.Fatal("Scan() should fail when the root cannot be enumerated")
	}
	if !errors.Is(err, &access.Error{Kind: access.KindScanFailed}) {
		t.Errorf("Scan() error = %v, want scan-failed kind", err)
	}
}
