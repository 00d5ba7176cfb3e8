// internal/imagemeta/meta_test.go
package imagemeta

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"photo.PNG", true},
		{"anim.gif", true},
		{"modern.webp", true},
		{"notes.txt", false},
		{"archive.jpg.zip", false},
		{"jpg", false}, // no dot, no extension
		{"photo.JPeG", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Supported(tt.name); got != tt.want {
				t.Errorf("Supported(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestMIME(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.png", "image/png"},
		{"a.gif", "image/gif"},
		{"a.webp", "image/webp"},
		{"a.bin", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MIME(tt.name); got != tt.want {
				t.Errorf("MIME(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	w, h, format, err := Dimensions(&buf)
	if err != nil {
		t.Fatalf("Dimensions() error = %v", err)
	}
	if w != 20 || h != 10 {
		t.Errorf("Dimensions() = %dx%d, want 20x10", w, h)
	}
	if format != "png" {
		t.Errorf("format = %q, want %q", format, "png")
	}
}

func TestDimensions_NotAnImage(t *testing.T) {
	if _, _, _, err := Dimensions(bytes.NewReader([]byte("plain text"))); err == nil {
		t.Error("Dimensions() should fail for non-image data")
	}
}

func TestFitTo(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		maxW, maxH     int
		wantW, wantH   int
	}{
		{"fits already", 100, 50, 200, 200, 100, 50},
		{"wide image scaled by width", 400, 200, 200, 200, 200, 100},
		{"tall image scaled by height", 200, 400, 200, 200, 100, 200},
		{"degenerate input", 0, 10, 100, 100, 0, 0},
		{"never below one pixel", 1000, 1, 10, 10, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitTo(tt.w, tt.h, tt.maxW, tt.maxH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitTo(%d, %d, %d, %d) = %dx%d, want %dx%d",
					tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
