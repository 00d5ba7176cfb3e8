// internal/imagemeta/meta.go

// Package imagemeta holds the stateless helpers around image files: the
// supported-format table, dimension probing, and display-size math.
package imagemeta

import (
	"image"
	"io"
	"path"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// mimeByExt is the closed set of supported image formats. Extension matching
// is case-insensitive and exact.
var mimeByExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Supported reports whether name has one of the supported image extensions.
func Supported(name string) bool {
	_, ok := mimeByExt[strings.ToLower(path.Ext(name))]
	return ok
}

// MIME returns the content type for name, or "application/octet-stream" for
// anything outside the supported set.
func MIME(name string) string {
	if m, ok := mimeByExt[strings.ToLower(path.Ext(name))]; ok {
		return m
	}
	return "application/octet-stream"
}

// Dimensions decodes just the header of an image stream and returns its pixel
// size and format name ("jpeg", "png", "gif", "webp").
func Dimensions(r io.Reader) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, "", err
	}
	return cfg.Width, cfg.Height, format, nil
}

// FitTo scales (w, h) down to fit within (maxW, maxH) preserving aspect
// ratio. Images already inside the box are returned unchanged.
func FitTo(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	if w <= maxW && h <= maxH {
		return w, h
	}
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	fw := int(float64(w) * scale)
	fh := int(float64(h) * scale)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	return fw, fh
}
