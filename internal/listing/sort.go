// internal/listing/sort.go

// Package listing orders scan results for presentation. Name comparison is
// locale-aware and uses Japanese collation, which changes the ordering of
// non-ASCII file names compared to plain byte comparison.
package listing

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/piclens/piclens/internal/model"
)

type Key int

const (
	KeyName Key = iota
	KeyModifiedAt
)

type Direction int

const (
	Asc Direction = iota
	Desc
)

// Spec is the active sort configuration. Pure value, never persisted.
type Spec struct {
	Key       Key
	Direction Direction
}

// DefaultSpec is the order applied after every scan: newest first.
func DefaultSpec() Spec {
	return Spec{Key: KeyModifiedAt, Direction: Desc}
}

// Select returns the spec after the user picks key: re-selecting the active
// key flips direction, a new key resets to ascending.
func (s Spec) Select(key Key) Spec {
	if s.Key == key {
		if s.Direction == Asc {
			return Spec{Key: key, Direction: Desc}
		}
		return Spec{Key: key, Direction: Asc}
	}
	return Spec{Key: key, Direction: Asc}
}

// Default assembles a freshly scanned batch into presentation order:
// stable sort by modification time, newest first. Ties keep discovery order.
func Default(files []model.ImageFile) []model.ImageFile {
	return Sort(files, DefaultSpec())
}

// Sort returns a new slice ordered by spec; the input is left untouched.
// Direction inverts the comparator's sign rather than swapping arguments,
// so the ordering stays transitive.
func Sort(files []model.ImageFile, spec Spec) []model.ImageFile {
	out := make([]model.ImageFile, len(files))
	copy(out, files)

	cmp := comparator(spec.Key)
	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sign*cmp(&out[i], &out[j]) < 0
	})
	return out
}

func comparator(key Key) func(a, b *model.ImageFile) int {
	switch key {
	case KeyName:
		c := collate.New(language.Japanese)
		return func(a, b *model.ImageFile) int {
			return c.CompareString(a.Name, b.Name)
		}
	default:
		return func(a, b *model.ImageFile) int {
			switch {
			case a.ModifiedAt.Before(b.ModifiedAt):
				return -1
			case a.ModifiedAt.After(b.ModifiedAt):
				return 1
			}
			return 0
		}
	}
}
