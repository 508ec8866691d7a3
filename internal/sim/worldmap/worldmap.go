// Package worldmap loads the read-only soil/grass bitmap the host's map
// loader produces (spec.md §6: a flat row-major array of booleans named
// is_soil_{width}_{height}.bin). Loading it is an out-of-scope "external
// collaborator" per spec.md §1; this package only provides the minimal
// reader the engine needs when it is handed a map by name rather than an
// already-decoded slice.
package worldmap

import (
	"fmt"
	"os"
)

// Grid is a read-only width*height soil/grass bitmap, row-major.
type Grid struct {
	Width  int
	Height int
	IsSoil []bool
}

// At reports whether (r, c) is soil. Callers are expected to have already
// wrapped r, c toroidally.
func (g *Grid) At(r, c int) bool {
	return g.IsSoil[r*g.Width+c]
}

// FromBytes decodes a flat row-major byte array (one byte per cell, any
// non-zero byte meaning soil) into a Grid, matching the on-disk layout
// produced by resources/map_builder.py's `is_soild.tobytes()`.
func FromBytes(width, height int, raw []byte) (*Grid, error) {
	want := width * height
	if len(raw) != want {
		return nil, fmt.Errorf("worldmap: expected %d bytes for %dx%d map, got %d", want, width, height, len(raw))
	}
	soil := make([]bool, want)
	for i, b := range raw {
		soil[i] = b != 0
	}
	return &Grid{Width: width, Height: height, IsSoil: soil}, nil
}

// Load reads a map file named is_soil_{width}_{height}.bin from dir.
// Failure to load is a hard init error per spec.md §6.
func Load(dir string, width, height int) (*Grid, error) {
	path := fmt.Sprintf("%s/is_soil_%d_%d.bin", dir, width, height)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldmap: reading %s: %w", path, err)
	}
	return FromBytes(width, height, raw)
}

// Blank returns a Grid with every cell set to soil, useful for tests and for
// hosts that have not wired a map loader.
func Blank(width, height int) *Grid {
	soil := make([]bool, width*height)
	for i := range soil {
		soil[i] = true
	}
	return &Grid{Width: width, Height: height, IsSoil: soil}
}
