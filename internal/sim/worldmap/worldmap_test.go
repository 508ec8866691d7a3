package worldmap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromBytesRoundTrip(t *testing.T) {
	raw := []byte{1, 0, 0, 1, 1, 0}
	g, err := FromBytes(3, 2, raw)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !g.At(0, 0) || g.At(0, 1) || g.At(0, 2) {
		t.Fatalf("row 0 decoded wrong: %v", g.IsSoil[0:3])
	}
	if !g.At(1, 0) || !g.At(1, 1) || g.At(1, 2) {
		t.Fatalf("row 1 decoded wrong: %v", g.IsSoil[3:6])
	}
}

func TestFromBytesWrongSize(t *testing.T) {
	if _, err := FromBytes(3, 2, []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for mismatched byte length")
	}
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir, 4, 4); err == nil {
		t.Fatalf("expected error for missing map file")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{1, 1, 0, 0}
	if err := os.WriteFile(filepath.Join(dir, "is_soil_2_2.bin"), raw, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	g, err := Load(dir, 2, 2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !g.At(0, 0) || !g.At(0, 1) || g.At(1, 0) || g.At(1, 1) {
		t.Fatalf("unexpected grid contents: %v", g.IsSoil)
	}
}

func TestBlank(t *testing.T) {
	g := Blank(3, 3)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if !g.At(r, c) {
				t.Fatalf("Blank grid should be all soil at (%d,%d)", r, c)
			}
		}
	}
}
