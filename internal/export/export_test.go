package export

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/pixelart/internal/picture"
)

func sample(t *testing.T) *picture.Picture {
	t.Helper()
	p, err := picture.Empty(5, 4, "#f0f0f0")
	if err != nil {
		t.Fatal(err)
	}
	return p.Draw(
		picture.CellEdit{X: 0, Y: 0, Color: "#010101"},
		picture.CellEdit{X: 4, Y: 3, Color: "#ff8800"},
	)
}

func TestPNGRoundTripAtScaleOne(t *testing.T) {
	p := sample(t)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, p, 1); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	got, err := DecodePNG(&buf, picture.DefaultMaxImport)
	if err != nil {
		t.Fatalf("DecodePNG: %v", err)
	}
	if !got.Equal(p) {
		t.Fatal("picture changed through PNG")
	}
}

func TestDecodeClamps(t *testing.T) {
	p := sample(t)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, p, 1); err != nil {
		t.Fatal(err)
	}
	got, err := DecodePNG(&buf, image.Pt(3, 2))
	if err != nil {
		t.Fatal(err)
	}
	if got.Width() != 3 || got.Height() != 2 || got.At(0, 0) != "#010101" {
		t.Fatalf("got %dx%d", got.Width(), got.Height())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	p := sample(t)
	path := filepath.Join(dir, "art.png")
	if err := Save(path, p, 1); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadPNG(path, picture.DefaultMaxImport)
	if err != nil {
		t.Fatalf("LoadPNG: %v", err)
	}
	if !got.Equal(p) {
		t.Fatal("loaded picture differs")
	}

	big := filepath.Join(dir, "big.png")
	if err := Save(big, p, 3); err != nil {
		t.Fatal(err)
	}
	scaled, err := LoadPNG(big, image.Point{})
	if err != nil {
		t.Fatal(err)
	}
	if scaled.Width() != 15 || scaled.Height() != 12 {
		t.Fatalf("scaled size %dx%d", scaled.Width(), scaled.Height())
	}
}

func TestSavePDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.PDF")
	if FormatOf(path) != PDF {
		t.Fatalf("FormatOf(%q) = %q", path, FormatOf(path))
	}
	if err := Save(path, sample(t), 4); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", data[:min(len(data), 16)])
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := LoadPNG(filepath.Join(t.TempDir(), "nope.png"), picture.DefaultMaxImport); err == nil {
		t.Fatal("expected error")
	}
}

func TestSaveReplacesWithoutLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "art.png")
	if err := Save(path, sample(t), 1); err != nil {
		t.Fatal(err)
	}
	next := sample(t).Draw(picture.CellEdit{X: 2, Y: 2, Color: "#00ff00"})
	if err := Save(path, next, 1); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := LoadPNG(path, picture.DefaultMaxImport)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(next) {
		t.Fatal("overwritten picture differs")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory holds %d entries, want 1", len(entries))
	}
}

func TestSaveFailureKeepsTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "art.png")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	keep := filepath.Join(target, "keep")
	if err := os.WriteFile(keep, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Save(target, sample(t), 1); err == nil {
		t.Fatal("expected error replacing a directory")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Fatalf("target damaged: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("temporary file left behind: %d entries", len(entries))
	}
}

func TestPNGSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "art.png")
	if err := Save(path, sample(t), 2); err != nil {
		t.Fatal(err)
	}
	size, err := PNGSize(path)
	if err != nil {
		t.Fatalf("PNGSize: %v", err)
	}
	if size != image.Pt(10, 8) {
		t.Fatalf("size %v", size)
	}
}
