package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/example/pixelart/internal/picture"
)

func TestPictureScales(t *testing.T) {
	p, _ := picture.Empty(3, 2, "#ffffff")
	p = p.Draw(picture.CellEdit{X: 1, Y: 1, Color: "#ff0000"})
	img := Picture(p, 4)
	if !img.Bounds().Eq(image.Rect(0, 0, 12, 8)) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	red := color.RGBA{R: 255, A: 255}
	for _, pt := range []image.Point{{4, 4}, {7, 7}, {5, 6}} {
		if got := img.RGBAAt(pt.X, pt.Y); got != red {
			t.Fatalf("pixel %v = %v, want red", pt, got)
		}
	}
	if got := img.RGBAAt(3, 4); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel (3,4) = %v, want white", got)
	}
	if got := img.RGBAAt(8, 4); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("pixel (8,4) = %v, want white", got)
	}
}

func TestDeltaTouchesOnlyChangedCells(t *testing.T) {
	prev, _ := picture.Empty(4, 4, "#000000")
	next := prev.Draw(picture.CellEdit{X: 2, Y: 3, Color: "#00ff00"})
	dst := Picture(prev, 2)
	// poison a cell that did not change; Delta must leave it alone
	dst.SetRGBA(0, 0, color.RGBA{B: 255, A: 255})

	dirty := Delta(dst, image.Point{}, prev, next, 2)
	if len(dirty) != 1 || !dirty[0].Eq(image.Rect(4, 6, 6, 8)) {
		t.Fatalf("dirty = %v", dirty)
	}
	if got := dst.RGBAAt(5, 7); got != (color.RGBA{G: 255, A: 255}) {
		t.Fatalf("changed cell = %v", got)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatal("unchanged cell was repainted")
	}
}

func TestDeltaRepaintsOnResize(t *testing.T) {
	prev, _ := picture.Empty(2, 2, "#000000")
	next, _ := picture.Empty(3, 3, "#ffffff")
	dst := image.NewRGBA(image.Rect(0, 0, 30, 30))
	dirty := Delta(dst, image.Pt(1, 1), prev, next, 3)
	if len(dirty) != 1 || !dirty[0].Eq(image.Rect(1, 1, 10, 10)) {
		t.Fatalf("dirty = %v", dirty)
	}
	if got := dst.RGBAAt(9, 9); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("corner = %v", got)
	}
}

func TestCellAt(t *testing.T) {
	origin := image.Pt(10, 20)
	if got := CellAt(origin, image.Pt(10, 20), 5); got != image.Pt(0, 0) {
		t.Fatalf("CellAt = %v", got)
	}
	if got := CellAt(origin, image.Pt(24, 31), 5); got != image.Pt(2, 2) {
		t.Fatalf("CellAt = %v", got)
	}
	if got := CellAt(origin, image.Pt(9, 19), 5); got != image.Pt(-1, -1) {
		t.Fatalf("CellAt = %v", got)
	}
}

func TestDrawGrid(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	line := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	DrawGrid(dst, image.Point{}, 2, 2, 2, line)
	if dst.RGBAAt(0, 0).A != 0 {
		t.Fatal("grid drawn below the minimum scale")
	}
	DrawGrid(dst, image.Point{}, 2, 2, 10, line)
	if dst.RGBAAt(10, 5) != line || dst.RGBAAt(5, 20) != line {
		t.Fatal("grid line missing")
	}
	if dst.RGBAAt(5, 5).A != 0 {
		t.Fatal("grid painted inside a cell")
	}
}
