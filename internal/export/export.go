// Package export reads pictures from images and writes them as PNG or PDF.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/render"
)

// Format is an output file format.
type Format string

const (
	PNG Format = "png"
	PDF Format = "pdf"
)

// FormatOf picks the format from the file extension; anything that is not
// .pdf is PNG.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDF
	}
	return PNG
}

// DecodePNG reads a PNG and samples it into a picture no larger than limit.
func DecodePNG(r io.Reader, limit image.Point) (*picture.Picture, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return picture.FromImage(img, limit)
}

// LoadPNG opens path and decodes it with DecodePNG.
func LoadPNG(path string, limit image.Point) (*picture.Picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	p, err := DecodePNG(f, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// EncodePNG writes p with each cell scale pixels wide.
func EncodePNG(w io.Writer, p *picture.Picture, scale int) error {
	if err := png.Encode(w, render.Picture(p, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNGSize reads the dimensions of the PNG at path without decoding it.
func PNGSize(path string) (image.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Point{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return image.Point{}, fmt.Errorf("%s: decode png: %w", path, err)
	}
	return image.Pt(cfg.Width, cfg.Height), nil
}

// Save writes p to path in the format its extension names. scale is pixels
// per cell for PNG and millimetres per cell for PDF. The file is written
// next to path and renamed into place, so a failed save leaves any existing
// file untouched.
func Save(path string, p *picture.Picture, scale int) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	tmp := f.Name()
	switch FormatOf(path) {
	case PDF:
		err = EncodePDF(f, p, PDFOptions{CellSize: float64(scale), Title: filepath.Base(path)})
	default:
		err = EncodePNG(f, p, scale)
	}
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	if err == nil {
		err = os.Chmod(tmp, 0o644)
	}
	if err == nil {
		if rerr := os.Rename(tmp, path); rerr != nil {
			err = fmt.Errorf("rename %s: %w", path, rerr)
		}
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
