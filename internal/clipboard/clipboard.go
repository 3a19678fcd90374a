// Package clipboard moves pictures and colours through the system clipboard.
// Pictures travel as PNG, colours as #rrggbb text.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/example/pixelart/internal/export"
	"github.com/example/pixelart/internal/picture"
)

type format int

const (
	formatText format = iota
	formatImage
)

// WritePicture publishes p as a PNG with each cell scale pixels wide.
func WritePicture(p *picture.Picture, scale int) error {
	var buf bytes.Buffer
	if err := export.EncodePNG(&buf, p, scale); err != nil {
		return err
	}
	return writeData(formatImage, buf.Bytes())
}

// ReadPicture decodes the clipboard image into a picture no larger than
// limit.
func ReadPicture(limit image.Point) (*picture.Picture, error) {
	data, err := readData(formatImage)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	p, err := export.DecodePNG(bytes.NewReader(data), limit)
	if err != nil {
		return nil, fmt.Errorf("clipboard image: %w", err)
	}
	return p, nil
}

// WriteColor publishes c as text.
func WriteColor(c picture.Color) error {
	return writeData(formatText, []byte(c.String()))
}

// ReadColor parses the clipboard text as a colour.
func ReadColor() (picture.Color, error) {
	data, err := readData(formatText)
	if err != nil {
		return "", err
	}
	return parseColorText(string(data))
}

func parseColorText(s string) (picture.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	if line, _, ok := strings.Cut(s, "\n"); ok {
		s = strings.TrimSpace(line)
	}
	c, err := picture.ParseColor(s)
	if err != nil {
		return "", fmt.Errorf("clipboard text: %w", err)
	}
	return c, nil
}
