package picture

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a cell colour in #rrggbb form. Two colours are the same cell
// colour exactly when their strings are equal.
type Color string

// ParseColor accepts #rrggbb, #rgb or a CSS colour name and returns the
// normalised lower-case #rrggbb form.
func ParseColor(s string) (Color, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return "", fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return FromRGBA(c), nil
	}
	if !strings.HasPrefix(spec, "#") {
		return "", fmt.Errorf("invalid color %q", s)
	}
	hex := spec[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", fmt.Errorf("invalid color %q", s)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", fmt.Errorf("invalid color %q", s)
	}
	return Color("#" + hex), nil
}

// MustParseColor is ParseColor for constants known to be valid.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// FromRGBA formats the RGB channels of c. Alpha is ignored.
func FromRGBA(c color.RGBA) Color {
	return Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// RGBA decodes the colour into an opaque color.RGBA. Malformed values decode
// to opaque black.
func (c Color) RGBA() color.RGBA {
	s := string(c)
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{A: 255}
	}
	val, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{
		R: uint8(val >> 16),
		G: uint8((val >> 8) & 0xFF),
		B: uint8(val & 0xFF),
		A: 255,
	}
}

func (c Color) String() string { return string(c) }
