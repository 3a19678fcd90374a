package palette

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/example/pixelart/internal/picture"
)

// Parse reads a palette with one "Label: colour" entry per line. Blank
// lines and lines starting with "//" or "# " are skipped.
func Parse(name string, r io.Reader) (*Palette, error) {
	p := &Palette{Name: name}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") || line == "#" || strings.HasPrefix(line, "# ") {
			continue
		}
		sw, err := parseEntry(line)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, lineNo, err)
		}
		p.Swatches = append(p.Swatches, sw)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(p.Swatches) == 0 {
		return nil, fmt.Errorf("palette %s has no colours", name)
	}
	return p, nil
}

// FromList builds a palette from config entries, each "colour" or
// "Label: colour".
func FromList(name string, entries []string) (*Palette, error) {
	p := &Palette{Name: name}
	for i, e := range entries {
		sw, err := parseEntry(strings.TrimSpace(e))
		if err != nil {
			return nil, fmt.Errorf("palette %s entry %d: %w", name, i+1, err)
		}
		p.Swatches = append(p.Swatches, sw)
	}
	if len(p.Swatches) == 0 {
		return nil, fmt.Errorf("palette %s has no colours", name)
	}
	return p, nil
}

func parseEntry(s string) (Swatch, error) {
	label, value, ok := strings.Cut(s, ":")
	if !ok {
		label, value = "", s
	}
	c, err := picture.ParseColor(value)
	if err != nil {
		return Swatch{}, err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = c.String()
	}
	return Swatch{Name: label, Color: c}, nil
}
