// Package config loads and writes the TOML configuration file.
package config

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/example/pixelart/internal/picture"
)

// Notify holds notification settings.
type Notify struct {
	Save   bool `toml:"save"`
	Copy   bool `toml:"copy"`
	Export bool `toml:"export"`
}

// Palette is a palette defined inline in the config file. Entries are
// colours, optionally labelled as "Label: #rrggbb".
type Palette struct {
	Colors []string `toml:"colors"`
}

// Config holds the application configuration.
type Config struct {
	Width        int                `toml:"width"`
	Height       int                `toml:"height"`
	Background   string             `toml:"background"`
	Color        string             `toml:"color"`
	Tool         string             `toml:"tool"`
	Scale        int                `toml:"scale"`
	MaxImport    int                `toml:"max_import"`
	UndoWindowMS int                `toml:"undo_window_ms"`
	HistoryLimit int                `toml:"history_limit"`
	SaveDir      string             `toml:"save_dir,omitempty"`
	Palette      string             `toml:"palette,omitempty"`
	Notify       Notify             `toml:"notify"`
	Palettes     map[string]Palette `toml:"palettes,omitempty"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		Width:        60,
		Height:       30,
		Background:   "#f0f0f0",
		Color:        "#010101",
		Tool:         "draw",
		Scale:        10,
		MaxImport:    100,
		UndoWindowMS: 1000,
		Palettes:     make(map[string]Palette),
	}
}

// Validate checks every value and names the first bad key.
func (c *Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("width: must be positive, got %d", c.Width)
	}
	if c.Height <= 0 {
		return fmt.Errorf("height: must be positive, got %d", c.Height)
	}
	if _, err := picture.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := picture.ParseColor(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if c.Tool == "" {
		return fmt.Errorf("tool: cannot be empty")
	}
	if c.Scale <= 0 {
		return fmt.Errorf("scale: must be positive, got %d", c.Scale)
	}
	if c.MaxImport <= 0 {
		return fmt.Errorf("max_import: must be positive, got %d", c.MaxImport)
	}
	if c.UndoWindowMS < 0 {
		return fmt.Errorf("undo_window_ms: cannot be negative, got %d", c.UndoWindowMS)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit: cannot be negative, got %d", c.HistoryLimit)
	}
	return nil
}

// BackgroundColor returns the parsed background. Call Validate first.
func (c *Config) BackgroundColor() picture.Color {
	col, _ := picture.ParseColor(c.Background)
	return col
}

// InkColor returns the parsed drawing colour. Call Validate first.
func (c *Config) InkColor() picture.Color {
	col, _ := picture.ParseColor(c.Color)
	return col
}

// UndoWindow returns undo_window_ms as a duration.
func (c *Config) UndoWindow() time.Duration {
	return time.Duration(c.UndoWindowMS) * time.Millisecond
}

// MaxImportSize returns the import clamp as a size.
func (c *Config) MaxImportSize() image.Point {
	return image.Pt(c.MaxImport, c.MaxImport)
}

// String implements fmt.Stringer and returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("# encode config: %v\n", err)
	}
	return buf.String()
}
