package main

import (
	"fmt"
	"image"
	"os"

	"github.com/example/pixelart/internal/clipboard"
	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/export"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/tools"
)

// Clipboard access goes through variables so tests can stub it.
var (
	readClipboardPicture  = clipboard.ReadPicture
	writeClipboardPicture = clipboard.WritePicture
	readClipboardColor    = clipboard.ReadColor
	writeClipboardColor   = clipboard.WriteColor
)

func (r *root) importLimit() image.Point {
	if r == nil || r.config == nil {
		return picture.DefaultMaxImport
	}
	return r.config.MaxImportSize()
}

// loadPicture reads the picture a command works on from file or the
// clipboard.
func (r *root) loadPicture(file string, fromClipboard bool) (*picture.Picture, error) {
	if fromClipboard {
		p, err := readClipboardPicture(r.importLimit())
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return p, nil
	}
	p, err := export.LoadPNG(file, r.importLimit())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", file, err)
	}
	return p, nil
}

// cropped reports whether loading file dropped cells beyond the import
// limit, in which case writing p back to file would lose them.
func cropped(file string, p *picture.Picture) bool {
	size, err := export.PNGSize(file)
	if err != nil {
		return false
	}
	return size.X > p.Width() || size.Y > p.Height()
}

// savePicture writes p at one pixel per cell.
func (r *root) savePicture(path string, p *picture.Picture) error {
	if err := export.Save(path, p, 1); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	r.notifySave(path)
	return nil
}

// copyPicture places p on the clipboard.
func (r *root) copyPicture(p *picture.Picture) error {
	if err := writeClipboardPicture(p, 1); err != nil {
		return fmt.Errorf("failed to copy picture to clipboard: %w", err)
	}
	r.notifyCopy(fmt.Sprintf("%dx%d picture", p.Width(), p.Height()))
	return nil
}

// newStore starts an editor on p with the configured tool, colour and
// history settings.
func (r *root) newStore(p *picture.Picture) *editor.Store {
	cfg := r.config
	tool := cfg.Tool
	if _, err := r.registry.Lookup(tool); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v. using %s.\n", err, tools.Draw)
		tool = tools.Draw
	}
	return editor.NewStore(
		editor.NewState(p, tool, cfg.InkColor()),
		editor.WithUndoWindow(cfg.UndoWindow()),
		editor.WithHistoryLimit(cfg.HistoryLimit),
	)
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
