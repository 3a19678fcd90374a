package main

import (
	"flag"
	"fmt"

	"github.com/example/pixelart/internal/export"
)

const defaultPDFCell = 4

// exportCmd renders a picture as a scaled PNG or a PDF page.
type exportCmd struct {
	file          string
	output        string
	fromClipboard bool
	scale         int
	*root
	fs *flag.FlagSet
}

func (e *exportCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := newFlagSet("export")
	e := &exportCmd{root: r.subcommand("export"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "input PNG file")
	fs.StringVar(&e.output, "output", "", "output file; .pdf writes a PDF, anything else a PNG")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "read the input picture from the clipboard")
	fs.IntVar(&e.scale, "scale", 0, "pixels per cell for PNG or millimetres per cell for PDF (0 picks a default)")
	if err := parseFlags(e, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || e.output == "" {
		return nil, &UsageError{of: e}
	}
	if e.file == "" && !e.fromClipboard {
		return nil, fmt.Errorf("input file is required")
	}
	if e.scale < 0 {
		return nil, fmt.Errorf("scale cannot be negative, got %d", e.scale)
	}
	if e.scale == 0 {
		e.scale = e.defaultScale()
	}
	return e, nil
}

func (e *exportCmd) defaultScale() int {
	if export.FormatOf(e.output) == export.PDF {
		return defaultPDFCell
	}
	return e.config.Scale
}

func (e *exportCmd) Run() error {
	p, err := e.loadPicture(e.file, e.fromClipboard)
	if err != nil {
		return err
	}
	if err := export.Save(e.output, p, e.scale); err != nil {
		return fmt.Errorf("failed to export %s: %w", e.output, err)
	}
	e.notifyExport(e.output)
	fmt.Fprintln(e.out(), e.output)
	return nil
}
