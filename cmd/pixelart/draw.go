package main

import (
	"flag"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/tools"
)

// drawCmd applies one tool gesture to a picture file.
type drawCmd struct {
	file          string
	output        string
	inPlace       bool
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	tool          string
	points        []image.Point
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := newFlagSet("draw")
	d := &drawCmd{root: r.subcommand("draw"), fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input PNG file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input picture from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result (or picked colour) to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "", "drawing colour: palette name, hex value, CSS name or \"clipboard\"")

	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := parseFlags(d, flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.tool = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.tool {
	case tools.Draw:
		if len(remaining) == 0 || len(remaining)%2 != 0 {
			return nil, fmt.Errorf("%s requires one or more x y pairs", d.tool)
		}
		d.points, err = expectPoints(remaining, len(remaining)/2, d.tool)
	case tools.Line, tools.Rectangle, tools.Circle, tools.Ellipse:
		d.points, err = expectPoints(remaining, 2, d.tool)
	case tools.Fill, tools.PatternFill, tools.Pick:
		d.points, err = expectPoints(remaining, 1, d.tool)
	default:
		if _, lerr := r.registry.Lookup(d.tool); lerr != nil {
			return nil, lerr
		}
		d.points, err = expectPoints(remaining, 1, d.tool)
	}
	if err != nil {
		return nil, err
	}
	if d.fromClipboard {
		if d.output == "" {
			if d.file != "" {
				d.output = d.file
			} else if d.tool != tools.Pick && !d.toClipboard {
				return nil, fmt.Errorf("output file is required when reading from the clipboard")
			}
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
			d.inPlace = true
		}
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	p, err := d.loadPicture(d.file, d.fromClipboard)
	if err != nil {
		return err
	}
	if d.inPlace && d.tool != tools.Pick && cropped(d.file, p) {
		return fmt.Errorf("%s is larger than the %dx%d import limit; pass -output to write a cropped copy", d.file, p.Width(), p.Height())
	}
	store := d.newStore(p)
	if d.colorSpec != "" {
		c, err := d.resolveColor(d.colorSpec)
		if err != nil {
			return fmt.Errorf("color: %w", err)
		}
		store.Dispatch(editor.SetColor{Color: c})
	}
	store.Dispatch(editor.SetTool{Name: d.tool})

	session := tools.NewSession(d.registry, store)
	if err := session.Down(d.points[0]); err != nil {
		return fmt.Errorf("%s at %v: %w", d.tool, d.points[0], err)
	}
	for _, pt := range d.points[1:] {
		if err := session.Move(pt, true); err != nil {
			return fmt.Errorf("%s to %v: %w", d.tool, pt, err)
		}
	}
	session.Up()

	st := store.State()
	if d.tool == tools.Pick {
		fmt.Fprintf(d.out(), "%s %s\n", st.Color, d.palette.Label(st.Color))
		if d.toClipboard {
			if err := writeClipboardColor(st.Color); err != nil {
				return fmt.Errorf("failed to copy colour to clipboard: %w", err)
			}
			d.notifyCopy(st.Color.String())
		}
		return nil
	}
	if d.output != "" {
		if err := d.savePicture(d.output, st.Picture); err != nil {
			return err
		}
	}
	if d.toClipboard {
		return d.copyPicture(st.Picture)
	}
	return nil
}

// expectPoints parses exactly n x y pairs.
func expectPoints(args []string, n int, tool string) ([]image.Point, error) {
	if len(args) != 2*n {
		return nil, fmt.Errorf("%s requires %d integer arguments", tool, 2*n)
	}
	pts := make([]image.Point, n)
	for i := range pts {
		x, err := strconv.Atoi(args[2*i])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i])
		}
		y, err := strconv.Atoi(args[2*i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", args[2*i+1])
		}
		pts[i] = image.Pt(x, y)
	}
	return pts, nil
}

// splitArgs separates flags known to fs from positionals so flags may
// follow the tool name. Unknown dashed words such as negative coordinates
// stay positional.
func splitArgs(fs *flag.FlagSet, args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		f := fs.Lookup(base)
		if f == nil {
			if base == "h" || base == "help" {
				flags = append(flags, "-"+base)
				continue
			}
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}
