package main

import (
	"flag"
	"fmt"

	"github.com/example/pixelart/internal/appstate"
	"github.com/example/pixelart/internal/picture"
)

// newCmd writes a blank picture.
type newCmd struct {
	output     string
	width      int
	height     int
	background string
	*root
	fs *flag.FlagSet
}

func (c *newCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseNewCmd(args []string, r *root) (*newCmd, error) {
	fs := newFlagSet("new")
	c := &newCmd{root: r.subcommand("new"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "output PNG file (defaults to pixelart-<id>.png)")
	fs.IntVar(&c.width, "width", r.config.Width, "picture width in cells")
	fs.IntVar(&c.height, "height", r.config.Height, "picture height in cells")
	fs.StringVar(&c.background, "background", r.config.Background, "fill colour")
	if err := parseFlags(c, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	if c.width <= 0 || c.height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", c.width, c.height)
	}
	if c.output == "" {
		c.output = appstate.UntitledName()
	}
	return c, nil
}

func (c *newCmd) Run() error {
	bg, err := c.resolveColor(c.background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	p, err := picture.Empty(c.width, c.height, bg)
	if err != nil {
		return err
	}
	if err := c.savePicture(c.output, p); err != nil {
		return err
	}
	fmt.Fprintln(c.out(), c.output)
	return nil
}
