package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/pixelart/internal/config"
	"github.com/example/pixelart/internal/palette"
)

// colorsCmd lists the swatches of the active palette, or every palette
// name with -all.
type colorsCmd struct {
	all bool
	*root
	fs *flag.FlagSet
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := newFlagSet("colors")
	cmd := &colorsCmd{root: r.subcommand("colors"), fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.BoolVar(&cmd.all, "all", false, "list the available palettes instead")
	if err := parseFlags(cmd, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	out := c.out()
	if c.all {
		inline := make(map[string][]string, len(c.config.Palettes))
		for k, v := range c.config.Palettes {
			inline[k] = v.Colors
		}
		for _, name := range palette.NewLoader(config.Dir(), inline).Names() {
			fmt.Fprintln(out, name)
		}
		return nil
	}
	pal := c.palette
	if pal == nil {
		pal = palette.Default()
	}
	if len(pal.Swatches) == 0 {
		fmt.Fprintln(os.Stderr, "no colors available")
		return nil
	}
	fmt.Fprintf(out, "palette %s:\n", pal.Name)
	for i, s := range pal.Swatches {
		fmt.Fprintf(out, "%2d  %s  %s\n", i, s.Color, s.Name)
	}
	return nil
}
