package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/example/pixelart/internal/appstate"
	"github.com/example/pixelart/internal/config"
	"github.com/example/pixelart/internal/picture"
)

// editCmd opens the editor window.
type editCmd struct {
	file          string
	output        string
	fromClipboard bool
	scale         int
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := newFlagSet("edit")
	e := &editCmd{root: r.subcommand("edit"), fs: fs}
	fs.Usage = usageFunc(e)
	fs.StringVar(&e.file, "file", "", "PNG file to open; a blank picture is used when it does not exist")
	fs.StringVar(&e.output, "output", "", "file written by ^S (defaults to -file)")
	fs.BoolVar(&e.fromClipboard, "from-clipboard", false, "start from the clipboard image")
	fs.IntVar(&e.scale, "scale", r.config.Scale, "screen pixels per cell")
	if err := parseFlags(e, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: e}
	}
	if e.scale < 1 {
		return nil, fmt.Errorf("scale must be positive, got %d", e.scale)
	}
	if e.output == "" {
		e.output = e.file
	}
	return e, nil
}

func (e *editCmd) Run() error {
	var p *picture.Picture
	var err error
	if e.fromClipboard || fileExists(e.file) {
		p, err = e.loadPicture(e.file, e.fromClipboard)
	} else {
		p, err = picture.Empty(e.config.Width, e.config.Height, e.config.BackgroundColor())
	}
	if err != nil {
		return err
	}
	st := e.window(p, appstate.ModeEdit, e.saveTarget(e.source(), e.output, p), e.scale)
	st.Run()
	return nil
}

// saveTarget returns the file ^S writes to. A source that was cropped on
// load is never written back; saves then go to a new file in save_dir.
func (r *root) saveTarget(source, output string, p *picture.Picture) string {
	if source == "" || output != source || !cropped(source, p) {
		return output
	}
	log.Printf("warning: %s is larger than the %dx%d import limit; saves go to a new file", output, p.Width(), p.Height())
	return ""
}

// source is the file the picture was loaded from, if any.
func (e *editCmd) source() string {
	if e.fromClipboard {
		return ""
	}
	return e.file
}

// window builds the shell around p with the configured options.
func (r *root) window(p *picture.Picture, mode appstate.Mode, output string, scale int) *appstate.AppState {
	saveDir := r.config.SaveDir
	if saveDir == "" {
		saveDir = "."
	}
	return appstate.New(
		appstate.WithStore(r.newStore(p)),
		appstate.WithRegistry(r.registry),
		appstate.WithPalette(r.palette),
		appstate.WithNotifier(r.notifier),
		appstate.WithOutput(output),
		appstate.WithSaveDir(config.ExpandHome(saveDir)),
		appstate.WithScale(scale),
		appstate.WithBackground(r.config.BackgroundColor()),
		appstate.WithMaxImport(r.importLimit()),
		appstate.WithMode(mode),
	)
}

// viewCmd shows a picture read-only until the user switches to editing.
type viewCmd struct {
	file  string
	scale int
	*root
	fs *flag.FlagSet
}

func (v *viewCmd) FlagSet() *flag.FlagSet {
	return v.fs
}

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := newFlagSet("view")
	v := &viewCmd{root: r.subcommand("view"), fs: fs}
	fs.Usage = usageFunc(v)
	fs.StringVar(&v.file, "file", "", "PNG file to open")
	fs.IntVar(&v.scale, "scale", r.config.Scale, "screen pixels per cell")
	if err := parseFlags(v, args); err != nil {
		return nil, err
	}
	if v.file == "" || fs.NArg() != 0 {
		return nil, &UsageError{of: v}
	}
	if v.scale < 1 {
		return nil, fmt.Errorf("scale must be positive, got %d", v.scale)
	}
	return v, nil
}

func (v *viewCmd) Run() error {
	p, err := v.loadPicture(v.file, false)
	if err != nil {
		return err
	}
	st := v.window(p, appstate.ModePreview, v.saveTarget(v.file, v.file, p), v.scale)
	st.Run()
	return nil
}
