package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/example/pixelart/internal/config"
	"github.com/example/pixelart/internal/editor"
	"github.com/example/pixelart/internal/notify"
	"github.com/example/pixelart/internal/palette"
	"github.com/example/pixelart/internal/picture"
	"github.com/example/pixelart/internal/tools"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

const paletteEnv = "PIXELART_PALETTE"

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	config       *config.Config
	notifier     *notify.Notifier
	registry     *tools.Registry
	palette      *palette.Palette
	saveAlerts   bool
	copyAlerts   bool
	exportAlerts bool
	paletteName  string
	verbose      bool
	stdout       io.Writer
	stdin        io.Reader
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	prefs := notify.LoadPreferences()
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       newFlagSet("pixelart"),
		program:  "pixelart",
		notifier: notify.New(prefs),
		config:   cfg,
		registry: tools.DefaultRegistry(),
		stdout:   os.Stdout,
		stdin:    os.Stdin,
	}
	r.fs.BoolVar(&r.saveAlerts, "notify-save", cfg.Notify.Save, "show a desktop notification after saving a picture")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting a picture")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.paletteName, "palette", "", "palette name or file (default, pico8, gameboy)")
	r.fs.BoolVar(&r.verbose, "v", false, "log editor transitions to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

// subcommand returns a copy of r for a nested command line.
func (r *root) subcommand(name string) *root {
	c := *r
	c.program = strings.TrimSpace(r.program + " " + name)
	return &c
}

func (r *root) Run(args []string) error {
	if err := parseFlags(r, args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSave, r.saveAlerts)
		r.notifier.Enable(notify.EventCopy, r.copyAlerts)
		r.notifier.Enable(notify.EventExport, r.exportAlerts)
	}
	if r.verbose {
		editor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	r.palette = r.loadPalette()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "new":
		cmd, err = parseNewCmd(subArgs, r)
	case "draw":
		cmd, err = parseDrawCmd(subArgs, r)
	case "edit":
		cmd, err = parseEditCmd(subArgs, r)
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "export":
		cmd, err = parseExportCmd(subArgs, r)
	case "colors":
		cmd, err = parseColorsCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "interactive":
		cmd, err = parseInteractiveCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{root: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// loadPalette resolves the palette from flag, environment and config, in
// that order, falling back to the built-in default.
func (r *root) loadPalette() *palette.Palette {
	name := r.paletteName
	if name == "" {
		name = os.Getenv(paletteEnv)
	}
	if name == "" {
		name = r.config.Palette
	}
	inline := make(map[string][]string, len(r.config.Palettes))
	for k, v := range r.config.Palettes {
		inline[k] = v.Colors
	}
	p, err := palette.NewLoader(config.Dir(), inline).Load(name)
	if err != nil {
		if name != "" && name != palette.DefaultName {
			fmt.Fprintf(os.Stderr, "warning: failed to load palette '%s': %v. using default.\n", name, err)
		}
		return palette.Default()
	}
	return p
}

// resolveColor accepts a swatch name from the active palette, "clipboard",
// or anything picture.ParseColor understands.
func (r *root) resolveColor(spec string) (picture.Color, error) {
	if r.palette != nil {
		for _, s := range r.palette.Swatches {
			if strings.EqualFold(s.Name, strings.TrimSpace(spec)) {
				return s.Color, nil
			}
		}
	}
	if strings.EqualFold(strings.TrimSpace(spec), "clipboard") {
		return readClipboardColor()
	}
	return picture.ParseColor(spec)
}

func (r *root) out() io.Writer {
	if r == nil || r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
		} else {
			log.SetFlags(0)
			log.SetPrefix(r.program + ": ")
			log.Print(err)
			os.Exit(1)
		}
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyExport(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Export(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
