package main

import (
	"bytes"
	"embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

// HelpData is implemented by every command that renders help.
type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

// UsageError reports misuse of a command; its message is the command help.
type UsageError struct {
	of HelpData
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of)
	if err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(of HelpData) func() {
	return func() {
		fmt.Fprintln(os.Stderr, (&UsageError{of: of}).Error())
	}
}

// newFlagSet returns a flag set that reports errors instead of exiting so
// interactive sessions survive typos.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseFlags parses args into of's flag set, turning -h into a UsageError.
func parseFlags(of HelpData, args []string) error {
	if err := of.FlagSet().Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &UsageError{of: of}
		}
		return err
	}
	return nil
}

func (r *root) Template() string {
	return "root.txt"
}

func (c *newCmd) Template() string {
	return "new.txt"
}

func (d *drawCmd) Template() string {
	return "draw.txt"
}

func (e *editCmd) Template() string {
	return "edit.txt"
}

func (v *viewCmd) Template() string {
	return "view.txt"
}

func (e *exportCmd) Template() string {
	return "export.txt"
}

func (c *colorsCmd) Template() string {
	return "colors.txt"
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (i *interactiveCmd) Template() string {
	return "interactive.txt"
}

func (v *versionCmd) Template() string {
	return "version.txt"
}
