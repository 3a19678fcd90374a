package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/pixelart/internal/editor"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// interactiveCmd reads commands line by line and runs each as if it were
// given on the command line.
type interactiveCmd struct {
	execs  commandList
	stderr io.Writer
	// global flag values the session started with
	globals map[string]string
	*root
	fs *flag.FlagSet
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := newFlagSet("interactive")
	i := &interactiveCmd{root: r, fs: fs, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command and exit (may be repeated)")
	if err := parseFlags(i, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	i.globals = make(map[string]string)
	r.fs.VisitAll(func(f *flag.Flag) { i.globals[f.Name] = f.Value.String() })
	return i, nil
}

func (i *interactiveCmd) Run() error {
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	in := i.stdin
	if in == nil {
		in = os.Stdin
	}
	out := i.out()
	fmt.Fprintln(out, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command. It reports true when the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}
	if line == "exit" || line == "quit" {
		return true, nil
	}
	args := strings.Fields(line)
	if args[0] == "interactive" {
		return false, nil
	}
	if err := i.resetGlobals(); err != nil {
		return false, err
	}
	return false, i.root.Run(args)
}

// resetGlobals restores the global flags so one line's flags do not leak
// into the next.
func (i *interactiveCmd) resetGlobals() error {
	for name, v := range i.globals {
		if err := i.root.fs.Set(name, v); err != nil {
			return fmt.Errorf("reset -%s: %w", name, err)
		}
	}
	if !i.verbose {
		editor.SetLogger(nil)
	}
	return nil
}
