package main

import (
	"flag"
	"fmt"
	"strings"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Run() error {
	line := fmt.Sprintf("%s version %s", v.program, version)
	if c := strings.TrimSpace(commit); c != "" {
		line += " commit " + c
	}
	if d := strings.TrimSpace(date); d != "" {
		line += " built " + d
	}
	fmt.Fprintln(v.out(), line)
	return nil
}
