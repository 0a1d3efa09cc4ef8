// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("flow.cli")

type command func(args []string, stdout, stderr io.Writer) int

var commands = map[string]command{
	"check":   cmdCheck,
	"tokens":  cmdTokens,
	"ast":     cmdAst,
	"outline": cmdOutline,
	"repl":    cmdRepl,
}

func showUsage(w io.Writer) {
	fmt.Fprint(w, `Flow - front end for the Flow language

Usage:
    flow <command> [flags] <file.flow>

Commands:
    check <file>     Parse a file and report the first error
    tokens <file>    Print the token stream
    ast <file>       Print the syntax tree
    outline <file>   Print function signatures and block structure
    repl             Start an interactive session

Flags:
    -v <n>           Log verbosity
    -no-color        Disable colored output

Use "flow <command> -h" for more information about a command.
`)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		showUsage(stderr)
		return 2
	}

	switch args[0] {
	case "help", "-h", "--help":
		showUsage(stdout)
		return 0
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		showUsage(stderr)
		return 2
	}
	return cmd(args[1:], stdout, stderr)
}

type options struct {
	verbosity int
	noColor   bool
}

// newFlagSet registers the flags shared by every command.
func newFlagSet(name, usage string, stderr io.Writer) (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.verbosity, "v", 0, "log verbosity")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: flow %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}
	return fs, opts
}

func (o *options) apply() {
	commonlog.Configure(o.verbosity, nil)
	if o.noColor {
		color.NoColor = true
	}
}

// fileArg parses args and returns the single file argument.
func fileArg(fs *flag.FlagSet, opts *options, args []string, stderr io.Writer) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	opts.apply()
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return "", false
	}
	return fs.Arg(0), true
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
