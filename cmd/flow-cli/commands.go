// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"flowlang/grammar"
	"flowlang/internal/errors"
	"flowlang/internal/parser"
	"flowlang/repl"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// load reads and parses path, printing any failure to stderr.
func load(path string, stderr io.Writer) (*parser.Result, []byte, bool) {
	source, err := os.ReadFile(path)
	if err != nil {
		reporter := errors.NewErrorReporter(path, "")
		fmt.Fprint(stderr, reporter.Format(errors.SourceUnreadableError(path, err)))
		return nil, nil, false
	}

	res, err := parser.ParseSource(path, source)
	if err != nil {
		reporter := errors.NewErrorReporter(path, string(source))
		fmt.Fprint(stderr, reporter.Format(err))
		return nil, source, false
	}
	return res, source, true
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("check", "check [-v n] [-no-color] <file>", stderr)
	path, ok := fileArg(fs, opts, args, stderr)
	if !ok {
		return 2
	}

	startTime := time.Now()
	res, _, ok := load(path, stderr)
	duration := formatDuration(time.Since(startTime))
	if !ok {
		red.Fprintf(stderr, "Compilation failed after %s\n", duration)
		return 1
	}

	log.Infof("%s: %d tokens, %d nodes", path, len(res.Tokens), res.Tree.Arena.Len())
	green.Fprintf(stdout, "Successfully processed %s (%d functions) in %s\n",
		path, res.Tree.Registry.Len(), duration)
	return 0
}

func cmdTokens(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("tokens", "tokens [-v n] [-no-color] <file>", stderr)
	path, ok := fileArg(fs, opts, args, stderr)
	if !ok {
		return 2
	}

	res, _, ok := load(path, stderr)
	if !ok {
		return 1
	}
	for _, tok := range res.Tokens {
		fmt.Fprintf(stdout, "%d:%d\t%s\n", tok.Line, tok.Column, tok)
	}
	return 0
}

func cmdAst(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("ast", "ast [-dump] [-v n] [-no-color] <file>", stderr)
	dump := fs.Bool("dump", false, "print one node per line instead of s-expressions")
	path, ok := fileArg(fs, opts, args, stderr)
	if !ok {
		return 2
	}

	res, _, ok := load(path, stderr)
	if !ok {
		return 1
	}
	if *dump {
		fmt.Fprint(stdout, res.Tree.Arena.Dump())
		return 0
	}
	if formatted := res.Tree.Arena.Format(); formatted != "" {
		fmt.Fprintln(stdout, formatted)
	}
	return 0
}

func cmdOutline(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("outline", "outline [-v n] [-no-color] <file>", stderr)
	path, ok := fileArg(fs, opts, args, stderr)
	if !ok {
		return 2
	}

	file, err := grammar.ParseFile(path)
	if err != nil {
		if _, isCompilerErr := errors.As(err); isCompilerErr {
			source, _ := os.ReadFile(path)
			fmt.Fprint(stderr, errors.NewErrorReporter(path, string(source)).Format(err))
			return 1
		}
		source, _ := os.ReadFile(path)
		fmt.Fprintln(stderr, grammar.FormatSyntaxError(source, err))
		return 1
	}
	fmt.Fprint(stdout, file.String())
	return 0
}

func cmdRepl(args []string, stdout, stderr io.Writer) int {
	fs, opts := newFlagSet("repl", "repl [-v n] [-no-color]", stderr)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	opts.apply()
	repl.Start(stdout)
	return 0
}
