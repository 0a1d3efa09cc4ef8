// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"

	"flowlang/internal/errors"
	"flowlang/internal/parser"
)

const (
	PROMPT      = ">> "
	CONT_PROMPT = ".. "
	historyFile = ".flow_history"
)

// Prompter reads one line of input. *liner.State satisfies it.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Session keeps the functions declared so far and renders each entry.
type Session struct {
	out        io.Writer
	showTokens bool
	functions  map[string]string
}

func NewSession(out io.Writer) *Session {
	return &Session{out: out, functions: make(map[string]string)}
}

// Start runs an interactive loop on the terminal until EOF or :quit.
func Start(out io.Writer) {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	s := NewSession(out)
	s.Run(ln, func(entry string) {
		ln.AppendHistory(strings.ReplaceAll(entry, "\n", " "))
	})

	if histPath != "" {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
}

// Run reads entries from p until EOF or :quit. remember is called with each
// entry that parsed.
func (s *Session) Run(p Prompter, remember func(string)) {
	for {
		entry, ok := ReadEntry(p)
		if !ok {
			fmt.Fprintln(s.out)
			return
		}

		trimmed := strings.TrimSpace(entry)
		switch {
		case trimmed == "":
			continue
		case strings.HasPrefix(trimmed, ":"):
			if !s.command(trimmed) {
				return
			}
			continue
		}

		if s.Eval(entry) && remember != nil {
			remember(entry)
		}
	}
}

// command handles a ':' command and reports whether the loop continues.
func (s *Session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":tokens":
		s.showTokens = !s.showTokens
		fmt.Fprintf(s.out, "token display %s\n", onOff(s.showTokens))
	case ":funcs":
		if len(s.functions) == 0 {
			fmt.Fprintln(s.out, "no functions declared")
		}
		for _, name := range sortedKeys(s.functions) {
			fmt.Fprintln(s.out, "func "+s.functions[name])
		}
	default:
		fmt.Fprintln(s.out, "unknown command. Commands: :tokens :funcs :quit")
	}
	return true
}

// Eval parses entry and prints its tree or the error. It reports success.
func (s *Session) Eval(entry string) bool {
	res, err := parser.ParseSource("<repl>", []byte(entry))
	if err != nil {
		reporter := errors.NewErrorReporter("<repl>", entry)
		fmt.Fprint(s.out, reporter.Format(err))
		return false
	}

	if s.showTokens {
		for _, tok := range res.Tokens {
			fmt.Fprintf(s.out, "%d:%d %s\n", tok.Line, tok.Column, tok)
		}
	}
	for _, name := range res.Tree.Registry.Names() {
		if sig, ok := res.Signature(name); ok {
			s.functions[name] = sig
		}
	}
	if formatted := res.Tree.Arena.Format(); formatted != "" {
		fmt.Fprintln(s.out, color.CyanString(formatted))
	} else {
		fmt.Fprintln(s.out, "(no functions)")
	}
	return true
}

// ReadEntry keeps prompting while the buffered input is an unfinished
// function, string or comment.
func ReadEntry(p Prompter) (string, bool) {
	var b strings.Builder
	for {
		prompt := PROMPT
		if b.Len() > 0 {
			prompt = CONT_PROMPT
		}
		line, err := p.Prompt(prompt)
		if stderrors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if !Incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// Incomplete reports whether src fails only because it stops early.
func Incomplete(src string) bool {
	_, err := parser.ParseSource("<repl>", []byte(src))
	switch errors.KindOf(err) {
	case errors.UnterminatedBlock, errors.UnterminatedComment, errors.UnterminatedStringLiteral:
		return true
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
