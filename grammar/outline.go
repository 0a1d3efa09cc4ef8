package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"flowlang/internal/errors"
	"flowlang/internal/parser"
	"flowlang/internal/text"
)

var outlineParser = buildParser()

func buildParser() *participle.Parser[File] {
	p, err := participle.Build[File](
		participle.Lexer(FlowLexer),
		participle.UseLookahead(2),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build outline parser: %w", err))
	}
	return p
}

// ParseOutline extracts function signatures from src. Decode and tokenizer
// failures come back as *errors.CompilerError; grammar failures as
// participle.Error.
func ParseOutline(filename string, src []byte) (*File, error) {
	txt, err := text.Decode(src)
	if err != nil {
		return nil, err
	}
	if _, err := parser.Tokenize(txt); err != nil {
		return nil, err
	}
	return outlineParser.ParseBytes(filename, src)
}

func ParseFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.SourceUnreadableError(path, err)
	}
	return ParseOutline(path, source)
}

// Functions returns the declared functions in source order.
func (f *File) Functions() []*Function {
	var out []*Function
	for _, item := range f.Items {
		if item.Function != nil {
			out = append(out, item.Function)
		}
	}
	return out
}

// Blocks counts the nested blocks in the function body.
func (fn *Function) Blocks() int {
	return countBlocks(fn.Body)
}

func countBlocks(items []*BodyItem) int {
	n := 0
	for _, item := range items {
		if item.Block != nil {
			n += 1 + countBlocks(item.Block.Body)
		}
	}
	return n
}

// FormatSyntaxError renders a caret-style message for a participle error.
func FormatSyntaxError(src []byte, err error) string {
	pe, ok := err.(participle.Error)
	if !ok {
		return color.RedString("Unexpected error: %s", err)
	}

	pos := pe.Position()
	lines := strings.Split(string(src), "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		return color.RedString("Syntax error at unknown location: %s", err)
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(0, pos.Column-1)) + "^"

	var b strings.Builder
	b.WriteString(color.RedString("Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column))
	b.WriteString("\n")
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(color.HiRedString(caret))
	b.WriteString("\n")
	b.WriteString("→ " + pe.Message())
	b.WriteString("\n")
	return b.String()
}
