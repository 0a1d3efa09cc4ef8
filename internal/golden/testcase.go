// Package golden extracts parser test cases from Markdown documents.
//
// A test case starts at a heading "Test: <name>", has exactly one input
// fence and one or more assertion fences:
//
//	## Test: addition
//	```flow-body
//	a+b;
//	```
//	```ast
//	(+ a b)
//	```
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputType is the language tag of an input fence.
type InputType string

const (
	// InputProgram is a complete source file.
	InputProgram InputType = "flow-program"
	// InputBody is a function body; it is wrapped in a function before parsing.
	InputBody InputType = "flow-body"
)

// AssertionType is the language tag of an assertion fence.
type AssertionType string

const (
	AssertionAST    AssertionType = "ast"
	AssertionTokens AssertionType = "tokens"
	AssertionError  AssertionType = "error"
)

type Assertion struct {
	Type    AssertionType
	Content string
	Line    int
}

type TestCase struct {
	Name       string
	Input      string
	InputType  InputType
	Assertions []Assertion
}

// Source returns the program text to feed the front end.
func (tc TestCase) Source() string {
	if tc.InputType == InputBody {
		return "func test() returns Int ;\n" + tc.Input + "\nend\n"
	}
	return tc.Input
}

// Normalize collapses runs of whitespace so fences can be wrapped freely.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ExtractTestCases parses a Markdown document and returns its test cases in
// document order.
func ExtractTestCases(markdown []byte) ([]TestCase, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(markdown))

	var (
		cases   []TestCase
		current *TestCase
	)

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			heading := extractText(n, markdown)
			if !strings.HasPrefix(heading, "Test: ") {
				return ast.WalkContinue, nil
			}
			if current != nil {
				if err := validate(current); err != nil {
					return ast.WalkStop, err
				}
				cases = append(cases, *current)
			}
			current = &TestCase{Name: strings.TrimPrefix(heading, "Test: ")}

		case *ast.FencedCodeBlock:
			language := string(n.Language(markdown))
			line := lineNumber(n, markdown)
			if current == nil {
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", line, language)
				}
				return ast.WalkContinue, nil
			}

			content := strings.TrimRight(extractCodeBlock(n, markdown), "\n")
			switch {
			case isInputFence(language):
				if current.InputType != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences in test '%s'", line, current.Name)
				}
				current.Input = content
				current.InputType = InputType(language)
			case isAssertionFence(language):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(language),
					Content: content,
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", line, language, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validate(current); err != nil {
			return nil, err
		}
		cases = append(cases, *current)
	}
	return cases, nil
}

func extractText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := n.(*ast.Text); ok {
				buf.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlock(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < block.Lines().Len(); i++ {
		line := block.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func isInputFence(language string) bool {
	return language == string(InputProgram) || language == string(InputBody)
}

func isAssertionFence(language string) bool {
	switch AssertionType(language) {
	case AssertionAST, AssertionTokens, AssertionError:
		return true
	}
	return false
}

func validate(tc *TestCase) error {
	if tc.InputType == "" {
		return fmt.Errorf("test '%s' has no input fence", tc.Name)
	}
	if len(tc.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", tc.Name)
	}
	return nil
}

func lineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	start := node.Lines().At(0).Start
	return bytes.Count(source[:min(start, len(source))], []byte("\n")) + 1
}
