package lsp

import (
	"bytes"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"flowlang/internal/errors"
)

// ConvertError turns a front-end failure into LSP diagnostics. content is
// used to place decode errors, which only know their byte offset.
func ConvertError(err error, content []byte) []protocol.Diagnostic {
	if err == nil {
		return []protocol.Diagnostic{}
	}

	ce, ok := errors.As(err)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("flow"),
			Message:  err.Error(),
		}}
	}

	line, column := ce.Position.Line, ce.Position.Column
	if line == 0 {
		line, column = positionOfByte(content, ce.Position.Offset)
	}
	length := max(ce.Length, 1)

	message := ce.Message
	for _, s := range ce.Suggestions {
		message += "\n" + s.Message
	}
	if ce.HelpText != "" {
		message += "\nhelp: " + ce.HelpText
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max(line-1, 0)),
				Character: uint32(max(column-1, 0)),
			},
			End: protocol.Position{
				Line:      uint32(max(line-1, 0)),
				Character: uint32(max(column-1, 0) + length),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: ce.Code},
		Source:   ptrString("flow-" + ce.Kind.Stage()),
		Message:  message,
	}}
}

// positionOfByte converts a byte offset into a 1-based line and character
// column, counting only the valid prefix of content.
func positionOfByte(content []byte, offset int) (line, column int) {
	offset = min(max(offset, 0), len(content))
	prefix := content[:offset]
	line = bytes.Count(prefix, []byte("\n")) + 1
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		prefix = prefix[i+1:]
	}
	return line, utf8.RuneCount(prefix) + 1
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}

// firstLine trims a multi-line message for places that show one line.
func firstLine(s string) string {
	head, _, _ := strings.Cut(s, "\n")
	return head
}
