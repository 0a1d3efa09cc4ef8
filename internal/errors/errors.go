package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Position locates an error in the source. Line and Column are 1-based and
// zero when unknown; Offset is a 0-based byte or character offset depending
// on the stage that produced it.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0
}

// CompilerError represents a structured error with suggestions and context
type CompilerError struct {
	Level       ErrorLevel
	Kind        Kind
	Code        string       // Error code like E0120
	Message     string       // Primary error message
	Position    Position     // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
	Cause       error        // Underlying error, if any
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string   // Description of the suggestion
	Replacement string   // Suggested replacement text (optional)
	Position    Position // Position to apply the fix (optional)
	Length      int      // Length of text to replace (optional)
}

func (e *CompilerError) Error() string {
	return e.Message
}

func (e *CompilerError) Unwrap() error {
	return e.Cause
}

// Is matches another *CompilerError of the same kind, so callers can write
// errors.Is(err, &CompilerError{Kind: MissingOperand}).
func (e *CompilerError) Is(target error) bool {
	var other *CompilerError
	if !stderrors.As(target, &other) {
		return false
	}
	if other.Kind != e.Kind {
		return false
	}
	return other.Message == "" || other.Message == e.Message
}

// KindOf extracts the kind of a front-end error, or "" if err is not one.
func KindOf(err error) Kind {
	var ce *CompilerError
	if stderrors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsKind reports whether err is a front-end error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// As is stderrors.As narrowed to *CompilerError.
func As(err error) (*CompilerError, bool) {
	var ce *CompilerError
	ok := stderrors.As(err, &ce)
	return ce, ok
}

// Builder provides a fluent interface for creating front-end errors with suggestions
type Builder struct {
	err CompilerError
}

// New starts an error of the given kind at pos.
func New(kind Kind, message string, pos Position) *Builder {
	return &Builder{
		err: CompilerError{
			Level:    Error,
			Kind:     kind,
			Code:     kind.Code(),
			Message:  message,
			Position: pos,
			Length:   1,
		},
	}
}

// Newf is New with a formatted message.
func Newf(kind Kind, pos Position, format string, args ...any) *Builder {
	return New(kind, fmt.Sprintf(format, args...), pos)
}

// WithLength sets the length of the error span
func (b *Builder) WithLength(length int) *Builder {
	b.err.Length = length
	return b
}

// WithSuggestion adds a suggestion to the error
func (b *Builder) WithSuggestion(message string) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *Builder) WithReplacement(message, replacement string, pos Position, length int) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    pos,
		Length:      length,
	})
	return b
}

// WithNote adds a note to the error
func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *Builder) WithHelp(help string) *Builder {
	b.err.HelpText = help
	return b
}

// WithCause records the underlying error
func (b *Builder) WithCause(cause error) *Builder {
	b.err.Cause = cause
	return b
}

// Build returns the completed compiler error
func (b *Builder) Build() *CompilerError {
	err := b.err
	return &err
}

// Summary renders "E0120 MissingFunctionName: message" for logs and tests.
func (e *CompilerError) Summary() string {
	var b strings.Builder
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(" ")
	}
	b.WriteString(string(e.Kind))
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}
