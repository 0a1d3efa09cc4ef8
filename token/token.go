// Package token SPDX-License-Identifier: Apache-2.0
package token

import (
	"fmt"

	"flowlang/internal/errors"
	"flowlang/internal/text"
)

// Kind classifies a token. The order and names are part of the external
// interface and must not change.
type Kind int

const (
	Undefined Kind = iota

	// Operators
	Add
	Sub
	Mul
	Div
	Mod
	LessThan
	LessEqual
	GreaterThan
	GreaterEqual
	Equals
	NotEquals
	Assign
	AddAssign
	SubAssign
	MulAssign
	DivAssign
	Period
	LogNot
	PostInc
	PostDec

	// Keywords
	Func
	End
	Returns
	Let
	Import
	If
	Then
	Elif
	Else
	For
	While
	Do

	// Words and literals
	Identifier
	FuncCall
	Number
	StringLit

	// Punctuation
	Prepocessor
	EOL
	Comma
	OpenParen
	CloseParen
	OpenSquare
	CloseSquare
	OpenCurly
	CloseCurly

	kindCount
)

var kindNames = [...]string{
	Undefined:    "Undefined",
	Add:          "Add",
	Sub:          "Sub",
	Mul:          "Mul",
	Div:          "Div",
	Mod:          "Mod",
	LessThan:     "LessThan",
	LessEqual:    "LessEqual",
	GreaterThan:  "GreaterThan",
	GreaterEqual: "GreaterEqual",
	Equals:       "Equals",
	NotEquals:    "NotEquals",
	Assign:       "Assign",
	AddAssign:    "AddAssign",
	SubAssign:    "SubAssign",
	MulAssign:    "MulAssign",
	DivAssign:    "DivAssign",
	Period:       "Period",
	LogNot:       "LogNot",
	PostInc:      "PostInc",
	PostDec:      "PostDec",
	Func:         "Func",
	End:          "End",
	Returns:      "Returns",
	Let:          "Let",
	Import:       "Import",
	If:           "If",
	Then:         "Then",
	Elif:         "Elif",
	Else:         "Else",
	For:          "For",
	While:        "While",
	Do:           "Do",
	Identifier:   "Identifier",
	FuncCall:     "FuncCall",
	Number:       "Number",
	StringLit:    "StringLit",
	Prepocessor:  "Prepocessor",
	EOL:          "EOL",
	Comma:        "Comma",
	OpenParen:    "OpenParen",
	CloseParen:   "CloseParen",
	OpenSquare:   "OpenSquare",
	CloseSquare:  "CloseSquare",
	OpenCurly:    "OpenCurly",
	CloseCurly:   "CloseCurly",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Undefined; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= Func && k <= Do
}

// IsOperator reports whether k takes part in expression pivot selection.
func (k Kind) IsOperator() bool {
	return Precedence(k) > 0
}

// Token is one lexeme. Text borrows from the decoded source; Line and Column
// are 1-based, Offset is the character index of the first character.
type Token struct {
	Kind   Kind
	Text   text.View
	Line   int
	Column int
	Offset int
}

func (t Token) Lexeme() string {
	return t.Text.String()
}

// Pos converts the token position for error reporting.
func (t Token) Pos() errors.Position {
	return errors.Position{Line: t.Line, Column: t.Column, Offset: t.Offset}
}

// Width is the number of characters the token spans.
func (t Token) Width() int {
	return t.Text.Len()
}

func (t Token) String() string {
	if t.Kind == EOL {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme())
}
