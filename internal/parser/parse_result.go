package parser

import (
	"strings"

	"flowlang/internal/ast"
	"flowlang/internal/text"
	"flowlang/token"
)

// Result holds everything a successful run produced. Tokens borrow from
// Text; mutating Text invalidates them.
type Result struct {
	Path   string
	Text   *text.Text
	Tokens []token.Token
	Tree   *Tree
}

// Signature renders the header of the named function as written, for
// example "add(Int a, Int b) returns Int".
func (r *Result) Signature(name string) (string, bool) {
	idx, ok := r.Tree.Registry.Lookup(name)
	if !ok {
		return "", false
	}
	arena := r.Tree.Arena

	var (
		ret    string
		params []string
	)
	for _, child := range arena.Children(idx) {
		node, err := arena.At(child)
		if err != nil {
			return "", false
		}
		switch node.Role {
		case ast.ReturnType:
			ret = node.Label()
		case ast.Param:
			typ := ""
			if len(node.Children) > 0 {
				if t, err := arena.At(node.Children[0]); err == nil {
					typ = t.Label()
				}
			}
			params = append(params, typ+" "+node.Label())
		}
	}
	return name + "(" + strings.Join(params, ", ") + ") returns " + ret, true
}

// TokenAt returns the token covering the 1-based line and column.
func (r *Result) TokenAt(line, column int) (token.Token, bool) {
	return FindToken(r.Tokens, line, column)
}

// FindToken locates the token under a 1-based line and column.
func FindToken(tokens []token.Token, line, column int) (token.Token, bool) {
	for _, tok := range tokens {
		if tok.Line != line {
			continue
		}
		if column >= tok.Column && column < tok.Column+tok.Width() {
			return tok, true
		}
	}
	return token.Token{}, false
}
