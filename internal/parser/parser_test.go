package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlang/internal/ast"
	"flowlang/internal/errors"
	"flowlang/internal/text"
	"flowlang/token"
)

func parse(t *testing.T, src string) (*Tree, error) {
	t.Helper()
	tokens, err := Tokenize(text.MustDecode(src))
	require.NoError(t, err)
	return Parse(tokens)
}

func mustParse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := parse(t, src)
	require.NoError(t, err)
	return tree
}

// body parses stmts inside a throwaway function and renders its statements.
// The leading ';' keeps a statement that opens with '(' from turning the
// return type into a call.
func body(t *testing.T, stmts string) []string {
	t.Helper()
	tree := mustParse(t, "func f() returns Int ; "+stmts+" end")
	fn, ok := tree.Registry.Lookup("f")
	require.True(t, ok)

	var out []string
	for _, child := range tree.Arena.Children(fn) {
		node, err := tree.Arena.At(child)
		require.NoError(t, err)
		if node.Role == ast.Expr {
			out = append(out, tree.Arena.SExpr(child))
		}
	}
	return out
}

func TestParseFunction(t *testing.T) {
	tree := mustParse(t, "func add(Int a, Int b) returns Int a+b; end")
	arena := tree.Arena

	root, err := arena.At(tree.Root)
	require.NoError(t, err)
	assert.Equal(t, ast.Program, root.Role)
	require.Len(t, root.Children, 1)

	fnIdx, ok := tree.Registry.Lookup("add")
	require.True(t, ok)
	assert.Equal(t, root.Children[0], fnIdx)

	fn, err := arena.At(fnIdx)
	require.NoError(t, err)
	assert.Equal(t, ast.Function, fn.Role)
	assert.Equal(t, token.FuncCall, fn.Token.Kind)
	assert.Equal(t, "add", fn.Label())
	require.Len(t, fn.Children, 4)

	roles := make([]ast.Role, len(fn.Children))
	for i, c := range fn.Children {
		n, _ := arena.At(c)
		roles[i] = n.Role
	}
	assert.Equal(t, []ast.Role{ast.ReturnType, ast.Param, ast.Param, ast.Expr}, roles)

	ret, _ := arena.At(fn.Children[0])
	assert.Equal(t, "Int", ret.Label())

	stmt, _ := arena.At(fn.Children[3])
	assert.Equal(t, token.Add, stmt.Token.Kind)
	require.Len(t, stmt.Children, 2)
	left, _ := arena.At(stmt.Children[0])
	right, _ := arena.At(stmt.Children[1])
	assert.Equal(t, "a", left.Label())
	assert.Equal(t, "b", right.Label())

	assert.Equal(t, "(func add (returns Int) (param Int a) (param Int b) (+ a b))", arena.Format())
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2*3;", "(+ 1 (* 2 3))"},
		{"1*2+3;", "(+ (* 1 2) 3)"},
		{"(1+2)*3;", "(* (+ 1 2) 3)"},
		{"((x));", "x"},
		{"x = a + b * c;", "(= x (+ a (* b c)))"},
		{"a < b == c > d;", "(== (< a b) (> c d))"},
		{"a.b + c;", "(+ (. a b) c)"},
		{"x += y = z;", "(+= x (= y z))"},
		{"a % b / c;", "(% a (/ b c))"},
		{"a - b - c;", "(- a (- b c))"},
		{"\"s\" == 1.5;", "(== \"s\" 1.5)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, body(t, tt.src))
		})
	}
}

func TestStatements(t *testing.T) {
	assert.Equal(t, []string{"a", "(+ b c)"}, body(t, "a; ;; b + c;"))
	assert.Empty(t, body(t, ""))
}

func TestControlFlowLinesAreSkipped(t *testing.T) {
	got := body(t, "x; if a then b; while c do d; end end for e; end y;")
	assert.Equal(t, []string{"x", "y"}, got)
}

func TestTopLevelNoiseIsSkipped(t *testing.T) {
	tree := mustParse(t, "x = 1; func f() returns Int end @ import")
	assert.Equal(t, []string{"f"}, tree.Registry.Names())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind errors.Kind
		msg  string
	}{
		{"missing name", "func (Int a) returns Int end", errors.MissingFunctionName, ""},
		{"keyword as name", "func end", errors.MissingFunctionName, ""},
		{"missing paren", "func add returns Int end", errors.MissingParameterList, ""},
		{"unbalanced params", "func add(Int a returns Int end", errors.UnbalancedParameterList, ""},
		{"missing returns", "func add(Int a) Int a; end", errors.MissingReturnType, ""},
		{"missing return type", "func add(Int a) returns end", errors.MissingReturnType, ""},
		{"number return type", "func add(Int a) returns 5 end", errors.MissingReturnType, ""},
		{"missing param name", "func add(Int) returns Int end", errors.MalformedParameterPair, "expected to see a parameter name"},
		{"missing comma", "func add(Int a Int b) returns Int end", errors.MalformedParameterPair, "expected to see a comma between parameters"},
		{"trailing comma", "func add(Int a,) returns Int end", errors.MalformedParameterPair, "expected to see a parameter type"},
		{"bad param type", "func add(5 a) returns Int end", errors.MalformedParameterPair, "expected to see a parameter type"},
		{"no end", "func add() returns Int a+b;", errors.UnterminatedBlock, ""},
		{"nested block without end", "func f() returns Int if x then y; end", errors.UnterminatedBlock, ""},
		{"no semicolon", "func add() returns Int a+b end", errors.UnterminatedExpressionLine, ""},
		{"missing left", "func add() returns Int +b; end", errors.MissingOperand, "operator '+' is missing its left operand"},
		{"missing right", "func add() returns Int a*; end", errors.MissingOperand, "operator '*' is missing its right operand"},
		{"no operator", "func add() returns Int a b; end", errors.AmbiguousOrInvalidExpression, ""},
		{"unbalanced parens", "func add() returns Int ; (a+b; end", errors.AmbiguousOrInvalidExpression, ""},
		{"stray close", "func add() returns Int a+b); end", errors.AmbiguousOrInvalidExpression, ""},
		{"empty parens", "func add() returns Int ; (); end", errors.AmbiguousOrInvalidExpression, ""},
		{"group without operator", "func add() returns Int ; (a+b) c; end", errors.AmbiguousOrInvalidExpression, ""},
		{"prefix", "func add() returns Int !a; end", errors.UnsupportedExpression, ""},
		{"postfix", "func add() returns Int a++; end", errors.UnsupportedExpression, ""},
		{"call", "func add() returns Int foo(a); end", errors.UnsupportedExpression, ""},
		{"let", "func add() returns Int let x; end", errors.UnsupportedExpression, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := parse(t, tt.src)
			assert.Nil(t, tree)
			require.Error(t, err)
			assert.Equal(t, tt.kind, errors.KindOf(err), err.Error())
			if tt.msg != "" {
				assert.Equal(t, tt.msg, err.Error())
			}
		})
	}
}

func TestMissingReturnTypeSuggestsKeyword(t *testing.T) {
	_, err := parse(t, "func add(Int a) return Int a; end")
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.MissingReturnType, ce.Kind)
	require.NotEmpty(t, ce.Suggestions)
	assert.Equal(t, "returns", ce.Suggestions[0].Replacement)
	assert.Equal(t, 17, ce.Position.Column)
}

func TestParseIsDeterministic(t *testing.T) {
	inputs := []string{
		"func add(Int a Int b) returns Int end",
		"func add() returns Int a b; end",
		"func f() returns Int 1+; end func g() returns Int end",
	}
	for _, src := range inputs {
		tokens, err := Tokenize(text.MustDecode(src))
		require.NoError(t, err)

		p := NewParser(tokens)
		_, first := p.Parse()
		_, second := p.Parse()
		_, fresh := Parse(tokens)

		require.Error(t, first)
		assert.Equal(t, errors.KindOf(first), errors.KindOf(second))
		assert.Equal(t, first.Error(), second.Error())
		assert.Equal(t, first.Error(), fresh.Error())
	}

	tokens, err := Tokenize(text.MustDecode("func f() returns Int 1+2*3; end"))
	require.NoError(t, err)
	a, err := Parse(tokens)
	require.NoError(t, err)
	b, err := Parse(tokens)
	require.NoError(t, err)
	assert.Equal(t, a.Arena.Dump(), b.Arena.Dump())
}

func TestParserState(t *testing.T) {
	tokens, err := Tokenize(text.MustDecode("func f() returns Int end"))
	require.NoError(t, err)
	p := NewParser(tokens)
	assert.Equal(t, StateInit, p.State())
	_, err = p.Parse()
	require.NoError(t, err)
	assert.Equal(t, StateDone, p.State())

	tokens, err = Tokenize(text.MustDecode("func f() returns Int a b; end"))
	require.NoError(t, err)
	p = NewParser(tokens)
	_, err = p.Parse()
	require.Error(t, err)
	assert.Equal(t, StateFailed, p.State())
	assert.Equal(t, "FuncBody", StateFuncBody.String())
}

func TestRegistry(t *testing.T) {
	tree := mustParse(t, `
func zeta() returns Int end
func alpha(Int x) returns Int x; end
func zeta(Str s) returns Str end
func Beta() returns Int end`)

	assert.Equal(t, 3, tree.Registry.Len())
	assert.Equal(t, []string{"Beta", "alpha", "zeta"}, tree.Registry.Names())

	idx, ok := tree.Registry.Lookup("zeta")
	require.True(t, ok)
	assert.Equal(t, "(func zeta (returns Int))", tree.Arena.SExpr(idx))

	_, ok = tree.Registry.Lookup("missing")
	assert.False(t, ok)

	// Both zeta declarations are in the tree; only the first is registered.
	assert.Len(t, tree.Arena.Find(ast.Function), 4)
}

func TestParseSource(t *testing.T) {
	res, err := ParseSource("ok.fl", []byte("func add(Int a, Int b) returns Int a+b; end"))
	require.NoError(t, err)
	assert.Len(t, res.Tokens, 16)
	assert.Equal(t, "ok.fl", res.Path)

	sig, ok := res.Signature("add")
	assert.True(t, ok)
	assert.Equal(t, "add(Int a, Int b) returns Int", sig)

	tok, ok := res.TokenAt(1, 33)
	require.True(t, ok)
	assert.Equal(t, "Int", tok.Lexeme())
	_, ok = res.TokenAt(2, 1)
	assert.False(t, ok)

	_, err = ParseSource("bad.fl", []byte{'f', 0xFF})
	assert.True(t, errors.IsKind(err, errors.InvalidLeadByte))

	_, err = ParseSource("bad.fl", []byte(`func f() returns Int "x; end`))
	assert.True(t, errors.IsKind(err, errors.UnterminatedStringLiteral))
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.fl")
	require.NoError(t, os.WriteFile(path, []byte("func main() returns Int 0; end\n"), 0o644))

	res, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"main"}, res.Tree.Registry.Names())

	_, err = ParseFile(filepath.Join(dir, "missing.fl"))
	assert.True(t, errors.IsKind(err, errors.SourceUnreadable))
}
