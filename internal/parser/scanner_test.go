package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlang/internal/errors"
	"flowlang/internal/text"
	"flowlang/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, err := Tokenize(text.MustDecode(src))
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func lexemes(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Lexeme()
	}
	return out
}

func TestTokenizeFunction(t *testing.T) {
	tokens := scan(t, "func add(Int a, Int b) returns Int a+b; end")

	assert.Equal(t, []token.Kind{
		token.Func, token.FuncCall, token.OpenParen,
		token.Identifier, token.Identifier, token.Comma,
		token.Identifier, token.Identifier, token.CloseParen,
		token.Returns, token.Identifier,
		token.Identifier, token.Add, token.Identifier, token.EOL,
		token.End,
	}, kinds(tokens))
	assert.Equal(t, []string{
		"func", "add", "(", "Int", "a", ",", "Int", "b", ")",
		"returns", "Int", "a", "+", "b", ";", "end",
	}, lexemes(tokens))
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scan(t, "func if elif else then do while for import returns let end customIdent")
	assert.Equal(t, []token.Kind{
		token.Func, token.If, token.Elif, token.Else, token.Then, token.Do,
		token.While, token.For, token.Import, token.Returns, token.Let, token.End,
		token.Identifier,
	}, kinds(tokens))
}

func TestOperators(t *testing.T) {
	tokens := scan(t, "++ -- . ! * / % + - < <= > >= == != = += -= *= /=")
	assert.Equal(t, []token.Kind{
		token.PostInc, token.PostDec, token.Period, token.LogNot,
		token.Mul, token.Div, token.Mod, token.Add, token.Sub,
		token.LessThan, token.LessEqual, token.GreaterThan, token.GreaterEqual,
		token.Equals, token.NotEquals, token.Assign,
		token.AddAssign, token.SubAssign, token.MulAssign, token.DivAssign,
	}, kinds(tokens))
}

func TestOperatorRunsAreMaximal(t *testing.T) {
	_, err := Tokenize(text.MustDecode("a =- b"))
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.UnknownOperatorSequence))
	assert.Contains(t, err.Error(), "'=-'")

	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 1, ce.Position.Line)
	assert.Equal(t, 3, ce.Position.Column)
	assert.Equal(t, 2, ce.Length)
}

func TestPunctuation(t *testing.T) {
	tokens := scan(t, "; @ ( ) [ ] { } ,")
	assert.Equal(t, []token.Kind{
		token.EOL, token.Prepocessor, token.OpenParen, token.CloseParen,
		token.OpenSquare, token.CloseSquare, token.OpenCurly, token.CloseCurly, token.Comma,
	}, kinds(tokens))
}

func TestNumbers(t *testing.T) {
	tokens := scan(t, "42 3.25 4. 5.x")
	assert.Equal(t, []string{"42", "3.25", "4", ".", "5", ".", "x"}, lexemes(tokens))
	assert.Equal(t, []token.Kind{
		token.Number, token.Number, token.Number, token.Period,
		token.Number, token.Period, token.Identifier,
	}, kinds(tokens))
}

func TestIdentifiersStopAtDigits(t *testing.T) {
	tokens := scan(t, "x1")
	assert.Equal(t, []token.Kind{token.Identifier, token.Number}, kinds(tokens))
}

func TestStrings(t *testing.T) {
	tokens := scan(t, `"hello" "say \"hi\"" ""`)
	require.Len(t, tokens, 3)
	for _, tok := range tokens {
		assert.Equal(t, token.StringLit, tok.Kind)
	}
	assert.Equal(t, `"hello"`, tokens[0].Lexeme())
	assert.Equal(t, `"say \"hi\""`, tokens[1].Lexeme())
	assert.Equal(t, `""`, tokens[2].Lexeme())
}

func TestUnterminatedString(t *testing.T) {
	for _, src := range []string{`"abc`, `x = "abc\"`, `"abc\`} {
		tokens, err := Tokenize(text.MustDecode(src))
		assert.Nil(t, tokens, src)
		assert.True(t, errors.IsKind(err, errors.UnterminatedStringLiteral), src)
	}

	_, err := Tokenize(text.MustDecode(`x = "abc`))
	ce, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.Position{Line: 1, Column: 5, Offset: 4}, ce.Position)
}

func TestComments(t *testing.T) {
	tokens := scan(t, "a #one\ntwo# b")
	require.Len(t, tokens, 2)
	assert.Equal(t, "a", tokens[0].Lexeme())
	assert.Equal(t, "b", tokens[1].Lexeme())
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 6, tokens[1].Column)

	_, err := Tokenize(text.MustDecode("a # never closed"))
	assert.True(t, errors.IsKind(err, errors.UnterminatedComment))
	ce, _ := errors.As(err)
	assert.Equal(t, 3, ce.Position.Column)
}

func TestFuncCallPromotion(t *testing.T) {
	tokens := scan(t, "foo(x) bar #note# (y) baz")
	assert.Equal(t, []token.Kind{
		token.FuncCall, token.OpenParen, token.Identifier, token.CloseParen,
		token.FuncCall, token.OpenParen, token.Identifier, token.CloseParen,
		token.Identifier,
	}, kinds(tokens))

	// Only identifiers are promoted.
	tokens = scan(t, "if (x)")
	assert.Equal(t, token.If, tokens[0].Kind)
}

func TestPositions(t *testing.T) {
	tokens := scan(t, "func f()\n  returns Int\n\"a\nb\" end")

	ret := tokens[4]
	assert.Equal(t, token.Returns, ret.Kind)
	assert.Equal(t, 2, ret.Line)
	assert.Equal(t, 3, ret.Column)
	assert.Equal(t, 11, ret.Offset)

	str := tokens[6]
	assert.Equal(t, token.StringLit, str.Kind)
	assert.Equal(t, 3, str.Line)

	end := tokens[7]
	assert.Equal(t, 4, end.Line)
	assert.Equal(t, 4, end.Column)
}

func TestUnicodeIdentifiers(t *testing.T) {
	tokens := scan(t, "über = 1;")
	assert.Equal(t, "über", tokens[0].Lexeme())
	assert.Equal(t, token.Identifier, tokens[0].Kind)
	assert.Equal(t, 6, tokens[1].Column)
	assert.Equal(t, 5, tokens[1].Offset)
}

func TestTokenViewsBorrowText(t *testing.T) {
	src := text.MustDecode("a + b;")
	tokens, err := Tokenize(src)
	require.NoError(t, err)
	assert.True(t, tokens[0].Text.Valid())

	src.Append(text.ASCII(' '))
	assert.False(t, tokens[0].Text.Valid())
	assert.Equal(t, "", tokens[0].Lexeme())
}
