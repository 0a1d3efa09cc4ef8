package grammar

import (
	"io"

	"github.com/alecthomas/participle/v2/lexer"

	"flowlang/internal/parser"
	"flowlang/internal/text"
	"flowlang/token"
)

// FlowLexer feeds participle with tokens from the hand-written scanner, so
// the outline grammar and the parser always agree on what a token is.
var FlowLexer lexer.Definition = &tokenDefinition{}

type tokenDefinition struct{}

// Symbols names every token kind after token.Kind.String, e.g. "FuncCall".
func (d *tokenDefinition) Symbols() map[string]lexer.TokenType {
	symbols := map[string]lexer.TokenType{"EOF": lexer.EOF}
	for _, k := range token.Kinds() {
		symbols[k.String()] = lexer.TokenType(k)
	}
	return symbols
}

func (d *tokenDefinition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	txt, err := text.Decode(raw)
	if err != nil {
		return nil, err
	}
	tokens, err := parser.Tokenize(txt)
	if err != nil {
		return nil, err
	}
	return &tokenLexer{filename: filename, tokens: tokens}, nil
}

type tokenLexer struct {
	filename string
	tokens   []token.Token
	next     int
}

func (l *tokenLexer) Next() (lexer.Token, error) {
	if l.next >= len(l.tokens) {
		return lexer.EOFToken(l.endPos()), nil
	}
	tok := l.tokens[l.next]
	l.next++
	return lexer.Token{
		Type:  lexer.TokenType(tok.Kind),
		Value: tok.Lexeme(),
		Pos:   l.position(tok),
	}, nil
}

func (l *tokenLexer) position(tok token.Token) lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Offset:   tok.Offset,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

func (l *tokenLexer) endPos() lexer.Position {
	if len(l.tokens) == 0 {
		return lexer.Position{Filename: l.filename, Line: 1, Column: 1}
	}
	last := l.tokens[len(l.tokens)-1]
	pos := l.position(last)
	pos.Offset += last.Width()
	pos.Column += last.Width()
	return pos
}
