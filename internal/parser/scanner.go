package parser

import (
	"flowlang/internal/errors"
	"flowlang/internal/text"
	"flowlang/token"
)

const commentDelimiter = '#'

// Scanner turns decoded source into tokens in a single pass. The cursor
// fields are the only mutable scan state.
type Scanner struct {
	source      *text.Text
	chars       []text.Char
	tokens      []token.Token
	start       int
	current     int
	line        int
	column      int
	startLine   int
	startColumn int
}

func NewScanner(source *text.Text) *Scanner {
	return &Scanner{
		source: source,
		chars:  source.Chars(),
		line:   1,
		column: 1,
	}
}

// Tokenize scans the whole text. On failure no tokens are returned.
func Tokenize(source *text.Text) ([]token.Token, error) {
	return NewScanner(source).ScanTokens()
}

func (s *Scanner) ScanTokens() ([]token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.startLine = s.line
		s.startColumn = s.column
		if err := s.scanToken(); err != nil {
			s.tokens = nil
			return nil, err
		}
	}
	tokens := s.tokens
	s.tokens = nil
	return tokens, nil
}

func (s *Scanner) scanToken() error {
	c := s.advance()
	switch {
	case isWhitespace(c):
		return nil
	case c.Is(commentDelimiter):
		return s.scanComment()
	case isOperatorChar(c):
		return s.scanOperator()
	case isDigit(c):
		return s.scanNumber()
	case c.Is('"'):
		return s.scanString()
	}
	if kind, ok := punctuationKind(c); ok {
		return s.addToken(kind)
	}
	return s.scanIdentifier()
}

func (s *Scanner) scanComment() error {
	for !s.isAtEnd() {
		if s.advance().Is(commentDelimiter) {
			return nil
		}
	}
	return errors.UnterminatedCommentError(s.startPos())
}

func (s *Scanner) scanOperator() error {
	for isOperatorChar(s.peek()) {
		s.advance()
	}
	run := s.lexeme()
	kind, ok := token.LookupOperator(run)
	if !ok {
		return errors.UnknownOperatorError(run, s.startPos())
	}
	return s.addToken(kind)
}

func (s *Scanner) scanNumber() error {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek().Is('.') && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.addToken(token.Number)
}

func (s *Scanner) scanString() error {
	for !s.isAtEnd() {
		c := s.advance()
		if c.Is('\\') {
			if s.isAtEnd() {
				break
			}
			s.advance()
			continue
		}
		if c.Is('"') {
			return s.addToken(token.StringLit)
		}
	}
	return errors.UnterminatedStringError(s.startPos())
}

func (s *Scanner) scanIdentifier() error {
	for !s.isAtEnd() && isIdentifierChar(s.peek()) {
		s.advance()
	}
	return s.addToken(token.LookupIdentifier(s.lexeme()))
}

func (s *Scanner) advance() text.Char {
	c := s.chars[s.current]
	s.current++
	if c.Is('\n') {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return c
}

func (s *Scanner) peek() text.Char {
	if s.isAtEnd() {
		return 0
	}
	return s.chars[s.current]
}

func (s *Scanner) peekNext() text.Char {
	if s.current+1 >= len(s.chars) {
		return 0
	}
	return s.chars[s.current+1]
}

// addToken emits the current lexeme. An opening parenthesis directly after
// an identifier turns that identifier into a call.
func (s *Scanner) addToken(kind token.Kind) error {
	view, err := s.source.Slice(s.start, s.current)
	if err != nil {
		return err
	}
	if kind == token.OpenParen && len(s.tokens) > 0 {
		if prev := &s.tokens[len(s.tokens)-1]; prev.Kind == token.Identifier {
			prev.Kind = token.FuncCall
		}
	}
	s.tokens = append(s.tokens, token.Token{
		Kind:   kind,
		Text:   view,
		Line:   s.startLine,
		Column: s.startColumn,
		Offset: s.start,
	})
	return nil
}

func (s *Scanner) lexeme() string {
	view, err := s.source.Slice(s.start, s.current)
	if err != nil {
		return ""
	}
	return view.String()
}

func (s *Scanner) startPos() errors.Position {
	return errors.Position{Line: s.startLine, Column: s.startColumn, Offset: s.start}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.chars)
}

// Character classes.

func isWhitespace(c text.Char) bool {
	return c.Is(' ') || c.Is('\t') || c.Is('\n') || c.Is('\r')
}

func isDigit(c text.Char) bool {
	return c.IsASCII() && '0' <= c.Byte() && c.Byte() <= '9'
}

func isOperatorChar(c text.Char) bool {
	if !c.IsASCII() {
		return false
	}
	switch c.Byte() {
	case '+', '-', '/', '*', '>', '<', '!', '=', '%', '.':
		return true
	}
	return false
}

func punctuationKind(c text.Char) (token.Kind, bool) {
	if !c.IsASCII() {
		return token.Undefined, false
	}
	kind, ok := token.Punctuation[c.Byte()]
	return kind, ok
}

func isIdentifierChar(c text.Char) bool {
	if isWhitespace(c) || isOperatorChar(c) || isDigit(c) || c.Is('"') || c.Is(commentDelimiter) {
		return false
	}
	_, punct := punctuationKind(c)
	return !punct
}
