package lsp

import (
	"strings"

	"flowlang/token"
)

// SemanticTokenTypes is the legend advertised to clients.
var SemanticTokenTypes = []string{
	"type",
	"function",
	"variable",
	"parameter",
	"keyword",
	"number",
	"string",
	"operator",
}

// SemanticTokenModifiers is the modifier legend advertised to clients.
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// SemanticToken represents a single LSP semantic token entry
// Line and StartChar are 0-based positions
// TokenType is an index into the SemanticTokenTypes array
// TokenModifiers is a bitmask based on SemanticTokenModifiers
type SemanticToken struct {
	Line           uint32
	StartChar      uint32
	Length         uint32
	TokenType      int
	TokenModifiers int
}

// collectSemanticTokens classifies the token stream. Types and parameter
// names are recognised from their position in a function header.
func collectSemanticTokens(tokens []token.Token) []SemanticToken {
	var out []SemanticToken
	inParams := false

	for i, tok := range tokens {
		var prev, next token.Kind
		if i > 0 {
			prev = tokens[i-1].Kind
		}
		if i+1 < len(tokens) {
			next = tokens[i+1].Kind
		}

		tokenType, modifiers := "", 0
		switch {
		case tok.Kind.IsKeyword():
			tokenType = "keyword"
		case tok.Kind == token.FuncCall:
			tokenType = "function"
			if prev == token.Func {
				modifiers = modifierMask("declaration")
				inParams = true
			}
		case tok.Kind == token.CloseParen:
			inParams = false
		case tok.Kind == token.Identifier && prev == token.Returns:
			tokenType = "type"
		case tok.Kind == token.Identifier && inParams && next == token.Identifier:
			tokenType = "type"
		case tok.Kind == token.Identifier && inParams && prev == token.Identifier:
			tokenType = "parameter"
			modifiers = modifierMask("declaration")
		case tok.Kind == token.Identifier:
			tokenType = "variable"
		case tok.Kind == token.Number:
			tokenType = "number"
		case tok.Kind == token.StringLit:
			tokenType = "string"
		case tok.Kind.IsOperator():
			tokenType = "operator"
		}

		if tokenType == "" || strings.Contains(tok.Lexeme(), "\n") {
			continue
		}
		out = append(out, SemanticToken{
			Line:           uint32(tok.Line - 1),
			StartChar:      uint32(tok.Column - 1),
			Length:         uint32(tok.Width()),
			TokenType:      indexOf(tokenType, SemanticTokenTypes),
			TokenModifiers: modifiers,
		})
	}
	return out
}

// encodeSemanticTokens packs tokens into the LSP relative wire format.
func encodeSemanticTokens(tokens []SemanticToken) []uint32 {
	data := make([]uint32, 0, len(tokens)*5)
	var prevLine, prevStart uint32

	for _, tok := range tokens {
		deltaLine := tok.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = tok.StartChar - prevStart
		} else {
			deltaStart = tok.StartChar
		}

		data = append(data, deltaLine, deltaStart, tok.Length, uint32(tok.TokenType), uint32(tok.TokenModifiers))

		prevLine = tok.Line
		prevStart = tok.StartChar
	}
	return data
}

func modifierMask(name string) int {
	return 1 << indexOf(name, SemanticTokenModifiers)
}

// indexOf returns the index of a string in a slice, or 0 if not found
func indexOf(target string, list []string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return 0
}
