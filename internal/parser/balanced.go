package parser

import "flowlang/token"

var bracketClosers = map[token.Kind]token.Kind{
	token.OpenParen:  token.CloseParen,
	token.OpenSquare: token.CloseSquare,
	token.OpenCurly:  token.CloseCurly,
}

// isBlockOpener reports whether k opens a block closed by `end`.
func isBlockOpener(k token.Kind) bool {
	switch k {
	case token.Func, token.If, token.While, token.For:
		return true
	}
	return false
}

// SeekBalanced finds the token that closes the construct opened by
// tokens[0]. It returns the index of the matching closer, so the enclosed
// body is tokens[1:idx]. ok is false if tokens[0] opens nothing or the input
// ends first.
func SeekBalanced(tokens []token.Token) (idx int, ok bool) {
	if len(tokens) == 0 {
		return 0, false
	}
	opener := tokens[0].Kind
	if isBlockOpener(opener) {
		return seek(tokens, isBlockOpener, token.End)
	}
	if closer, found := bracketClosers[opener]; found {
		return seek(tokens, func(k token.Kind) bool { return k == opener }, closer)
	}
	return 0, false
}

func seek(tokens []token.Token, opens func(token.Kind) bool, closer token.Kind) (int, bool) {
	depth := 0
	for i, tok := range tokens {
		switch {
		case opens(tok.Kind):
			depth++
		case tok.Kind == closer:
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
