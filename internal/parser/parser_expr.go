package parser

import (
	"flowlang/internal/ast"
	"flowlang/internal/errors"
	"flowlang/token"
)

// parseExpr reduces a flat statement span to a subtree under parent by
// splitting at the loosest-binding operator and recursing on each side.
func (p *Parser) parseExpr(span []token.Token, parent ast.Index) (ast.Index, error) {
	span, err := stripParens(span)
	if err != nil {
		return ast.NoParent, err
	}
	if len(span) == 1 {
		return p.addNode(span[0], parent, ast.Expr)
	}

	pivot, err := findPivot(span)
	if err != nil {
		return ast.NoParent, err
	}
	op := span[pivot]

	switch binding := token.BindingOf(op.Kind); binding {
	case token.BinaryInfix:
		left, right := span[:pivot], span[pivot+1:]
		if len(left) == 0 {
			return ast.NoParent, errors.MissingOperandError(op.Lexeme(), "left", op.Pos())
		}
		if len(right) == 0 {
			return ast.NoParent, errors.MissingOperandError(op.Lexeme(), "right", op.Pos())
		}
		node, err := p.addNode(op, parent, ast.Expr)
		if err != nil {
			return ast.NoParent, err
		}
		if _, err := p.parseExpr(left, node); err != nil {
			return ast.NoParent, err
		}
		if _, err := p.parseExpr(right, node); err != nil {
			return ast.NoParent, err
		}
		return node, nil
	default:
		return ast.NoParent, errors.UnsupportedExpressionError(binding.String(), op.Lexeme(), op.Pos())
	}
}

// stripParens removes parentheses that wrap the whole span.
func stripParens(span []token.Token) ([]token.Token, error) {
	for len(span) >= 2 && span[0].Kind == token.OpenParen {
		closeIdx, ok := SeekBalanced(span)
		if !ok || closeIdx != len(span)-1 {
			break
		}
		if closeIdx == 1 {
			return nil, errors.AmbiguousExpressionError("empty parentheses", span[0].Pos())
		}
		span = span[1:closeIdx]
	}
	return span, nil
}

// findPivot returns the index of the operator that should become the root:
// the lowest parenthesis depth wins, then the highest precedence number.
// Ties keep the leftmost operator.
func findPivot(span []token.Token) (int, error) {
	best, bestDepth, bestPrec := -1, 0, 0
	depth := 0

	for i, tok := range span {
		switch tok.Kind {
		case token.OpenParen:
			depth++
			continue
		case token.CloseParen:
			depth--
			if depth < 0 {
				return 0, errors.AmbiguousExpressionError("unbalanced parentheses", tok.Pos())
			}
			continue
		}

		prec := token.Precedence(tok.Kind)
		if prec == 0 {
			continue
		}
		if best < 0 || depth < bestDepth || (depth == bestDepth && prec > bestPrec) {
			best, bestDepth, bestPrec = i, depth, prec
		}
	}

	switch {
	case depth != 0:
		return 0, errors.AmbiguousExpressionError("unbalanced parentheses", span[0].Pos())
	case best < 0:
		return 0, errors.AmbiguousExpressionError("operands are not joined by an operator", span[0].Pos())
	case bestDepth > 0:
		return 0, errors.AmbiguousExpressionError("parenthesised group is not joined by an operator", span[0].Pos())
	}
	return best, nil
}
