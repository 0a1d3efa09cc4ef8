package parser

import (
	"flowlang/internal/ast"
	"flowlang/internal/errors"
	"flowlang/token"
)

type param struct {
	typ  token.Token
	name token.Token
}

// parseFunc parses one `func ... end` span. span starts with the func
// keyword and ends with its matching end.
func (p *Parser) parseFunc(span []token.Token) error {
	p.state = StateFuncHeader
	closing := span[len(span)-1]

	name := span[1]
	switch name.Kind {
	case token.FuncCall:
	case token.Identifier:
		return errors.MissingParameterListError(name.Pos())
	default:
		return errors.MissingFunctionNameError(name.Pos())
	}
	if span[2].Kind != token.OpenParen {
		return errors.MissingParameterListError(span[2].Pos())
	}

	closeParen, ok := SeekBalanced(span[2 : len(span)-1])
	if !ok {
		return errors.UnbalancedParameterListError(span[2].Pos())
	}
	closeParen += 2

	params, err := parseParams(span[3:closeParen], span[closeParen])
	if err != nil {
		return err
	}

	next := closeParen + 1
	if span[next].Kind != token.Returns {
		return errors.MissingReturnTypeError(lexemeOf(span[next], closing), span[next].Pos())
	}
	returnType := span[next+1]
	if returnType.Kind != token.Identifier {
		return errors.MissingReturnTypeError("", returnType.Pos())
	}

	fn, err := p.addNode(name, p.root, ast.Function)
	if err != nil {
		return err
	}
	if !p.registry.Register(name.Lexeme(), fn) {
		log.Warningf("function %q at %d:%d is already declared, keeping the first declaration",
			name.Lexeme(), name.Line, name.Column)
	}
	if _, err := p.addNode(returnType, fn, ast.ReturnType); err != nil {
		return err
	}
	for _, pr := range params {
		idx, err := p.addNode(pr.name, fn, ast.Param)
		if err != nil {
			return err
		}
		if _, err := p.addNode(pr.typ, idx, ast.ParamType); err != nil {
			return err
		}
	}

	p.state = StateFuncBody
	return p.parseExprs(span[next+2:len(span)-1], fn)
}

// lexemeOf returns the text of tok unless it is the closing end of the
// function, which means nothing was written in its place.
func lexemeOf(tok, closing token.Token) string {
	if tok.Offset == closing.Offset {
		return ""
	}
	return tok.Lexeme()
}

// parseParams validates `Type name (, Type name)*`. closer is the ')' that
// ends the list, used to place errors about missing trailing parts.
func parseParams(list []token.Token, closer token.Token) ([]param, error) {
	var params []param
	for i := 0; i < len(list); {
		if list[i].Kind != token.Identifier {
			return nil, errors.MalformedParameterPairError("parameter type", list[i].Pos())
		}
		typ := list[i]
		i++

		if i >= len(list) {
			return nil, errors.MalformedParameterPairError("parameter name", closer.Pos())
		}
		if list[i].Kind != token.Identifier {
			return nil, errors.MalformedParameterPairError("parameter name", list[i].Pos())
		}
		params = append(params, param{typ: typ, name: list[i]})
		i++

		if i >= len(list) {
			break
		}
		if list[i].Kind != token.Comma {
			return nil, errors.MalformedParameterPairError("comma between parameters", list[i].Pos())
		}
		i++
		if i >= len(list) {
			return nil, errors.MalformedParameterPairError("parameter type", closer.Pos())
		}
	}
	return params, nil
}

// parseExprs splits a body into ';'-terminated statements and attaches one
// subtree per statement to parent. Control-flow blocks are stepped over.
func (p *Parser) parseExprs(body []token.Token, parent ast.Index) error {
	for i := 0; i < len(body); {
		first := body[i]
		switch first.Kind {
		case token.If, token.For, token.While:
			end, ok := SeekBalanced(body[i:])
			if !ok {
				return errors.UnterminatedBlockError(first.Lexeme(), first.Pos())
			}
			log.Debugf("skipping %s block at %d:%d", first.Lexeme(), first.Line, first.Column)
			i += end + 1
			continue
		}

		eol := -1
		for j := i; j < len(body); j++ {
			if body[j].Kind == token.EOL {
				eol = j
				break
			}
		}
		if eol < 0 {
			return errors.UnterminatedExpressionLineError(first.Pos())
		}
		if eol > i {
			if _, err := p.parseExpr(body[i:eol], parent); err != nil {
				return err
			}
		}
		i = eol + 1
	}
	return nil
}
