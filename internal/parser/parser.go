package parser

import (
	"fmt"

	"github.com/tliron/commonlog"

	"flowlang/internal/ast"
	"flowlang/internal/errors"
	"flowlang/token"
)

var log = commonlog.GetLogger("flow.parser")

// State is the position of the parser in its top-level state machine.
type State int

const (
	StateInit State = iota
	StateTopLevel
	StateFuncHeader
	StateFuncBody
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateTopLevel:
		return "TopLevel"
	case StateFuncHeader:
		return "FuncHeader"
	case StateFuncBody:
		return "FuncBody"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tree is the product of a successful parse.
type Tree struct {
	Arena    *ast.Arena
	Root     ast.Index
	Registry *Registry
}

// Parser builds an arena from a token sequence. Every call to Parse starts
// from a fresh arena and registry.
type Parser struct {
	tokens   []token.Token
	arena    *ast.Arena
	registry *Registry
	root     ast.Index
	state    State
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, state: StateInit}
}

// Parse is NewParser(tokens).Parse().
func Parse(tokens []token.Token) (*Tree, error) {
	return NewParser(tokens).Parse()
}

func (p *Parser) State() State {
	return p.state
}

func (p *Parser) Parse() (*Tree, error) {
	p.arena = ast.NewArena()
	p.registry = NewRegistry()
	p.state = StateTopLevel

	root, err := p.arena.AddNode(token.Token{}, ast.NoParent, ast.Program)
	if err != nil {
		return p.fail(err)
	}
	p.root = root

	for i := 0; i < len(p.tokens); {
		tok := p.tokens[i]
		if tok.Kind != token.Func {
			log.Warningf("skipping %s at %d:%d outside of a function", tok, tok.Line, tok.Column)
			i++
			continue
		}

		end, ok := SeekBalanced(p.tokens[i:])
		if !ok {
			return p.fail(errors.UnterminatedBlockError("func", tok.Pos()))
		}
		if err := p.parseFunc(p.tokens[i : i+end+1]); err != nil {
			return p.fail(err)
		}
		p.state = StateTopLevel
		i += end + 1
	}

	p.state = StateDone
	log.Debugf("parsed %d tokens into %d nodes, %d functions", len(p.tokens), p.arena.Len(), p.registry.Len())
	return &Tree{Arena: p.arena, Root: p.root, Registry: p.registry}, nil
}

// fail drops everything built so far.
func (p *Parser) fail(err error) (*Tree, error) {
	p.state = StateFailed
	p.arena = nil
	p.registry = nil
	if ce, ok := errors.As(err); ok {
		log.Debugf("parse failed: %s", ce.Summary())
	}
	return nil, err
}

func (p *Parser) addNode(tok token.Token, parent ast.Index, role ast.Role) (ast.Index, error) {
	return p.arena.AddNode(tok, parent, role)
}
