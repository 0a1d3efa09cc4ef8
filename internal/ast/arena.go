package ast

import (
	"fmt"

	"flowlang/internal/errors"
	"flowlang/token"
)

// Index addresses a node inside its Arena. Indices stay valid for the life of
// the arena because nodes are never removed or moved.
type Index int

// NoParent is passed to AddNode for a node with no parent.
const NoParent Index = -1

// Role tags the structural position of a node in the tree.
type Role int

const (
	Program Role = iota
	Function
	ReturnType
	Param
	ParamType
	Expr
)

func (r Role) String() string {
	switch r {
	case Program:
		return "Program"
	case Function:
		return "Function"
	case ReturnType:
		return "ReturnType"
	case Param:
		return "Param"
	case ParamType:
		return "ParamType"
	case Expr:
		return "Expr"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Node is one tree element. Children holds arena indices in source order.
type Node struct {
	Token    token.Token
	Children []Index
	Parent   Index
	Role     Role
}

// Label is the text printed for the node.
func (n Node) Label() string {
	if n.Role == Program {
		return "program"
	}
	return n.Token.Lexeme()
}

// Arena is an append-only node store for one parse.
type Arena struct {
	nodes []Node
}

func NewArena() *Arena {
	return &Arena{}
}

// AddNode appends a node and links it under parent. parent may be NoParent.
func (a *Arena) AddNode(tok token.Token, parent Index, role Role) (Index, error) {
	if parent != NoParent && !a.valid(parent) {
		return NoParent, errors.IndexOutOfRangeError(int(parent), len(a.nodes))
	}
	idx := Index(len(a.nodes))
	a.nodes = append(a.nodes, Node{Token: tok, Parent: parent, Role: role})
	if parent != NoParent {
		a.nodes[parent].Children = append(a.nodes[parent].Children, idx)
	}
	return idx, nil
}

func (a *Arena) valid(i Index) bool {
	return i >= 0 && int(i) < len(a.nodes)
}

// Len returns the number of nodes.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Root is the first node added, or NoParent for an empty arena.
func (a *Arena) Root() Index {
	if len(a.nodes) == 0 {
		return NoParent
	}
	return 0
}

// At returns a copy of node i.
func (a *Arena) At(i Index) (Node, error) {
	if !a.valid(i) {
		return Node{}, errors.IndexOutOfRangeError(int(i), len(a.nodes))
	}
	n := a.nodes[i]
	n.Children = append([]Index(nil), n.Children...)
	return n, nil
}

// Children returns the child indices of node i, or nil when i is out of range.
func (a *Arena) Children(i Index) []Index {
	if !a.valid(i) {
		return nil
	}
	return append([]Index(nil), a.nodes[i].Children...)
}

// Kind is the token kind of node i.
func (a *Arena) Kind(i Index) token.Kind {
	if !a.valid(i) {
		return token.Undefined
	}
	return a.nodes[i].Token.Kind
}

// Walk visits the subtree under from in pre-order. Returning false from fn
// skips the children of the node just visited.
func (a *Arena) Walk(from Index, fn func(i Index, depth int) bool) {
	if !a.valid(from) {
		return
	}
	a.walk(from, 0, fn)
}

func (a *Arena) walk(i Index, depth int, fn func(Index, int) bool) {
	if !fn(i, depth) {
		return
	}
	for _, child := range a.nodes[i].Children {
		a.walk(child, depth+1, fn)
	}
}

// Find returns the indices of all nodes with the given role, in arena order.
func (a *Arena) Find(role Role) []Index {
	var out []Index
	for i, n := range a.nodes {
		if n.Role == role {
			out = append(out, Index(i))
		}
	}
	return out
}
