package ast

import (
	"strings"
)

// Dump renders the arena as an indented outline, one node per line.
func (a *Arena) Dump() string {
	var b strings.Builder
	a.Walk(a.Root(), func(i Index, depth int) bool {
		n := a.nodes[i]
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Role.String())
		if n.Role != Program {
			b.WriteString(" ")
			b.WriteString(n.Token.Kind.String())
			b.WriteString(" ")
			b.WriteString(n.Label())
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}

// SExpr renders the subtree under i as an S-expression. Functions print as
// (func name (returns T) (param T x) body...); operators print as (op lhs rhs).
func (a *Arena) SExpr(i Index) string {
	var b strings.Builder
	a.writeSExpr(&b, i)
	return b.String()
}

// Format renders every function in the arena, one S-expression per line.
func (a *Arena) Format() string {
	var lines []string
	for _, fn := range a.Children(a.Root()) {
		lines = append(lines, a.SExpr(fn))
	}
	return strings.Join(lines, "\n")
}

func (a *Arena) writeSExpr(b *strings.Builder, i Index) {
	if !a.valid(i) {
		return
	}
	n := a.nodes[i]

	var head string
	switch n.Role {
	case Program:
		head = "program"
	case Function:
		head = "func " + n.Label()
	case ReturnType:
		b.WriteString("(returns " + n.Label() + ")")
		return
	case Param:
		b.WriteString("(param ")
		for _, child := range n.Children {
			b.WriteString(a.nodes[child].Label())
			b.WriteString(" ")
		}
		b.WriteString(n.Label())
		b.WriteString(")")
		return
	case ParamType:
		b.WriteString(n.Label())
		return
	default:
		if len(n.Children) == 0 {
			b.WriteString(n.Label())
			return
		}
		head = n.Label()
	}

	b.WriteString("(")
	b.WriteString(head)
	for _, child := range n.Children {
		b.WriteString(" ")
		a.writeSExpr(b, child)
	}
	b.WriteString(")")
}
