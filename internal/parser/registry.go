package parser

import (
	"slices"

	"flowlang/internal/ast"
	"flowlang/internal/text"
)

// Registry maps function names to the arena index of their Function node.
type Registry struct {
	index map[string]ast.Index
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]ast.Index)}
}

// Register records name unless it is already present. It reports whether
// the name was new.
func (r *Registry) Register(name string, idx ast.Index) bool {
	if _, exists := r.index[name]; exists {
		return false
	}
	r.index[name] = idx
	return true
}

func (r *Registry) Lookup(name string) (ast.Index, bool) {
	idx, ok := r.index[name]
	return idx, ok
}

func (r *Registry) Len() int {
	return len(r.index)
}

// Names lists the registered names in character order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.index))
	for name := range r.index {
		names = append(names, name)
	}
	slices.SortFunc(names, text.Compare)
	return names
}
