package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("    ", level)
}

func (f *File) String() string {
	var b strings.Builder
	for _, fn := range f.Functions() {
		b.WriteString(fn.String())
		b.WriteString("\n")
	}
	return b.String()
}

// Signature renders the header, e.g. "add(Int a, Int b) returns Int".
func (fn *Function) Signature() string {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("%s(%s) returns %s", fn.Name.Value, strings.Join(params, ", "), fn.Returns.Value)
}

func (fn *Function) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("func %s  # line %d\n", fn.Signature(), fn.Pos.Line))
	writeBlocks(&b, fn.Body, 1)
	return b.String()
}

func (p *Param) String() string {
	return p.Type + " " + p.Name.Value
}

func writeBlocks(b *strings.Builder, items []*BodyItem, level int) {
	for _, item := range items {
		if item.Block == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%s%s  # line %d\n", indent(level), item.Block.Opener, item.Block.Pos.Line))
		writeBlocks(b, item.Block.Body, level+1)
	}
}
