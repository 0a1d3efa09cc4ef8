package parser

import (
	"flowlang/internal/text"
)

// ParseSource decodes, tokenizes and parses src. The first failure of any
// stage is returned as a *errors.CompilerError and nothing else is kept.
func ParseSource(path string, src []byte) (*Result, error) {
	txt, err := text.Decode(src)
	if err != nil {
		return nil, err
	}
	return parseText(path, txt)
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*Result, error) {
	txt, err := text.LoadSourceFile(path)
	if err != nil {
		return nil, err
	}
	return parseText(path, txt)
}

func parseText(path string, txt *text.Text) (*Result, error) {
	tokens, err := Tokenize(txt)
	if err != nil {
		return nil, err
	}
	tree, err := Parse(tokens)
	if err != nil {
		return nil, err
	}
	log.Debugf("%s: %d functions", path, tree.Registry.Len())
	return &Result{Path: path, Text: txt, Tokens: tokens, Tree: tree}, nil
}
