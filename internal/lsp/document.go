package lsp

import (
	"flowlang/grammar"
	"flowlang/internal/parser"
	"flowlang/internal/text"
	"flowlang/token"
)

// document is the analysed state of one open file. result is nil when the
// front end failed; tokens and outline are kept whenever their own stage
// succeeded so highlighting and symbols survive a parse error further down.
type document struct {
	path    string
	content []byte
	tokens  []token.Token
	result  *parser.Result
	outline *grammar.File
	err     error
}

func analyze(path string, content []byte) *document {
	doc := &document{path: path, content: content}

	if txt, err := text.Decode(content); err == nil {
		if tokens, err := parser.Tokenize(txt); err == nil {
			doc.tokens = tokens
		}
	}

	doc.result, doc.err = parser.ParseSource(path, content)
	if doc.result != nil {
		doc.tokens = doc.result.Tokens
	}

	if outline, err := grammar.ParseOutline(path, content); err == nil {
		doc.outline = outline
	} else {
		log.Debugf("no outline for %s: %s", path, err)
	}
	return doc
}

// functionNames lists every declared function, from the tree when the parse
// succeeded and from the outline otherwise.
func (d *document) functionNames() []string {
	if d.result != nil {
		return d.result.Tree.Registry.Names()
	}
	var names []string
	if d.outline != nil {
		for _, fn := range d.outline.Functions() {
			names = append(names, fn.Name.Value)
		}
	}
	return names
}

func (d *document) signature(name string) (string, bool) {
	if d.result != nil {
		return d.result.Signature(name)
	}
	if d.outline != nil {
		for _, fn := range d.outline.Functions() {
			if fn.Name.Value == name {
				return fn.Signature(), true
			}
		}
	}
	return "", false
}
