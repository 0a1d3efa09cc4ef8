package lsp

import (
	"bytes"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flowlang/grammar"
	"flowlang/internal/parser"
	"flowlang/token"
)

// TextDocumentCompletion offers keywords and declared functions matching the
// word before the cursor.
func (h *FlowHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	prefix := wordBefore(doc.content, params.Position)
	items := []protocol.CompletionItem{}

	keywordKind := protocol.CompletionItemKindKeyword
	for _, kw := range sortedKeywords() {
		if prefix == "" || fuzzy.MatchFold(prefix, kw) {
			items = append(items, protocol.CompletionItem{Label: kw, Kind: &keywordKind})
		}
	}

	functionKind := protocol.CompletionItemKindFunction
	for _, name := range doc.functionNames() {
		if prefix != "" && !fuzzy.MatchFold(prefix, name) {
			continue
		}
		item := protocol.CompletionItem{Label: name, Kind: &functionKind}
		if sig, ok := doc.signature(name); ok {
			item.Detail = ptrString(sig)
		}
		items = append(items, item)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentHover shows the signature of the function under the cursor.
func (h *FlowHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tok, ok := parser.FindToken(doc.tokens, int(params.Position.Line)+1, int(params.Position.Character)+1)
	if !ok || (tok.Kind != token.FuncCall && tok.Kind != token.Identifier) {
		return nil, nil
	}
	sig, ok := doc.signature(tok.Lexeme())
	if !ok {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: "```flow\nfunc " + sig + "\n```",
		},
		Range: &protocol.Range{
			Start: protocol.Position{Line: uint32(tok.Line - 1), Character: uint32(tok.Column - 1)},
			End:   protocol.Position{Line: uint32(tok.Line - 1), Character: uint32(tok.Column - 1 + tok.Width())},
		},
	}, nil
}

// TextDocumentDocumentSymbol lists functions and their parameters from the
// outline.
func (h *FlowHandler) TextDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	symbols := []protocol.DocumentSymbol{}
	if doc.outline == nil {
		return symbols, nil
	}

	for _, fn := range doc.outline.Functions() {
		symbols = append(symbols, functionSymbol(fn))
	}
	return symbols, nil
}

func functionSymbol(fn *grammar.Function) protocol.DocumentSymbol {
	children := []protocol.DocumentSymbol{}
	for _, p := range fn.Params {
		r := identRange(p.Name)
		children = append(children, protocol.DocumentSymbol{
			Name:           p.Name.Value,
			Detail:         ptrString(p.Type),
			Kind:           protocol.SymbolKindVariable,
			Range:          r,
			SelectionRange: r,
		})
	}

	return protocol.DocumentSymbol{
		Name:   fn.Name.Value,
		Detail: ptrString(fn.Signature()),
		Kind:   protocol.SymbolKindFunction,
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(fn.Pos.Line - 1), Character: uint32(fn.Pos.Column - 1)},
			End:   protocol.Position{Line: uint32(fn.EndPos.Line - 1), Character: uint32(fn.EndPos.Column - 1)},
		},
		SelectionRange: identRange(fn.Name),
		Children:       children,
	}
}

func identRange(id grammar.PosIdent) protocol.Range {
	start := protocol.Position{Line: uint32(id.Pos.Line - 1), Character: uint32(id.Pos.Column - 1)}
	end := start
	end.Character += uint32(utf8.RuneCountInString(id.Value))
	return protocol.Range{Start: start, End: end}
}

func sortedKeywords() []string {
	keywords := make([]string, 0, len(token.Keywords))
	for kw := range token.Keywords {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// wordBefore returns the identifier characters immediately left of pos.
func wordBefore(content []byte, pos protocol.Position) string {
	lines := bytes.Split(content, []byte("\n"))
	if int(pos.Line) >= len(lines) {
		return ""
	}
	runes := []rune(string(lines[pos.Line]))
	end := min(int(pos.Character), len(runes))
	start := end
	for start > 0 && (unicode.IsLetter(runes[start-1]) || runes[start-1] == '_') {
		start--
	}
	return string(runes[start:end])
}
