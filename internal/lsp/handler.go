package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var log = commonlog.GetLogger("flow.lsp")

// FlowHandler implements the LSP server handlers for the Flow language
type FlowHandler struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewFlowHandler creates and returns a new FlowHandler instance
func NewFlowHandler() *FlowHandler {
	return &FlowHandler{
		docs: make(map[string]*document),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *FlowHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			HoverProvider:          ptrBool(true),
			DocumentSymbolProvider: ptrBool(true),
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *FlowHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("Flow LSP Initialized")
	return nil
}

func (h *FlowHandler) Shutdown(ctx *glsp.Context) error {
	log.Info("Flow LSP Shutdown")
	return nil
}

func (h *FlowHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen analyses the text sent by the editor and publishes diagnostics
func (h *FlowHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("Opened file: %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
}

// TextDocumentDidChange re-analyses the document after a full-text change
func (h *FlowHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Infof("Changed file: %s", params.TextDocument.URI)

	var content []byte
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			content = []byte(c.Text)
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				content = []byte(c.Text)
			}
		}
	}
	return h.update(ctx, params.TextDocument.URI, content)
}

// TextDocumentDidClose forgets the document
func (h *FlowHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("Closed file: %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, path)
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *FlowHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.document(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	return &protocol.SemanticTokens{
		Data: encodeSemanticTokens(collectSemanticTokens(doc.tokens)),
	}, nil
}

// update analyses content and publishes its diagnostics. nil content means
// the editor sent nothing usable, so the file is read from disk.
func (h *FlowHandler) update(ctx *glsp.Context, rawURI protocol.DocumentUri, content []byte) error {
	path, err := uriToPath(rawURI)
	if err != nil {
		return err
	}

	if content == nil {
		content, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", path, err)
		}
	}

	doc := analyze(path, content)

	h.mu.Lock()
	h.docs[path] = doc
	h.mu.Unlock()

	diagnostics := ConvertError(doc.err, content)
	for _, d := range diagnostics {
		log.Infof("%s:%d: %s", path, d.Range.Start.Line+1, firstLine(d.Message))
	}
	sendDiagnosticNotification(ctx, rawURI, diagnostics)
	return nil
}

// document returns the analysed document, loading it from disk if the
// editor never opened it.
func (h *FlowHandler) document(ctx *glsp.Context, rawURI protocol.DocumentUri) (*document, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	doc, ok := h.docs[path]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	if err := h.update(ctx, rawURI, nil); err != nil {
		return nil, err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.docs[path], nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
