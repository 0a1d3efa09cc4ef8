// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"flowlang/internal/lsp"
)

const lsName = "flow"

var handler protocol.Handler

func main() {
	verbose := flag.Int("v", 1, "log verbosity")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	// stdout carries the protocol, so logs never go there
	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(*verbose, path)

	flowHandler := lsp.NewFlowHandler()

	handler = protocol.Handler{
		Initialize:                     flowHandler.Initialize,
		Initialized:                    flowHandler.Initialized,
		Shutdown:                       flowHandler.Shutdown,
		SetTrace:                       flowHandler.SetTrace,
		TextDocumentDidOpen:            flowHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           flowHandler.TextDocumentDidClose,
		TextDocumentDidChange:          flowHandler.TextDocumentDidChange,
		TextDocumentCompletion:         flowHandler.TextDocumentCompletion,
		TextDocumentHover:              flowHandler.TextDocumentHover,
		TextDocumentDocumentSymbol:     flowHandler.TextDocumentDocumentSymbol,
		TextDocumentSemanticTokensFull: flowHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting Flow LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting Flow LSP server:", err)
		os.Exit(1)
	}
}
