// Package lsp implements a Language Server Protocol server for pld
// schema files. Its scope is deliberately narrower than a full IDE
// backend: hover, go-to-definition, and textDocument/publishDiagnostics,
// all backed by internal/tooling rather than re-implementing resolution.
// Grounded on the teacher's internal/lsp/server.go, whose conn/handler
// dispatch shape and zap-fallback-to-Nop logger pattern this keeps.
package lsp

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"sync"

	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/tooling"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// Server implements the LSP server for pld schemas.
type Server struct {
	api *tooling.API

	conn   jsonrpc2.Conn
	client protocol.Client
	logger *log.Logger

	workspaceRoot string
	capabilities  protocol.ServerCapabilities

	mu   sync.Mutex
	docs map[string]string // uri -> last-known text, for word-at-position lookups

	cancel context.CancelFunc
}

// NewServer creates a new LSP server instance over a shared tooling API,
// so the editor session sees the same resolved namespaces the CLI's
// `check`/`generate` commands and the introspection HTTP surface do.
func NewServer(api *tooling.API) *Server {
	logger := log.New(os.Stderr, "[pld-lsp] ", log.LstdFlags)

	return &Server{
		api:    api,
		logger: logger,
		docs:   make(map[string]string),
		capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save: &protocol.SaveOptions{
					IncludeText: false,
				},
			},
			HoverProvider: true,
			DefinitionProvider: &protocol.DefinitionOptions{
				WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{WorkDoneProgress: false},
			},
		},
	}
}

// Run starts the LSP server over stdin/stdout and blocks until ctx is
// cancelled or the client sends `exit`.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("Starting pld language server")

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	stream := jsonrpc2.NewStream(stdrwc{})
	conn := jsonrpc2.NewConn(stream)
	s.conn = conn

	zapLogger, err := zap.NewDevelopment()
	if err != nil {
		s.logger.Printf("warning: failed to create zap logger: %v", err)
		zapLogger = zap.NewNop()
	}
	s.client = protocol.ClientDispatcher(conn, zapLogger)

	conn.Go(ctx, s.handler())

	<-ctx.Done()

	s.logger.Println("Shutting down pld language server")
	return conn.Close()
}

func (s *Server) handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			return s.handleInitialize(ctx, reply, req)
		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)
		case protocol.MethodShutdown:
			return reply(ctx, nil, nil)
		case protocol.MethodExit:
			return s.handleExit(ctx, reply, req)
		case protocol.MethodTextDocumentDidOpen:
			return s.handleDidOpen(ctx, reply, req)
		case protocol.MethodTextDocumentDidChange:
			return s.handleDidChange(ctx, reply, req)
		case protocol.MethodTextDocumentDidClose:
			return s.handleDidClose(ctx, reply, req)
		case protocol.MethodTextDocumentDidSave:
			return s.handleDidSave(ctx, reply, req)
		case protocol.MethodTextDocumentHover:
			return s.handleHover(ctx, reply, req)
		case protocol.MethodTextDocumentDefinition:
			return s.handleDefinition(ctx, reply, req)
		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}

func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse initialize params")
	}

	if len(params.WorkspaceFolders) > 0 {
		s.workspaceRoot = uri.URI(params.WorkspaceFolders[0].URI).Filename()
	} else if params.RootURI != "" {
		s.workspaceRoot = params.RootURI.Filename()
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}

	result := protocol.InitializeResult{
		Capabilities: s.capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    "pld-lsp",
			Version: "0.1.0",
		},
	}
	return reply(ctx, result, nil)
}

func (s *Server) handleExit(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if err := reply(ctx, nil, nil); err != nil {
		s.logger.Printf("error replying to exit: %v", err)
	}
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *Server) replyWithError(ctx context.Context, reply jsonrpc2.Replier, code jsonrpc2.Code, message string) error {
	return reply(ctx, nil, &jsonrpc2.Error{Code: code, Message: message})
}

// publishDiagnostics runs the shared validator and forwards the results
// for one document to the client.
func (s *Server) publishDiagnostics(ctx context.Context, docURI string) {
	diags := s.api.Diagnostics(docURI)

	lspDiags := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		line := d.Line - 1
		if line < 0 {
			line = 0
		}
		col := d.Column - 1
		if col < 0 {
			col = 0
		}
		lspDiags = append(lspDiags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
				End:   protocol.Position{Line: uint32(line), Character: uint32(col)},
			},
			Severity: convertSeverity(d.Severity),
			Code:     string(d.Code),
			Source:   "pld",
			Message:  d.Message,
		})
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(docURI),
		Diagnostics: lspDiags,
	})
	if err != nil {
		s.logger.Printf("error publishing diagnostics: %v", err)
	}
}

func convertSeverity(sev errors.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case errors.SeverityError:
		return protocol.DiagnosticSeverityError
	case errors.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case errors.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// stdrwc implements io.ReadWriteCloser over stdin/stdout.
type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdrwc) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}
