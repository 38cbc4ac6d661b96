package lsp

import (
	"context"
	"encoding/json"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
)

func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didOpen params")
	}

	docURI := string(params.TextDocument.URI)
	s.setDoc(docURI, params.TextDocument.Text)

	if _, err := s.api.UpdateDocument(docURI, params.TextDocument.Text); err != nil {
		s.logger.Printf("error parsing document: %v", err)
	}
	s.publishDiagnostics(ctx, docURI)
	return reply(ctx, nil, nil)
}

// handleDidChange recompiles the changed document's namespace on every
// keystroke, the same way the teacher's LSP server reparses on full-sync
// didChange notifications.
func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didChange params")
	}
	if len(params.ContentChanges) == 0 {
		return reply(ctx, nil, nil)
	}

	docURI := string(params.TextDocument.URI)
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.setDoc(docURI, text)

	if _, err := s.api.UpdateDocument(docURI, text); err != nil {
		s.logger.Printf("error updating document: %v", err)
	}
	s.publishDiagnostics(ctx, docURI)
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didClose params")
	}
	s.clearDoc(string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse didSave params")
	}
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return reply(ctx, nil, nil)
}

func (s *Server) handleHover(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.HoverParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse hover params")
	}

	segments, ok := s.segmentsAt(string(params.TextDocument.URI), params.Position)
	if !ok {
		return reply(ctx, nil, nil)
	}

	ns, found := s.api.Context().FileNamespace(string(params.TextDocument.URI))
	if !found {
		return reply(ctx, nil, nil)
	}

	contents, found := s.api.Hover(ns, segments)
	if !found {
		return reply(ctx, nil, nil)
	}

	return reply(ctx, protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.Markdown, Value: contents},
	}, nil)
}

func (s *Server) handleDefinition(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DefinitionParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return s.replyWithError(ctx, reply, jsonrpc2.InvalidParams, "failed to parse definition params")
	}

	segments, ok := s.segmentsAt(string(params.TextDocument.URI), params.Position)
	if !ok {
		return reply(ctx, nil, nil)
	}

	ns, found := s.api.Context().FileNamespace(string(params.TextDocument.URI))
	if !found {
		return reply(ctx, nil, nil)
	}

	decl, found := s.api.Definition(ns, segments)
	if !found {
		return reply(ctx, nil, nil)
	}

	loc := decl.Location()
	line := uint32(0)
	if loc.Pos.Line > 0 {
		line = uint32(loc.Pos.Line - 1)
	}
	col := uint32(0)
	if loc.Pos.Column > 0 {
		col = uint32(loc.Pos.Column - 1)
	}

	docURI := string(params.TextDocument.URI)
	if loc.File != nil {
		docURI = loc.File.Path
	}

	return reply(ctx, protocol.Location{
		URI: protocol.DocumentURI(docURI),
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col},
		},
	}, nil)
}
