package lsp

import (
	"testing"

	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/tooling"
	"github.com/stretchr/testify/assert"
	"go.lsp.dev/protocol"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rc := resolver.New()
	api := tooling.New(rc)
	return NewServer(api)
}

func TestNewServerAdvertisesHoverAndDefinitionOnly(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, true, s.capabilities.HoverProvider)
	assert.NotNil(t, s.capabilities.DefinitionProvider)
	assert.Nil(t, s.capabilities.CompletionProvider)
}

func TestSegmentsAtExtractsQualifiedPath(t *testing.T) {
	s := newTestServer(t)
	s.setDoc("a.pld", "struct P { f: billing::Invoice; };")

	segs, ok := s.segmentsAt("a.pld", protocol.Position{Line: 0, Character: 20})
	assert.True(t, ok)
	assert.Equal(t, []string{"billing", "Invoice"}, segs)
}

func TestSegmentsAtMissingDocument(t *testing.T) {
	s := newTestServer(t)
	_, ok := s.segmentsAt("missing.pld", protocol.Position{Line: 0, Character: 0})
	assert.False(t, ok)
}

func TestConvertSeverity(t *testing.T) {
	assert.Equal(t, protocol.DiagnosticSeverityError, convertSeverity(errors.SeverityError))
	assert.Equal(t, protocol.DiagnosticSeverityWarning, convertSeverity(errors.SeverityWarning))
	assert.Equal(t, protocol.DiagnosticSeverityInformation, convertSeverity(errors.SeverityInfo))
}
