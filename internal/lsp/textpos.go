package lsp

import (
	"strings"

	"go.lsp.dev/protocol"
)

func (s *Server) setDoc(uri, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = text
}

func (s *Server) clearDoc(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *Server) docText(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

// segmentsAt extracts the (possibly "::"-qualified) path expression
// under the cursor, e.g. hovering anywhere over "billing::Invoice"
// yields []string{"billing", "Invoice"}. Hover and go-to-definition both
// resolve against whatever this returns.
func (s *Server) segmentsAt(uri string, pos protocol.Position) ([]string, bool) {
	text, ok := s.docText(uri)
	if !ok {
		return nil, false
	}

	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return nil, false
	}
	line := lines[pos.Line]
	col := int(pos.Character)
	if col > len(line) {
		col = len(line)
	}

	isWord := func(r byte) bool {
		return r == '_' || r == ':' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}

	start := col
	for start > 0 && isWord(line[start-1]) {
		start--
	}
	end := col
	for end < len(line) && isWord(line[end]) {
		end++
	}
	if start == end {
		return nil, false
	}

	word := strings.Trim(line[start:end], ":")
	if word == "" {
		return nil, false
	}
	return strings.Split(word, "::"), true
}
