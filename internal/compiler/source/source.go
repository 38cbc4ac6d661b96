// Package source holds the immutable source buffers threaded through the
// lexer, parser, resolver and formatter. A File is read once and then
// shared by reference across every compiler pass that touches it.
package source

import (
	"os"
)

// File is an immutable view of one .pld source file: its identity (path)
// and its exact byte contents. Every Span produced by the lexer or parser
// refers back to a File so diagnostics can recover the original text.
type File struct {
	// Path is the file's identity. For files read from disk it is the
	// path passed to Load. For in-memory or fetched sources it is a
	// synthetic identifier such as a namespace name or remote URL.
	Path string
	// Text is the complete source text, unmodified.
	Text string
}

// New wraps raw text under the given identity. Used for in-memory sources
// (LSP didOpen buffers, remote-fetched manifests, test fixtures).
func New(path, text string) *File {
	return &File{Path: path, Text: text}
}

// Load reads a file from disk into a File.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Text: string(b)}, nil
}

// Slice returns the substring [start, end) of the file's text. Callers are
// expected to pass byte offsets produced by the lexer, which are always
// within bounds for a well-formed Span.
func (f *File) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(f.Text) {
		end = len(f.Text)
	}
	if start > end {
		return ""
	}
	return f.Text[start:end]
}

// Position is a human-facing location: 1-indexed line and column.
type Position struct {
	Line   int
	Column int
}

// Span is a half-open byte range [Start, End) within a File, plus the
// line/column of Start for diagnostics. Every lexer token and every AST
// node carries a Span.
type Span struct {
	File  *File
	Start int
	End   int
	Pos   Position
}

// Text returns the source text covered by the span.
func (s Span) Text() string {
	if s.File == nil {
		return ""
	}
	return s.File.Slice(s.Start, s.End)
}

// Join returns the smallest span covering both s and other. Panics if the
// spans belong to different files, since that is always a bug in the
// caller (spans should never be joined across files).
func (s Span) Join(other Span) Span {
	if s.File != other.File {
		panic("source: Join across different files")
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	pos := s.Pos
	if other.Start < s.Start {
		pos = other.Pos
	}
	return Span{File: s.File, Start: start, End: end, Pos: pos}
}
