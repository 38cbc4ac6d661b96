// Package emitter defines the collaborator contract the core exposes to
// target-language generators (spec.md §4.8): a per-namespace generation
// context, a write-handle sink abstraction, and a parallel driver that
// fans a resolved resolver.Context out to every configured generator.
// The core never writes a single byte of generated text itself — that is
// the generator's job — it only supplies the resolved symbol table and a
// place to put output.
package emitter

import (
	"sync"

	"github.com/pld-lang/pld/internal/compiler/resolver"
)

// Target selects which facet of a namespace a generator should emit,
// matching the manifest's `targets` option in spec.md §6.
type Target string

const (
	TargetClient Target = "client"
	TargetServer Target = "server"
	TargetTypes  Target = "types"
)

// Options carries the per-language configuration a generator needs: which
// facets to emit, where to write them, and an opaque per-language options
// record forwarded verbatim (the manifest's `<language>.opts`).
type Options struct {
	Language  string
	Targets   []Target
	OutputDir string
	Mem       bool
	Opts      map[string]any
}

func (o Options) HasTarget(t Target) bool {
	if len(o.Targets) == 0 {
		return true
	}
	for _, want := range o.Targets {
		if want == t {
			return true
		}
	}
	return false
}

// NamespaceContext bundles everything one generator invocation needs to
// emit one namespace: the resolved namespace itself, a reference back to
// the full context (for cross-namespace imports), the run's options, a
// factory callback invoked exactly once the first time the generator
// opens a file for this namespace (for file-level prologues such as
// license headers or package declarations), and the sink every write
// handle is opened against.
type NamespaceContext struct {
	Namespace *resolver.Namespace
	Resolver  *resolver.Context
	Options   Options
	Sink      Sink

	onFirstFile sync.Once
	Prologue    func(ns *resolver.Namespace) string
}

// OpenFirst invokes the prologue factory exactly once per NamespaceContext,
// regardless of how many files the generator opens for this namespace.
// Generators call this before writing their first file so package-level
// headers are emitted once, not once per file.
func (nc *NamespaceContext) OpenFirst() string {
	var prologue string
	nc.onFirstFile.Do(func() {
		if nc.Prologue != nil {
			prologue = nc.Prologue(nc.Namespace)
		}
	})
	return prologue
}
