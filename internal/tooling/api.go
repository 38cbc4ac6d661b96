// Package tooling is the façade LSP, the introspection HTTP surface, and
// watch-mode diagnostics push all sit on top of, instead of each
// re-walking a resolver.Context and validator.Validate on its own.
// Grounded on the teacher's internal/tooling API, which plays the same
// role for its LSP server: a thin, thread-safe wrapper the editor
// integration calls into rather than the raw compiler passes directly.
package tooling

import (
	"sync"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/compiler/validator"
)

// API wraps one resolver.Context with the query surface editor
// integrations need. It is safe for concurrent use: the underlying
// Context already guards its namespace table with a RWMutex, and API
// adds no additional mutable state beyond the validator Overrides.
type API struct {
	mu        sync.RWMutex
	ctx       *resolver.Context
	overrides validator.Overrides
}

// New wraps an existing resolver.Context. Callers typically share one
// Context across the CLI's `check`/`generate` commands, the LSP server,
// and the introspection HTTP surface so every collaborator sees the same
// resolved symbol table.
func New(ctx *resolver.Context) *API {
	return &API{ctx: ctx}
}

// SetOverrides installs the rule-severity overrides (from `#rule(...)`
// meta attributes or a manifest rules table) applied to every subsequent
// Diagnostics call.
func (a *API) SetOverrides(o validator.Overrides) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.overrides = o
}

// Context returns the underlying resolver.Context, for collaborators
// (the introspection router, the watch server) that need direct access
// beyond this façade's three methods.
func (a *API) Context() *resolver.Context { return a.ctx }

// UpdateDocument reparses and re-merges one source file into the shared
// context, the same AddFile call the CLI's directory walk uses. The LSP
// server calls this on every textDocument/didOpen and didChange so hover,
// definition, and diagnostics immediately reflect the editor's in-memory
// buffer rather than what's on disk.
func (a *API) UpdateDocument(path, text string) (errors.List, error) {
	return a.ctx.AddFile(source.New(path, text))
}

// Diagnostics runs the validator over the whole context and returns only
// the diagnostics whose span's file path matches path (or every
// diagnostic if path is empty), the shape `textDocument/publishDiagnostics`
// and the CLI's `check` command both want: "what's wrong, scoped to one
// file."
func (a *API) Diagnostics(path string) errors.List {
	a.mu.RLock()
	overrides := a.overrides
	a.mu.RUnlock()

	all := validator.Validate(a.ctx, overrides)
	if path == "" {
		return all
	}
	var out errors.List
	for _, d := range all {
		if d.File == path {
			out = append(out, d)
		}
	}
	return out
}

// Definition resolves a qualified or unqualified identifier from the
// point of view of namespace `from` and returns its declaring AST node,
// backing go-to-definition in both the LSP server and the introspection
// surface's drill-down routes.
func (a *API) Definition(from string, segments []string) (ast.Decl, bool) {
	_, decl, ok := a.ctx.Resolve(from, segments)
	return decl, ok
}

// Hover renders a short, markdown-formatted description of a declaration,
// the same text the LSP server returns verbatim from `textDocument/hover`.
func (a *API) Hover(from string, segments []string) (string, bool) {
	decl, ok := a.Definition(from, segments)
	if !ok {
		return "", false
	}
	return renderHover(decl), true
}

func renderHover(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.StructDecl:
		return "```pld\nstruct " + d.Name + "\n```" + fieldList(d.Fields)
	case *ast.EnumDecl:
		return "```pld\nenum " + d.Name + "\n```"
	case *ast.OneofDecl:
		return "```pld\noneof " + d.Name + "\n```"
	case *ast.ErrorDecl:
		return "```pld\nerror " + d.Name + "\n```"
	case *ast.TypeAliasDecl:
		return "```pld\ntype " + d.Name + "\n```"
	case *ast.OperationDecl:
		return "```pld\noperation " + d.Name + "\n```"
	default:
		return "```pld\n" + decl.DeclName() + "\n```"
	}
}

func fieldList(fields []ast.FieldDecl) string {
	if len(fields) == 0 {
		return ""
	}
	out := "\n\nFields:\n"
	for _, f := range fields {
		out += "- `" + f.Name + "`\n"
	}
	return out
}
