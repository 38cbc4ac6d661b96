// Package resolver builds the cross-file namespace symbol table a schema
// compiles against: every namespace's declarations, the transitive closure
// of its imports, and a qualified-lookup surface the validator and
// emitters share. Its shape is grounded in the same
// parse-once/cache-by-source-identity discipline a build-tool dependency
// graph uses, generalized here from a single-repo build cache to
// cross-namespace schema resolution.
package resolver

import (
	"sort"
	"sync"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/parser"
	"github.com/pld-lang/pld/internal/compiler/source"
)

// Namespace is one namespace's resolved declaration table: every
// declaration from every file contributing to it, keyed by name.
type Namespace struct {
	Path    string
	Files   []*ast.File
	Symbols map[string]ast.Decl
	Imports map[string]string // alias (or last path segment) -> imported namespace path
}

// Context is the resolver's cross-file state: every namespace seen so
// far, guarded by a RWMutex so files can be fed in from parallel goroutines
// (the CLI's directory walk, the LSP's didOpen handlers, or the watch
// server's debounced reload) without external synchronization.
type Context struct {
	mu         sync.RWMutex
	namespaces map[string]*Namespace
	sourceHash map[string]string // file path -> content, for idempotent re-Add
}

// New creates an empty resolution context.
func New() *Context {
	return &Context{
		namespaces: make(map[string]*Namespace),
		sourceHash: make(map[string]string),
	}
}

// AddFile parses and merges one source file into the context's symbol
// table. Re-adding a file whose text is byte-identical to what is already
// recorded is a no-op (idempotent), so the LSP can call AddFile on every
// keystroke-triggered didChange without quadratic rebuild cost, and the
// watch server can call it on every debounced filesystem event without
// double-counting a namespace's declarations.
func (c *Context) AddFile(file *source.File) (errors.List, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.sourceHash[file.Path]; ok && prev == file.Text {
		return nil, nil
	}

	astFile, diags := parser.New(file).ParseFile()
	if astFile.Namespace == nil {
		c.sourceHash[file.Path] = file.Text
		return diags, nil
	}

	nsPath := astFile.Namespace.Path.String()
	ns, ok := c.namespaces[nsPath]
	if !ok {
		ns = &Namespace{
			Path:    nsPath,
			Symbols: make(map[string]ast.Decl),
			Imports: make(map[string]string),
		}
		c.namespaces[nsPath] = ns
	} else {
		ns.Files = removeFileWithPath(ns.Files, file.Path)
	}
	ns.Files = append(ns.Files, astFile)

	for name := range ns.Symbols {
		if declaredIn(ns, name) == "" {
			delete(ns.Symbols, name)
		}
	}
	for _, f := range ns.Files {
		for _, d := range f.Decls {
			if existing, dup := ns.Symbols[d.DeclName()]; dup && existing.Location().File != d.Location().File {
				diags = append(diags, errors.NewNamespaceConflict(d.Location(), d.DeclName(), existing.Location().File.Path))
				continue
			}
			ns.Symbols[d.DeclName()] = d
		}
	}

	for _, u := range astFile.Uses {
		alias := u.Alias
		if alias == "" {
			alias = u.Path.Segments[len(u.Path.Segments)-1]
		}
		ns.Imports[alias] = u.Path.String()
	}

	c.sourceHash[file.Path] = file.Text
	return diags, nil
}

func removeFileWithPath(files []*ast.File, path string) []*ast.File {
	out := files[:0]
	for _, f := range files {
		if f.Source.Path != path {
			out = append(out, f)
		}
	}
	return out
}

func declaredIn(ns *Namespace, name string) string {
	for _, f := range ns.Files {
		for _, d := range f.Decls {
			if d.DeclName() == name {
				return f.Source.Path
			}
		}
	}
	return ""
}

// Namespace returns the resolved namespace at path, or nil if no file has
// declared it.
func (c *Context) Namespace(path string) *Namespace {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.namespaces[path]
}

// Namespaces returns every known namespace path, sorted for deterministic
// iteration (emitters and the introspection surface depend on stable
// ordering across runs).
func (c *Context) Namespaces() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.namespaces))
	for p := range c.namespaces {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Resolve looks up a (possibly alias-qualified) type name from the point
// of view of namespace `from`, following `use`/`import` aliases and
// transitive namespace-prefix matches. It returns the owning namespace and
// declaration, or ok=false if nothing resolves.
func (c *Context) Resolve(from string, ref []string) (nsPath string, decl ast.Decl, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ns := c.namespaces[from]
	if ns == nil {
		return "", nil, false
	}

	if len(ref) == 1 {
		if d, found := ns.Symbols[ref[0]]; found {
			return from, d, true
		}
	}

	// Qualified reference: try every namespace-prefix split of ref
	// against a known import alias or a directly known namespace path.
	for split := len(ref) - 1; split >= 1; split-- {
		prefix := joinSegments(ref[:split])
		name := ref[len(ref)-1]
		target := prefix
		if aliased, isAlias := ns.Imports[prefix]; isAlias {
			target = aliased
		}
		if tns, found := c.namespaces[target]; found {
			if d, found := tns.Symbols[name]; found {
				return target, d, true
			}
		}
	}

	return "", nil, false
}

// TransitiveImports returns every namespace path reachable from `from`
// via zero or more `use`/`import` hops, including `from` itself. The
// resolver builds this as a simple graph walk rather than precomputing a
// cached dependency graph, since schema import graphs are small relative
// to the namespace-local symbol tables they gate.
func (c *Context) TransitiveImports(from string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := map[string]bool{}
	var order []string
	var walk func(path string)
	walk = func(path string) {
		if seen[path] {
			return
		}
		seen[path] = true
		order = append(order, path)
		ns := c.namespaces[path]
		if ns == nil {
			return
		}
		imports := make([]string, 0, len(ns.Imports))
		for _, target := range ns.Imports {
			imports = append(imports, target)
		}
		sort.Strings(imports)
		for _, target := range imports {
			walk(target)
		}
	}
	walk(from)
	return order
}

// DetectCycle reports the first import cycle reachable from `from`, if
// any, as the ordered list of namespace paths forming the cycle.
func (c *Context) DetectCycle(from string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stack := map[string]int{}
	var path []string
	var walk func(p string) []string
	walk = func(p string) []string {
		if idx, onStack := stack[p]; onStack {
			return append(append([]string{}, path[idx:]...), p)
		}
		stack[p] = len(path)
		path = append(path, p)
		defer func() {
			delete(stack, p)
			path = path[:len(path)-1]
		}()
		ns := c.namespaces[p]
		if ns == nil {
			return nil
		}
		targets := make([]string, 0, len(ns.Imports))
		for _, t := range ns.Imports {
			targets = append(targets, t)
		}
		sort.Strings(targets)
		for _, t := range targets {
			if cycle := walk(t); cycle != nil {
				return cycle
			}
		}
		return nil
	}
	return walk(from)
}

// FileNamespace returns the namespace path that owns the file at path, if
// any file has been added under that identity. LSP and watch-mode use
// this to go from an edited document's URI back to the namespace they
// should resolve hover/definition queries against.
func (c *Context) FileNamespace(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ns := range c.namespaces {
		for _, f := range ns.Files {
			if f.Source.Path == path {
				return ns.Path, true
			}
		}
	}
	return "", false
}

func joinSegments(segs []string) string {
	out := ""
	for i, s := range segs {
		if i > 0 {
			out += "::"
		}
		out += s
	}
	return out
}

// DescribeUnresolved renders a ref for error messages, e.g. "billing::Invoice".
func DescribeUnresolved(ref []string) string {
	return joinSegments(ref)
}
