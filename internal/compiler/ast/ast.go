// Package ast defines the pld abstract syntax tree. Every node carries its
// source.Span so diagnostics and tools can point back at the source text.
// The formatter does not work on the tree: it edits the lexer's token
// spans directly, so formatting never goes through a print/reparse cycle.
package ast

import (
	"fmt"
	"strings"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// Node is implemented by every AST node.
type Node interface {
	Location() source.Span
	node()
}

type Base struct {
	Span source.Span
}

func (b Base) Location() source.Span { return b.Span }
func (Base) node()                   {}

// Comment is a standalone or trailing comment, preserved verbatim so
// formatting never drops documentation.
type Comment struct {
	Base
	Text    string // includes the leading // or /* */ marker
	Leading bool   // true if it precedes its attached node on its own line
}

// MetaArg is one argument to a meta attribute: either a bare identifier,
// an integer, or a string.
type MetaArg struct {
	Base
	Ident  string
	Int    *int64
	String *string
}

// Display renders the argument for messages: the integer, the quoted
// string, or the bare identifier.
func (a MetaArg) Display() string {
	switch {
	case a.Int != nil:
		return fmt.Sprintf("%d", *a.Int)
	case a.String != nil:
		return fmt.Sprintf("%q", *a.String)
	default:
		return a.Ident
	}
}

// MetaAttr is a `#name(args...)` or bare `#name` attribute attached to a
// namespace, declaration, field, or variant. Version agreement, rule
// overrides, and arbitrary codegen hints are all expressed as meta
// attributes; the resolver and validator interpret specific names
// (`version`, `rule`) and pass the rest through to emitters untouched.
type MetaAttr struct {
	Base
	Name string
	Args []MetaArg
}

// Ident is a single unqualified or qualified identifier reference, e.g.
// `Invoice` or `billing::core::Invoice`, as used by `use` paths and
// namespace declarations.
type Ident struct {
	Base
	Segments []string
}

func (i Ident) String() string { return strings.Join(i.Segments, "::") }

// NamespaceDecl declares the namespace a file's declarations belong to.
// Exactly one must appear, and it must be the first non-comment item in
// the file.
type NamespaceDecl struct {
	Base
	Path     Ident
	Meta     []MetaAttr
	Comments []Comment
}

// UseDecl imports another namespace, optionally aliased. IsImport records
// whether the source spelled the keyword `import` rather than `use`; both
// are accepted as synonyms but the original spelling is preserved for
// formatting.
type UseDecl struct {
	Base
	Path     Ident
	Alias    string // empty if no `as` clause
	IsImport bool
	Comments []Comment
}

// Decl is implemented by every top-level declaration kind that can follow
// the namespace/use header: structs, enums, type aliases, errors, and
// operations.
type Decl interface {
	Node
	DeclName() string
}

// FieldDecl is one field of a StructDecl.
type FieldDecl struct {
	Base
	Name     string
	Type     TypeExpr
	Meta     []MetaAttr
	Comments []Comment
}

// StructDecl is a product type: a named, ordered set of fields.
type StructDecl struct {
	Base
	Name     string
	Fields   []FieldDecl
	Meta     []MetaAttr
	Comments []Comment
}

func (d *StructDecl) DeclName() string { return d.Name }

// EnumVariant is one member of an EnumDecl, with its explicit or implicit
// discriminant.
type EnumVariant struct {
	Base
	Name        string
	IntValue    *int64  // set when the enum uses integer discriminants
	StringValue *string // set when the enum uses string discriminants
	Meta        []MetaAttr
	Comments    []Comment
}

// EnumDecl is a closed set of named discriminant values. All variants must
// use the same discriminant kind (all-int or all-string), and if any
// variant specifies an explicit integer discriminant, the remaining
// implicit ones continue contiguously from it.
type EnumDecl struct {
	Base
	Name     string
	Variants []EnumVariant
	Meta     []MetaAttr
	Comments []Comment
}

func (d *EnumDecl) DeclName() string { return d.Name }

// SumVariant is one alternative of a named oneof or error declaration,
// with an optional payload type (absent for a unit variant).
type SumVariant struct {
	Base
	Name     string
	Payload  TypeExpr // nil for a unit variant
	Meta     []MetaAttr
	Comments []Comment
}

// OneofDecl is a named sum type (tagged union) with one payload type per
// variant. Anonymous sums written inline in a type expression use
// OneofType instead; see the parser's parseOneofOrOperand for how the two
// forms are distinguished.
type OneofDecl struct {
	Base
	Name     string
	Variants []SumVariant
	Meta     []MetaAttr
	Comments []Comment
}

func (d *OneofDecl) DeclName() string { return d.Name }

// ErrorDecl is a named error taxonomy: syntactically identical to OneofDecl
// but semantically distinct (operations reference it through their error
// channel, and emitters may map it to the target language's native error
// type rather than a plain sum).
type ErrorDecl struct {
	Base
	Name     string
	Variants []SumVariant
	Meta     []MetaAttr
	Comments []Comment
}

func (d *ErrorDecl) DeclName() string { return d.Name }

// TypeAliasDecl binds a name to a type expression. This is also how
// structural unions reach the top level: `type Pet = Cat & Dog;` is a
// TypeAliasDecl whose Type is a *UnionType.
type TypeAliasDecl struct {
	Base
	Name     string
	Type     TypeExpr
	Meta     []MetaAttr
	Comments []Comment
}

func (d *TypeAliasDecl) DeclName() string { return d.Name }

// OperationDecl declares an RPC-shaped operation: an input type, an output
// type, and an optional error channel naming the ErrorDecl(s) it may
// raise.
type OperationDecl struct {
	Base
	Name     string
	Input    TypeExpr
	Output   TypeExpr
	Errors   []TypeExpr
	Meta     []MetaAttr
	Comments []Comment
}

func (d *OperationDecl) DeclName() string { return d.Name }

// File is one parsed .pld source file: its namespace header, its use
// declarations, and its ordered top-level declarations.
type File struct {
	Base
	Source           *source.File
	Namespace        *NamespaceDecl
	Uses             []UseDecl
	Decls            []Decl
	TrailingComments []Comment
}
