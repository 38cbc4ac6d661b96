package ast

import (
	"strings"

	"github.com/pld-lang/pld/internal/compiler/source"
)

// TypeExpr is implemented by every type-expression node: path references,
// built-in scalars, arrays, nullable wrappers, anonymous sums, and
// structural unions.
type TypeExpr interface {
	Node
	typeExpr()
}

// TypeExprBase is the common embedded span-holder for every TypeExpr
// implementation. Exported (unlike the plain Base embedding used
// elsewhere) so the parser package can construct type-expression nodes
// directly with a composite literal.
type TypeExprBase struct{ Base }

func (TypeExprBase) typeExpr() {}

// Spanned wraps a span into a TypeExprBase, the one piece every
// parser.parseTypeHead-family constructor needs.
func Spanned(span source.Span) TypeExprBase {
	return TypeExprBase{Base{Span: span}}
}

// PathType references a declared type by name, optionally namespace
// qualified with `::`.
type PathType struct {
	TypeExprBase
	Segments []string
}

func (t *PathType) String() string { return strings.Join(t.Segments, "::") }

// BuiltinType is one of the scalar keywords (bool, str, i8..i64, u8..u64,
// f16..f64, usize, datetime, complex, binary, never).
type BuiltinType struct {
	TypeExprBase
	Name string
}

// ArrayType is `Elem[]`.
type ArrayType struct {
	TypeExprBase
	Elem TypeExpr
}

// NullableType is `Inner?`.
type NullableType struct {
	TypeExprBase
	Inner TypeExpr
}

// OneofType is an anonymous sum written inline in a type expression as
// `oneof A | B | C`. A named declaration with the same keyword
// (OneofDecl) is a distinct top-level construct; see
// parser.parseOneofOrOperand.
type OneofType struct {
	TypeExprBase
	Alternatives []TypeExpr
}

// UnionType is the structural `&` combinator: a value satisfying every
// member type at once. Used both inline and as the right-hand side of a
// TypeAliasDecl.
type UnionType struct {
	TypeExprBase
	Members []TypeExpr
}
