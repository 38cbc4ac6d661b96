package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/parser"
	"github.com/pld-lang/pld/internal/compiler/source"
)

func parse(t *testing.T, text string) (*ast.File, []*diag) {
	t.Helper()
	f := source.New("test.pld", text)
	file, diags := parser.New(f).ParseFile()
	out := make([]*diag, len(diags))
	for i, d := range diags {
		out[i] = &diag{msg: d.Message}
	}
	return file, out
}

type diag struct{ msg string }

func TestParseNamespaceAndStruct(t *testing.T) {
	file, diags := parse(t, `
namespace billing::core;

struct Invoice {
	id: u64;
	total: f64;
	memo: str?;
}
`)
	require.Empty(t, diags)
	require.NotNil(t, file.Namespace)
	assert.Equal(t, []string{"billing", "core"}, file.Namespace.Path.Segments)
	require.Len(t, file.Decls, 1)

	st, ok := file.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	assert.Equal(t, "Invoice", st.Name)
	require.Len(t, st.Fields, 3)
	assert.Equal(t, "memo", st.Fields[2].Name)
	_, nullable := st.Fields[2].Type.(*ast.NullableType)
	assert.True(t, nullable)
}

func TestParseUseWithAliasAndImportSynonym(t *testing.T) {
	file, diags := parse(t, `
namespace app;

use billing::core as billing;
import shipping::labels;
`)
	require.Empty(t, diags)
	require.Len(t, file.Uses, 2)
	assert.Equal(t, "billing", file.Uses[0].Alias)
	assert.False(t, file.Uses[0].IsImport)
	assert.True(t, file.Uses[1].IsImport)
}

func TestParseEnumWithExplicitDiscriminants(t *testing.T) {
	file, diags := parse(t, `
namespace app;

enum Status {
	Active = 1,
	Suspended,
	Closed,
}
`)
	require.Empty(t, diags)
	en := file.Decls[0].(*ast.EnumDecl)
	require.Len(t, en.Variants, 3)
	require.NotNil(t, en.Variants[0].IntValue)
	assert.Equal(t, int64(1), *en.Variants[0].IntValue)
}

func TestParseOneofDeclWithPayloads(t *testing.T) {
	file, diags := parse(t, `
namespace app;

oneof Shape {
	Circle(f64),
	Square(f64),
	Point,
}
`)
	require.Empty(t, diags)
	of := file.Decls[0].(*ast.OneofDecl)
	require.Len(t, of.Variants, 3)
	assert.NotNil(t, of.Variants[0].Payload)
	assert.Nil(t, of.Variants[2].Payload)
}

func TestParseAnonymousOneofInFieldType(t *testing.T) {
	file, diags := parse(t, `
namespace app;

struct Pet {
	species: oneof Cat | Dog | Bird;
}
`)
	require.Empty(t, diags)
	st := file.Decls[0].(*ast.StructDecl)
	oneof, ok := st.Fields[0].Type.(*ast.OneofType)
	require.True(t, ok)
	assert.Len(t, oneof.Alternatives, 3)
}

func TestParseParenthesizedOneofArray(t *testing.T) {
	file, diags := parse(t, `
namespace app;

struct Zoo {
	animals: (oneof Cat | Dog)[];
}
`)
	require.Empty(t, diags)
	st := file.Decls[0].(*ast.StructDecl)
	arr, ok := st.Fields[0].Type.(*ast.ArrayType)
	require.True(t, ok)
	_, ok = arr.Elem.(*ast.OneofType)
	assert.True(t, ok)
}

func TestParseStructuralUnionAlias(t *testing.T) {
	file, diags := parse(t, `
namespace app;

type Both = Cat & Dog;
`)
	require.Empty(t, diags)
	alias := file.Decls[0].(*ast.TypeAliasDecl)
	union, ok := alias.Type.(*ast.UnionType)
	require.True(t, ok)
	assert.Len(t, union.Members, 2)
}

func TestParseOperationWithErrorChannel(t *testing.T) {
	file, diags := parse(t, `
namespace app;

operation CreateInvoice(Invoice) -> Invoice ! ValidationError | ConflictError;
`)
	require.Empty(t, diags)
	op := file.Decls[0].(*ast.OperationDecl)
	assert.Equal(t, "CreateInvoice", op.Name)
	require.Len(t, op.Errors, 2)
}

func TestParseMetaAttributes(t *testing.T) {
	file, diags := parse(t, `
namespace app;

#version(2)
struct Invoice {
	#deprecated
	total: f64;
}
`)
	require.Empty(t, diags)
	st := file.Decls[0].(*ast.StructDecl)
	require.Len(t, st.Meta, 1)
	assert.Equal(t, "version", st.Meta[0].Name)
	require.Len(t, st.Meta[0].Args, 1)
	assert.Equal(t, int64(2), *st.Meta[0].Args[0].Int)
	require.Len(t, st.Fields[0].Meta, 1)
	assert.Equal(t, "deprecated", st.Fields[0].Meta[0].Name)
}

func TestParseMissingNamespaceProducesDiagnostic(t *testing.T) {
	_, diags := parse(t, `struct Foo { id: u64; }`)
	require.NotEmpty(t, diags)
}

func TestParseRecoversAfterMalformedDeclaration(t *testing.T) {
	_, diags := parse(t, `
namespace app;

struct ??? {}

struct Good {
	id: u64;
}
`)
	// the malformed struct reports an error, but parsing continues and
	// recovers at the next declaration keyword.
	require.NotEmpty(t, diags)
}
