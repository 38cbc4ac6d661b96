package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
)

func TestAddFileBuildsSymbolTable(t *testing.T) {
	ctx := resolver.New()
	diags, err := ctx.AddFile(source.New("a.pld", `
namespace billing;

struct Invoice {
	id: u64;
}
`))
	require.NoError(t, err)
	require.Empty(t, diags)

	ns := ctx.Namespace("billing")
	require.NotNil(t, ns)
	_, ok := ns.Symbols["Invoice"]
	assert.True(t, ok)
}

func TestAddFileIsIdempotentForUnchangedSource(t *testing.T) {
	ctx := resolver.New()
	text := "namespace billing;\n\nstruct Invoice { id: u64; }\n"
	_, err := ctx.AddFile(source.New("a.pld", text))
	require.NoError(t, err)
	before := len(ctx.Namespace("billing").Files)

	_, err = ctx.AddFile(source.New("a.pld", text))
	require.NoError(t, err)
	assert.Equal(t, before, len(ctx.Namespace("billing").Files))
}

func TestResolveAcrossImport(t *testing.T) {
	ctx := resolver.New()
	_, err := ctx.AddFile(source.New("billing.pld", `
namespace billing;

struct Invoice { id: u64; }
`))
	require.NoError(t, err)

	_, err = ctx.AddFile(source.New("app.pld", `
namespace app;

use billing;

struct Receipt { invoice: billing::Invoice; }
`))
	require.NoError(t, err)

	nsPath, decl, ok := ctx.Resolve("app", []string{"billing", "Invoice"})
	require.True(t, ok)
	assert.Equal(t, "billing", nsPath)
	assert.Equal(t, "Invoice", decl.DeclName())
}

func TestResolveUnknownReferenceFails(t *testing.T) {
	ctx := resolver.New()
	_, err := ctx.AddFile(source.New("app.pld", "namespace app;\n\nstruct Foo { id: u64; }\n"))
	require.NoError(t, err)

	_, _, ok := ctx.Resolve("app", []string{"Bar"})
	assert.False(t, ok)
}

func TestTransitiveImportsFollowsChain(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "a.pld", "namespace a;\nuse b;\nstruct Foo { id: u64; }\n")
	mustAdd(t, ctx, "b.pld", "namespace b;\nuse c;\nstruct Bar { id: u64; }\n")
	mustAdd(t, ctx, "c.pld", "namespace c;\nstruct Baz { id: u64; }\n")

	all := ctx.TransitiveImports("a")
	assert.ElementsMatch(t, []string{"a", "b", "c"}, all)
}

func TestDetectCycleFindsImportLoop(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "a.pld", "namespace a;\nuse b;\nstruct Foo { id: u64; }\n")
	mustAdd(t, ctx, "b.pld", "namespace b;\nuse a;\nstruct Bar { id: u64; }\n")

	cycle := ctx.DetectCycle("a")
	assert.NotEmpty(t, cycle)
}

func mustAdd(t *testing.T, ctx *resolver.Context, path, text string) {
	t.Helper()
	_, err := ctx.AddFile(source.New(path, text))
	require.NoError(t, err)
}
