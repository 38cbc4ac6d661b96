package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pld-lang/pld/internal/compiler/resolver"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/compiler/validator"
)

func mustAdd(t *testing.T, ctx *resolver.Context, path, text string) {
	t.Helper()
	_, err := ctx.AddFile(source.New(path, text))
	require.NoError(t, err)
}

func TestValidateCleanSchemaProducesNoDiagnostics(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "billing.pld", `
namespace billing;

struct Invoice {
	id: u64;
	status: Status;
}

enum Status {
	Draft = 0,
	Sent = 1,
	Paid = 2,
}
`)
	diags := validator.Validate(ctx, nil)
	assert.Empty(t, diags)
}

func TestValidateFlagsDanglingReference(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "billing.pld", `
namespace billing;

struct Invoice {
	id: u64;
	customer: Customer;
}
`)
	diags := validator.Validate(ctx, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "VAL204", string(diags[0].Code))
}

func TestValidateFlagsEnumDiscriminantMismatch(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "mixed.pld", `
namespace mixed;

enum Status {
	Draft = 0,
	Sent = "sent",
}
`)
	diags := validator.Validate(ctx, nil)
	require.NotEmpty(t, diags)
	assert.Equal(t, "VAL202", string(diags[0].Code))
}

func TestValidateFlagsNonContiguousEnum(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "gap.pld", `
namespace gap;

enum Status {
	Draft = 0,
	Sent = 5,
}
`)
	diags := validator.Validate(ctx, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "VAL203", string(diags[0].Code))
}

func TestValidateFlagsVersionConflict(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "versioned.pld", `
namespace versioned #version(5);

#version(6)
struct Thing {
	id: u64;
}
`)
	diags := validator.Validate(ctx, nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "VER301", string(diags[0].Code))
}

func TestValidateAllowsAgreeingVersions(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "versioned.pld", `
namespace versioned #version(1);

#version(1)
struct Thing {
	id: u64;
}
`)
	diags := validator.Validate(ctx, nil)
	assert.Empty(t, diags)
}

func TestOverridesCanSilenceOrEscalateADiagnostic(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "gap.pld", `
namespace gap;

enum Status {
	Draft = 0,
	Sent = 5,
}
`)
	diags := validator.Validate(ctx, validator.Overrides{"VAL203": validator.SeveritySilent})
	assert.Empty(t, diags)

	diags = validator.Validate(ctx, validator.Overrides{"VAL203": validator.SeverityWarn})
	require.Len(t, diags, 1)
	assert.Equal(t, "warning", string(diags[0].Severity))
}

func TestValidateResolvesReferenceAcrossImport(t *testing.T) {
	ctx := resolver.New()
	mustAdd(t, ctx, "core.pld", `
namespace core;

struct Customer {
	id: u64;
}
`)
	mustAdd(t, ctx, "billing.pld", `
namespace billing;

use core;

struct Invoice {
	id: u64;
	customer: core::Customer;
}
`)
	diags := validator.Validate(ctx, nil)
	assert.Empty(t, diags)
}
