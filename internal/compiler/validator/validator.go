// Package validator runs the semantic checks that sit between resolution
// and emission: every type reference actually resolves, enum discriminants
// are internally consistent, and #version attributes agree at every level
// they're declared. It is a second pass over an already-resolved
// resolver.Context, the same "build a table, then check cross-references"
// shape a typechecker uses, generalized here from expression typing to
// schema-level structural checks.
package validator

import (
	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/resolver"
)

// Severity is the runtime-configurable level a rule override can assign a
// diagnostic, finer-grained than errors.Severity: "silent" drops the
// diagnostic entirely, the other three map directly onto errors.Severity.
type Severity string

const (
	SeveritySilent  Severity = "silent"
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeverityError   Severity = "error"
)

// Overrides maps a diagnostic code to the severity it should be reported
// at, as configured by `#rule(CODE, level)` meta attributes or by the
// manifest's `rules` table. An empty/nil Overrides applies every rule at
// its built-in default.
type Overrides map[errors.Code]Severity

// Validate runs every structural check against every namespace the
// context knows about and returns the combined diagnostic list, with
// per-code severities adjusted by overrides.
func Validate(ctx *resolver.Context, overrides Overrides) errors.List {
	var diags errors.List
	for _, nsPath := range ctx.Namespaces() {
		ns := ctx.Namespace(nsPath)
		diags = append(diags, checkEnumContiguity(ns)...)
		diags = append(diags, checkReferences(ctx, ns)...)
		diags = append(diags, checkVersions(ns)...)
	}
	return applyOverrides(diags, overrides)
}

func applyOverrides(diags errors.List, overrides Overrides) errors.List {
	if len(overrides) == 0 {
		return diags
	}
	out := diags[:0]
	for _, d := range diags {
		level, ok := overrides[d.Code]
		if !ok {
			out = append(out, d)
			continue
		}
		switch level {
		case SeveritySilent:
			continue
		case SeverityInfo:
			d.Severity = errors.SeverityInfo
		case SeverityWarn:
			d.Severity = errors.SeverityWarning
		case SeverityError:
			d.Severity = errors.SeverityError
		}
		out = append(out, d)
	}
	return out
}

// checkEnumContiguity enforces that every EnumDecl uses exactly one
// discriminant kind (all-int or all-string) and that integer
// discriminants, once any are explicit, continue contiguously.
func checkEnumContiguity(ns *resolver.Namespace) errors.List {
	var diags errors.List
	for _, f := range ns.Files {
		for _, d := range f.Decls {
			enum, ok := d.(*ast.EnumDecl)
			if !ok {
				continue
			}
			diags = append(diags, checkOneEnum(enum)...)
		}
	}
	return diags
}

func checkOneEnum(enum *ast.EnumDecl) errors.List {
	var diags errors.List
	hasInt, hasString := false, false
	for _, v := range enum.Variants {
		if v.IntValue != nil {
			hasInt = true
		}
		if v.StringValue != nil {
			hasString = true
		}
	}
	if hasInt && hasString {
		diags = append(diags, errors.NewEnumDiscriminantMismatch(enum.Location(), enum.Name))
		return diags
	}
	if hasString {
		return diags // string discriminants have no contiguity requirement
	}

	next := int64(0)
	for _, v := range enum.Variants {
		if v.IntValue != nil && *v.IntValue != next {
			diags = append(diags, errors.NewEnumNonContiguous(v.Location(), enum.Name, v.Name))
			next = *v.IntValue
		}
		next++
	}
	return diags
}

// checkReferences walks every type expression reachable from every
// declaration in the namespace and confirms each PathType resolves,
// either locally or through the namespace's imports.
func checkReferences(ctx *resolver.Context, ns *resolver.Namespace) errors.List {
	var diags errors.List
	visit := func(t ast.TypeExpr) {
		walkTypeExpr(t, func(path *ast.PathType) {
			if _, _, ok := ctx.Resolve(ns.Path, path.Segments); !ok {
				diags = append(diags, errors.NewDanglingReference(path.Location(), path.String()))
			}
		})
	}
	for _, f := range ns.Files {
		for _, d := range f.Decls {
			switch decl := d.(type) {
			case *ast.StructDecl:
				for _, field := range decl.Fields {
					visit(field.Type)
				}
			case *ast.OneofDecl:
				for _, v := range decl.Variants {
					if v.Payload != nil {
						visit(v.Payload)
					}
				}
			case *ast.ErrorDecl:
				for _, v := range decl.Variants {
					if v.Payload != nil {
						visit(v.Payload)
					}
				}
			case *ast.TypeAliasDecl:
				visit(decl.Type)
			case *ast.OperationDecl:
				visit(decl.Input)
				visit(decl.Output)
				for _, e := range decl.Errors {
					visit(e)
				}
			}
		}
	}
	return diags
}

// walkTypeExpr calls fn for every PathType node reachable from t.
func walkTypeExpr(t ast.TypeExpr, fn func(*ast.PathType)) {
	switch n := t.(type) {
	case *ast.PathType:
		fn(n)
	case *ast.ArrayType:
		walkTypeExpr(n.Elem, fn)
	case *ast.NullableType:
		walkTypeExpr(n.Inner, fn)
	case *ast.OneofType:
		for _, alt := range n.Alternatives {
			walkTypeExpr(alt, fn)
		}
	case *ast.UnionType:
		for _, m := range n.Members {
			walkTypeExpr(m, fn)
		}
	}
}
