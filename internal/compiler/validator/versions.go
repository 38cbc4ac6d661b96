package validator

import (
	"strconv"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/resolver"
)

// versionMark records where an explicit #version attribute was found, so a
// conflict diagnostic can point at the declaration whose version differs
// from the first one in the file.
type versionMark struct {
	value int64
	span  ast.Node
}

// checkVersions enforces that every explicit #version attribute within a
// file, whether on the namespace header or on any top-level declaration,
// agrees on a single value. A file that never declares a version is fine;
// a file with exactly one distinct declared value is fine; anything else
// is a VersionConflict.
func checkVersions(ns *resolver.Namespace) errors.List {
	var diags errors.List
	for _, f := range ns.Files {
		diags = append(diags, checkFileVersions(f)...)
	}
	return diags
}

func checkFileVersions(f *ast.File) errors.List {
	var diags errors.List
	var marks []versionMark

	collect := func(n ast.Node, meta []ast.MetaAttr) {
		v, ok, malformed := findVersion(meta)
		if malformed != nil {
			diags = append(diags, errors.NewVersionMalformed(n.Location(), malformed.raw))
			return
		}
		if ok {
			marks = append(marks, versionMark{value: v, span: n})
		}
	}

	if f.Namespace != nil {
		collect(f.Namespace, f.Namespace.Meta)
	}
	for _, d := range f.Decls {
		switch decl := d.(type) {
		case *ast.StructDecl:
			collect(decl, decl.Meta)
		case *ast.EnumDecl:
			collect(decl, decl.Meta)
		case *ast.OneofDecl:
			collect(decl, decl.Meta)
		case *ast.ErrorDecl:
			collect(decl, decl.Meta)
		case *ast.TypeAliasDecl:
			collect(decl, decl.Meta)
		case *ast.OperationDecl:
			collect(decl, decl.Meta)
		}
	}

	if len(marks) < 2 {
		return diags
	}
	outer := marks[0]
	for _, m := range marks[1:] {
		if m.value != outer.value {
			diags = append(diags, errors.NewVersionConflict(m.span.Location(), outer.value, m.value))
		}
	}
	return diags
}

type malformedVersion struct{ raw string }

// findVersion looks for a `#version(N)` attribute among meta, returning its
// value if present and well-formed. malformed is non-nil if a version
// attribute was present but its argument wasn't a plain integer.
func findVersion(meta []ast.MetaAttr) (value int64, ok bool, malformed *malformedVersion) {
	for _, m := range meta {
		if m.Name != "version" {
			continue
		}
		if len(m.Args) != 1 {
			return 0, false, &malformedVersion{raw: m.Name}
		}
		arg := m.Args[0]
		if arg.Int != nil {
			return *arg.Int, true, nil
		}
		if arg.String != nil {
			if n, err := strconv.ParseInt(*arg.String, 10, 64); err == nil {
				return n, true, nil
			}
			return 0, false, &malformedVersion{raw: *arg.String}
		}
		return 0, false, &malformedVersion{raw: arg.Ident}
	}
	return 0, false, nil
}
