// Package rustgen is the reference emitter named in spec.md §1: a small,
// intentionally non-exhaustive Rust code generator that proves the
// emitter.Generator contract (per-namespace context, write-handle sink,
// in-memory sink support) without trying to be feature-complete Rust
// codegen. Grounded on the teacher's internal/compiler/codegen.Generator
// (buffer + indent + writeLine shape), retargeted from Go/SQL output to
// Rust struct/enum text.
package rustgen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/emitter"
	"github.com/pld-lang/pld/internal/compiler/resolver"
)

// Generator emits one `.rs` source file per namespace under
// `<namespace/path>.rs`, with `::` segments becoming `/`.
type Generator struct{}

// New returns a rustgen.Generator ready to register with an
// emitter.Driver job.
func New() *Generator { return &Generator{} }

func (g *Generator) Name() string { return "rust" }

func (g *Generator) Emit(rc *resolver.Context, opts emitter.Options, sink emitter.Sink) error {
	for _, path := range rc.Namespaces() {
		ns := rc.Namespace(path)
		if ns == nil {
			continue
		}
		text, err := g.emitNamespace(rc, ns)
		if err != nil {
			return fmt.Errorf("rustgen: namespace %s: %w", path, err)
		}
		outPath := strings.ReplaceAll(path, "::", "/") + ".rs"
		w, err := sink.Create(outPath)
		if err != nil {
			return fmt.Errorf("rustgen: opening %s: %w", outPath, err)
		}
		if _, err := w.Write([]byte(text)); err != nil {
			w.Close()
			return fmt.Errorf("rustgen: writing %s: %w", outPath, err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("rustgen: closing %s: %w", outPath, err)
		}
	}
	return nil
}

func (g *Generator) emitNamespace(rc *resolver.Context, ns *resolver.Namespace) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Generated by pld rustgen for namespace %q. Do not edit by hand.\n\n", ns.Path)

	names := make([]string, 0, len(ns.Symbols))
	for name := range ns.Symbols {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		switch decl := ns.Symbols[name].(type) {
		case *ast.StructDecl:
			writeStruct(&buf, decl)
		case *ast.EnumDecl:
			writeEnum(&buf, decl)
		case *ast.OneofDecl:
			writeSum(&buf, "", decl.Name, decl.Variants)
		case *ast.ErrorDecl:
			writeSum(&buf, "Error", decl.Name, decl.Variants)
		case *ast.TypeAliasDecl:
			writeTypeAlias(&buf, decl)
		case *ast.OperationDecl:
			writeOperation(&buf, ns, decl)
		}
		buf.WriteByte('\n')
	}
	return buf.String(), nil
}

func writeStruct(buf *bytes.Buffer, d *ast.StructDecl) {
	fmt.Fprintf(buf, "#[derive(Debug, Clone)]\npub struct %s {\n", rustIdent(d.Name))
	for _, f := range d.Fields {
		fmt.Fprintf(buf, "    pub %s: %s,\n", rustIdent(f.Name), rustType(f.Type))
	}
	buf.WriteString("}\n")
}

func writeEnum(buf *bytes.Buffer, d *ast.EnumDecl) {
	fmt.Fprintf(buf, "#[derive(Debug, Clone, Copy, PartialEq, Eq)]\npub enum %s {\n", rustIdent(d.Name))
	for _, v := range d.Variants {
		if v.IntValue != nil {
			fmt.Fprintf(buf, "    %s = %d,\n", rustIdent(v.Name), *v.IntValue)
		} else {
			fmt.Fprintf(buf, "    %s, // %q\n", rustIdent(v.Name), stringValue(v))
		}
	}
	buf.WriteString("}\n")
}

func stringValue(v ast.EnumVariant) string {
	if v.StringValue != nil {
		return *v.StringValue
	}
	return ""
}

func writeSum(buf *bytes.Buffer, label, name string, variants []ast.SumVariant) {
	if label != "" {
		fmt.Fprintf(buf, "// %s taxonomy\n", label)
	}
	fmt.Fprintf(buf, "#[derive(Debug, Clone)]\npub enum %s {\n", rustIdent(name))
	for _, v := range variants {
		if v.Payload != nil {
			fmt.Fprintf(buf, "    %s(%s),\n", rustIdent(v.Name), rustType(v.Payload))
		} else {
			fmt.Fprintf(buf, "    %s,\n", rustIdent(v.Name))
		}
	}
	buf.WriteString("}\n")
}

func writeTypeAlias(buf *bytes.Buffer, d *ast.TypeAliasDecl) {
	if union, ok := d.Type.(*ast.UnionType); ok {
		fmt.Fprintf(buf, "#[derive(Debug, Clone)]\npub struct %s {\n", rustIdent(d.Name))
		for i, m := range union.Members {
			fmt.Fprintf(buf, "    pub part_%d: %s,\n", i, rustType(m))
		}
		buf.WriteString("}\n")
		return
	}
	fmt.Fprintf(buf, "pub type %s = %s;\n", rustIdent(d.Name), rustType(d.Type))
}

func writeOperation(buf *bytes.Buffer, ns *resolver.Namespace, d *ast.OperationDecl) {
	errType := "Box<dyn std::error::Error>"
	if len(d.Errors) == 1 {
		errType = rustType(d.Errors[0])
	} else if len(d.Errors) > 1 {
		parts := make([]string, len(d.Errors))
		for i, e := range d.Errors {
			parts[i] = rustType(e)
		}
		errType = strings.Join(parts, " | ") // readable, but not valid Rust
	}
	fmt.Fprintf(buf, "pub trait %sOperation {\n", rustIdent(d.Name))
	fmt.Fprintf(buf, "    fn %s(input: %s) -> Result<%s, %s>;\n", snakeIdent(d.Name), rustType(d.Input), rustType(d.Output), errType)
	buf.WriteString("}\n")
}

func rustType(t ast.TypeExpr) string {
	switch n := t.(type) {
	case *ast.BuiltinType:
		return rustBuiltin(n.Name)
	case *ast.PathType:
		return rustIdent(n.Segments[len(n.Segments)-1])
	case *ast.ArrayType:
		return fmt.Sprintf("Vec<%s>", rustType(n.Elem))
	case *ast.NullableType:
		return fmt.Sprintf("Option<%s>", rustType(n.Inner))
	case *ast.OneofType:
		parts := make([]string, len(n.Alternatives))
		for i, a := range n.Alternatives {
			parts[i] = rustType(a)
		}
		return "/* oneof */ " + strings.Join(parts, " | ")
	case *ast.UnionType:
		parts := make([]string, len(n.Members))
		for i, m := range n.Members {
			parts[i] = rustType(m)
		}
		return "/* union */ " + strings.Join(parts, " & ")
	default:
		return "()"
	}
}

func rustBuiltin(name string) string {
	switch name {
	case "bool":
		return "bool"
	case "str":
		return "String"
	case "i8", "i16", "i32", "i64":
		return name
	case "u8", "u16", "u32", "u64":
		return name
	case "f16", "f32", "f64":
		if name == "f16" {
			return "f32" // Rust has no native f16; widen, matching the generator's non-exhaustive scope
		}
		return name
	case "usize":
		return "usize"
	case "datetime":
		return "chrono::DateTime<chrono::Utc>"
	case "complex":
		return "(f64, f64)"
	case "binary":
		return "Vec<u8>"
	case "never":
		return "std::convert::Infallible"
	default:
		return name
	}
}

// rustIdent upper-cases the first letter so generated type names follow
// Rust's UpperCamelCase convention regardless of how the schema spelled
// them.
func rustIdent(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// snakeIdent lower-snake-cases a name for generated function identifiers.
func snakeIdent(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
