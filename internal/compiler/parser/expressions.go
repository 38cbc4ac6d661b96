package parser

import (
	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/lexer"
)

// parseTypeExpr parses a full type expression at the loosest precedence
// level: the structural union combinator `&`. Everything below this is
// implemented by parseOneofOrOperand, parseNullableArray, parseArraySuffix,
// and parseTypeHead, from loosest to tightest.
//
//	union    := operand ('&' operand)*
//	operand  := 'oneof' nullableArray ('|' nullableArray)*  |  nullableArray
//	nullableArray := arraySuffix '?'?
//	arraySuffix   := head ('[' ']')*
//	head          := builtin | path | '(' union ')'
//
// parseOneofOrOperand is where an anonymous sum is told apart from a named
// oneof declaration: inside a type expression a bare `oneof` token only
// ever starts an operand's alternative list, never a type name by itself,
// so the two forms never collide in the grammar. A reference to a named oneof declaration is just a PathType
// like any other declared name.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parseOneofOrOperand()
	if !p.s.Check(lexer.TOKEN_AMP) {
		return first
	}
	members := []ast.TypeExpr{first}
	start := first.Location()
	for p.s.Match(lexer.TOKEN_AMP) {
		members = append(members, p.parseOneofOrOperand())
	}
	last := members[len(members)-1].Location()
	return &ast.UnionType{
		TypeExprBase: ast.Spanned(start.Join(last)),
		Members:      members,
	}
}

func (p *Parser) parseOneofOrOperand() ast.TypeExpr {
	if p.s.Check(lexer.TOKEN_ONEOF) {
		start := p.s.Current().Span
		p.s.Advance()
		alts := []ast.TypeExpr{p.parseNullableArray()}
		for p.s.Match(lexer.TOKEN_PIPE) {
			alts = append(alts, p.parseNullableArray())
		}
		last := alts[len(alts)-1].Location()
		return &ast.OneofType{
			TypeExprBase: ast.Spanned(start.Join(last)),
			Alternatives: alts,
		}
	}
	return p.parseNullableArray()
}

func (p *Parser) parseNullableArray() ast.TypeExpr {
	t := p.parseArraySuffix()
	if p.s.Check(lexer.TOKEN_QUESTION) {
		q := p.s.Current().Span
		p.s.Advance()
		t = &ast.NullableType{
			TypeExprBase: ast.Spanned(t.Location().Join(q)),
			Inner:        t,
		}
	}
	return t
}

func (p *Parser) parseArraySuffix() ast.TypeExpr {
	t := p.parseTypeHead()
	for p.s.Check(lexer.TOKEN_LBRACKET) {
		p.s.Advance()
		end := p.expect(lexer.TOKEN_RBRACKET, "']'")
		t = &ast.ArrayType{
			TypeExprBase: ast.Spanned(t.Location().Join(end)),
			Elem:         t,
		}
	}
	return t
}

// builtinNames maps the built-in scalar token types to their canonical
// spelling, used both here and by the formatter/emitter.
var builtinNames = map[lexer.TokenType]string{
	lexer.TOKEN_BOOL: "bool", lexer.TOKEN_STR: "str",
	lexer.TOKEN_I8: "i8", lexer.TOKEN_I16: "i16", lexer.TOKEN_I32: "i32", lexer.TOKEN_I64: "i64",
	lexer.TOKEN_U8: "u8", lexer.TOKEN_U16: "u16", lexer.TOKEN_U32: "u32", lexer.TOKEN_U64: "u64",
	lexer.TOKEN_F16: "f16", lexer.TOKEN_F32: "f32", lexer.TOKEN_F64: "f64",
	lexer.TOKEN_USIZE: "usize", lexer.TOKEN_DATETIME: "datetime",
	lexer.TOKEN_COMPLEX: "complex", lexer.TOKEN_BINARY: "binary", lexer.TOKEN_NEVER: "never",
}

func (p *Parser) parseTypeHead() ast.TypeExpr {
	tok := p.s.Current()
	if name, ok := builtinNames[tok.Type]; ok {
		p.s.Advance()
		return &ast.BuiltinType{TypeExprBase: ast.Spanned(tok.Span), Name: name}
	}
	if tok.Type == lexer.TOKEN_IDENTIFIER {
		path := p.parsePath()
		return &ast.PathType{TypeExprBase: ast.Spanned(path.Location()), Segments: path.Segments}
	}
	if p.s.Match(lexer.TOKEN_LPAREN) {
		inner := p.parseTypeExpr()
		p.expect(lexer.TOKEN_RPAREN, "')'")
		return inner
	}
	p.errorf(tok.Span, "expected a type, found %s", tok.Type)
	p.s.Advance()
	// Return a placeholder so callers always get a non-nil TypeExpr; the
	// diagnostic above is what actually surfaces the failure.
	return &ast.BuiltinType{TypeExprBase: ast.Spanned(tok.Span), Name: "never"}
}
