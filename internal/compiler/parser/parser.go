// Package parser implements a hand-written recursive-descent parser that
// turns a pld token stream into a round-trippable ast.File. Like the
// teacher's own parser, every construct has a dedicated parseX method, the
// stream is never rewound except for short, bounded lookahead, and a
// single malformed top-level item is recovered from via synchronize so one
// typo doesn't suppress every later diagnostic.
package parser

import (
	"fmt"

	"github.com/pld-lang/pld/internal/compiler/ast"
	"github.com/pld-lang/pld/internal/compiler/errors"
	"github.com/pld-lang/pld/internal/compiler/lexer"
	"github.com/pld-lang/pld/internal/compiler/source"
	"github.com/pld-lang/pld/internal/compiler/stream"
)

// Parser holds the state for one parse of one file. Parser values are not
// safe for concurrent use; callers parsing many files in parallel (the
// resolver's import fan-out, for instance) must construct one Parser per
// file.
type Parser struct {
	file *source.File
	s    *stream.Stream

	comments       []lexer.Token
	commentCursor  int

	diags errors.List
}

// New constructs a Parser over source text already split into tokens by
// the lexer. Lexical errors are folded into the parser's diagnostic list
// so callers only need to check one list after ParseFile.
func New(file *source.File) *Parser {
	toks, lexErrs := lexer.New(file).ScanTokens()

	var comments []lexer.Token
	var grammar []lexer.Token
	for _, t := range toks {
		switch t.Type {
		case lexer.TOKEN_COMMENT:
			comments = append(comments, t)
		case lexer.TOKEN_NEWLINE:
			// insignificant: the grammar uses explicit terminators
		default:
			grammar = append(grammar, t)
		}
	}

	p := &Parser{
		file:     file,
		s:        stream.New(grammar),
		comments: comments,
	}
	for _, e := range lexErrs {
		p.diags = append(p.diags, errors.NewSyntaxError(e.Span, e.Message))
	}
	return p
}

// ParseFile parses the entire file and returns the resulting AST together
// with any syntax diagnostics accumulated along the way. Parsing never
// aborts early: a malformed declaration is skipped via synchronize and
// parsing continues so a single file reports every syntax error it
// contains, not just the first.
func (p *Parser) ParseFile() (*ast.File, errors.List) {
	f := &ast.File{}
	f.Source = p.file

	leading := p.takeCommentsBefore(p.s.Current().Span.Start)
	if !p.s.Check(lexer.TOKEN_NAMESPACE) {
		p.errorf(p.s.Current().Span, "expected 'namespace' declaration at start of file")
	} else {
		f.Namespace = p.parseNamespace(leading)
	}

	for p.s.Check(lexer.TOKEN_USE) || p.s.Check(lexer.TOKEN_IMPORT) {
		f.Uses = append(f.Uses, p.parseUse())
	}

	for !p.s.AtEnd() {
		start := p.s.Fork()
		decl := p.parseDecl()
		if decl == nil {
			if p.s.Fork() == start {
				// parseDecl made no progress; force it so we terminate.
				p.synchronize()
			}
			continue
		}
		f.Decls = append(f.Decls, decl)
	}

	f.TrailingComments = p.takeCommentsBefore(p.s.Current().Span.End + 1)
	f.Span = p.fileSpan()
	return f, p.diags
}

func (p *Parser) fileSpan() source.Span {
	return source.Span{File: p.file, Start: 0, End: len(p.file.Text)}
}

// takeCommentsBefore consumes and returns every comment token whose start
// offset is strictly before the given byte offset.
func (p *Parser) takeCommentsBefore(offset int) []ast.Comment {
	var out []ast.Comment
	for p.commentCursor < len(p.comments) && p.comments[p.commentCursor].Span.Start < offset {
		tok := p.comments[p.commentCursor]
		out = append(out, ast.Comment{Text: tok.Lexeme, Leading: true})
		p.commentCursor++
	}
	return out
}

func (p *Parser) parseNamespace(leading []ast.Comment) *ast.NamespaceDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'namespace'
	path := p.parsePath()
	meta := p.parseMetaAttrs()
	end := p.expect(lexer.TOKEN_SEMICOLON, "';'")
	return &ast.NamespaceDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Path:     path,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseUse() ast.UseDecl {
	leading := p.takeCommentsBefore(p.s.Current().Span.Start)
	isImport := p.s.Check(lexer.TOKEN_IMPORT)
	start := p.s.Current().Span
	p.s.Advance() // 'use' or 'import'
	path := p.parsePath()
	alias := ""
	if p.s.Match(lexer.TOKEN_AS) {
		alias = p.expectIdentLexeme("alias")
	}
	end := p.expect(lexer.TOKEN_SEMICOLON, "';'")
	return ast.UseDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Path:     path,
		Alias:    alias,
		IsImport: isImport,
		Comments: leading,
	}
}

func (p *Parser) parsePath() ast.Ident {
	start := p.s.Current().Span
	var segs []string
	segs = append(segs, p.expectIdentLexeme("identifier"))
	last := start
	for p.s.Match(lexer.TOKEN_DOUBLE_COLON) {
		last = p.s.Current().Span
		segs = append(segs, p.expectIdentLexeme("identifier"))
	}
	return ast.Ident{Base: ast.Base{Span: start.Join(last)}, Segments: segs}
}

// parseDecl parses one top-level declaration. Returns nil (with a
// diagnostic already recorded) if the current token starts none of the
// known declaration kinds.
func (p *Parser) parseDecl() ast.Decl {
	leading := p.takeCommentsBefore(p.s.Current().Span.Start)
	meta := p.parseMetaAttrs()
	switch p.s.Current().Type {
	case lexer.TOKEN_STRUCT:
		return p.parseStruct(meta, leading)
	case lexer.TOKEN_ENUM:
		return p.parseEnum(meta, leading)
	case lexer.TOKEN_ONEOF:
		return p.parseOneof(meta, leading)
	case lexer.TOKEN_ERROR_KW:
		return p.parseError(meta, leading)
	case lexer.TOKEN_TYPE:
		return p.parseTypeAlias(meta, leading)
	case lexer.TOKEN_OPERATION:
		return p.parseOperation(meta, leading)
	default:
		p.errorf(p.s.Current().Span, "expected a declaration (struct, enum, oneof, error, type, or operation), found %s", p.s.Current().Type)
		return nil
	}
}

func (p *Parser) parseStruct(meta []ast.MetaAttr, leading []ast.Comment) *ast.StructDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'struct'
	name := p.expectIdentLexeme("struct name")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	var fields []ast.FieldDecl
	for !p.s.Check(lexer.TOKEN_RBRACE) && !p.s.AtEnd() {
		fields = append(fields, p.parseField())
	}
	end := p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.StructDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Fields:   fields,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseField() ast.FieldDecl {
	leading := p.takeCommentsBefore(p.s.Current().Span.Start)
	meta := p.parseMetaAttrs()
	start := p.s.Current().Span
	name := p.expectIdentLexeme("field name")
	p.expect(lexer.TOKEN_COLON, "':'")
	t := p.parseTypeExpr()
	end := t.Location()
	if !p.s.Check(lexer.TOKEN_RBRACE) {
		// the ';' after a struct's last field is optional
		end = p.expect(lexer.TOKEN_SEMICOLON, "';'")
	}
	return ast.FieldDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Type:     t,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseEnum(meta []ast.MetaAttr, leading []ast.Comment) *ast.EnumDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'enum'
	name := p.expectIdentLexeme("enum name")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	var variants []ast.EnumVariant
	for !p.s.Check(lexer.TOKEN_RBRACE) && !p.s.AtEnd() {
		variants = append(variants, p.parseEnumVariant())
		if !p.s.Match(lexer.TOKEN_COMMA) {
			break
		}
	}
	end := p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.EnumDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Variants: variants,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseEnumVariant() ast.EnumVariant {
	leading := p.takeCommentsBefore(p.s.Current().Span.Start)
	meta := p.parseMetaAttrs()
	start := p.s.Current().Span
	name := p.expectIdentLexeme("enum variant")
	v := ast.EnumVariant{Name: name, Meta: meta, Comments: leading}
	end := start
	if p.s.Match(lexer.TOKEN_EQUALS) {
		tok := p.s.Current()
		switch tok.Type {
		case lexer.TOKEN_INT_LITERAL:
			i := tok.Literal.(int64)
			v.IntValue = &i
			p.s.Advance()
		case lexer.TOKEN_STRING_LITERAL:
			str := tok.Literal.(string)
			v.StringValue = &str
			p.s.Advance()
		default:
			p.errorf(tok.Span, "expected integer or string discriminant, found %s", tok.Type)
		}
		end = tok.Span
	}
	v.Base = ast.Base{Span: start.Join(end)}
	return v
}

func (p *Parser) parseOneof(meta []ast.MetaAttr, leading []ast.Comment) *ast.OneofDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'oneof'
	name := p.expectIdentLexeme("oneof name")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	variants := p.parseSumVariants()
	end := p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.OneofDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Variants: variants,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseError(meta []ast.MetaAttr, leading []ast.Comment) *ast.ErrorDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'error'
	name := p.expectIdentLexeme("error name")
	p.expect(lexer.TOKEN_LBRACE, "'{'")
	variants := p.parseSumVariants()
	end := p.expect(lexer.TOKEN_RBRACE, "'}'")
	return &ast.ErrorDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Variants: variants,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseSumVariants() []ast.SumVariant {
	var variants []ast.SumVariant
	for !p.s.Check(lexer.TOKEN_RBRACE) && !p.s.AtEnd() {
		leading := p.takeCommentsBefore(p.s.Current().Span.Start)
		meta := p.parseMetaAttrs()
		start := p.s.Current().Span
		name := p.expectIdentLexeme("variant name")
		end := start
		var payload ast.TypeExpr
		if p.s.Match(lexer.TOKEN_LPAREN) {
			payload = p.parseTypeExpr()
			end = p.expect(lexer.TOKEN_RPAREN, "')'")
		}
		variants = append(variants, ast.SumVariant{
			Base:     ast.Base{Span: start.Join(end)},
			Name:     name,
			Payload:  payload,
			Meta:     meta,
			Comments: leading,
		})
		if !p.s.Match(lexer.TOKEN_COMMA) {
			break
		}
	}
	return variants
}

func (p *Parser) parseTypeAlias(meta []ast.MetaAttr, leading []ast.Comment) *ast.TypeAliasDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'type'
	name := p.expectIdentLexeme("type name")
	p.expect(lexer.TOKEN_EQUALS, "'='")
	t := p.parseTypeExpr()
	end := p.expect(lexer.TOKEN_SEMICOLON, "';'")
	return &ast.TypeAliasDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Type:     t,
		Meta:     meta,
		Comments: leading,
	}
}

func (p *Parser) parseOperation(meta []ast.MetaAttr, leading []ast.Comment) *ast.OperationDecl {
	start := p.s.Current().Span
	p.s.Advance() // 'operation'
	name := p.expectIdentLexeme("operation name")
	p.expect(lexer.TOKEN_LPAREN, "'('")
	input := p.parseTypeExpr()
	p.expect(lexer.TOKEN_RPAREN, "')'")
	p.expect(lexer.TOKEN_ARROW, "'->'")
	output := p.parseTypeExpr()

	var errTypes []ast.TypeExpr
	if p.s.Match(lexer.TOKEN_BANG) {
		errTypes = append(errTypes, p.parseTypeExpr())
		for p.s.Match(lexer.TOKEN_PIPE) {
			errTypes = append(errTypes, p.parseTypeExpr())
		}
	}
	end := p.expect(lexer.TOKEN_SEMICOLON, "';'")
	return &ast.OperationDecl{
		Base:     ast.Base{Span: start.Join(end)},
		Name:     name,
		Input:    input,
		Output:   output,
		Errors:   errTypes,
		Meta:     meta,
		Comments: leading,
	}
}

// parseMetaAttrs parses zero or more leading `#name(args)` attributes.
func (p *Parser) parseMetaAttrs() []ast.MetaAttr {
	var out []ast.MetaAttr
	for p.s.Check(lexer.TOKEN_HASH) {
		start := p.s.Current().Span
		p.s.Advance()
		name := p.expectIdentLexeme("attribute name")
		var args []ast.MetaArg
		end := start
		if p.s.Match(lexer.TOKEN_LPAREN) {
			for !p.s.Check(lexer.TOKEN_RPAREN) && !p.s.AtEnd() {
				args = append(args, p.parseMetaArg())
				if !p.s.Match(lexer.TOKEN_COMMA) {
					break
				}
			}
			end = p.expect(lexer.TOKEN_RPAREN, "')'")
		}
		out = append(out, ast.MetaAttr{Base: ast.Base{Span: start.Join(end)}, Name: name, Args: args})
	}
	return out
}

func (p *Parser) parseMetaArg() ast.MetaArg {
	tok := p.s.Current()
	switch tok.Type {
	case lexer.TOKEN_INT_LITERAL:
		p.s.Advance()
		i := tok.Literal.(int64)
		return ast.MetaArg{Base: ast.Base{Span: tok.Span}, Int: &i}
	case lexer.TOKEN_STRING_LITERAL:
		p.s.Advance()
		str := tok.Literal.(string)
		return ast.MetaArg{Base: ast.Base{Span: tok.Span}, String: &str}
	default:
		p.s.Advance()
		return ast.MetaArg{Base: ast.Base{Span: tok.Span}, Ident: tok.Lexeme}
	}
}

// expectIdentLexeme consumes the current token regardless of whether it
// matches, so a missing or malformed identifier never stalls the parser
// in place; it just reports the diagnostic and moves on.
func (p *Parser) expectIdentLexeme(what string) string {
	tok := p.s.Current()
	if tok.Type != lexer.TOKEN_IDENTIFIER {
		p.errorf(tok.Span, "expected %s, found %s", what, tok.Type)
		p.s.Advance()
		return ""
	}
	p.s.Advance()
	return tok.Lexeme
}

// expect consumes the current token regardless of whether it matches t,
// guaranteeing forward progress even when recovering from a syntax error.
func (p *Parser) expect(t lexer.TokenType, what string) source.Span {
	tok := p.s.Current()
	if tok.Type != t {
		p.errorf(tok.Span, "expected %s, found %s", what, tok.Type)
		p.s.Advance()
		return tok.Span
	}
	p.s.Advance()
	return tok.Span
}

func (p *Parser) errorf(span source.Span, format string, args ...interface{}) {
	p.diags = append(p.diags, errors.NewSyntaxError(span, fmt.Sprintf(format, args...)))
}

// synchronize discards tokens until it reaches a plausible declaration
// boundary, so one malformed top-level item doesn't cascade into spurious
// errors for everything after it.
func (p *Parser) synchronize() {
	for !p.s.AtEnd() {
		switch p.s.Current().Type {
		case lexer.TOKEN_STRUCT, lexer.TOKEN_ENUM, lexer.TOKEN_ONEOF,
			lexer.TOKEN_ERROR_KW, lexer.TOKEN_TYPE, lexer.TOKEN_OPERATION:
			return
		}
		p.s.Advance()
	}
}
