package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/config"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// parseDefine parses `define` (§4.D "define"), which is either a type
// alias (`define TYPE '=' distinct? (func signature | type
// generic_params?)`) or an identifier alias (`define (IDENT|CONST_IDENT)
// '=' path? identifier generic_params?`).
func (p *Parser) parseDefine(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()

	if p.C.Is(token.TYPE_IDENT) {
		return p.parseTypeAliasDefine(kwTok, vis, docs)
	}
	return p.parseIdentAliasDefine(kwTok, vis, docs)
}

func (p *Parser) parseTypeAliasDefine(kwTok token.Token, vis ast.Visibility, docs *ast.Docs) ast.Decl {
	nameTok, ok := ConsumeTypeName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	header := ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs}
	if _, ok := p.C.Expect(token.ASSIGN, "'='"); !ok {
		return p.recoverTopLevel()
	}

	if p.C.Is(token.DISTINCT) {
		p.C.Advance()
		inlineVal := false
		if p.C.Is(token.INLINE) {
			p.C.Advance()
			inlineVal = true
		}
		wrapped := ParseType(p.C, p.Strings)
		d := &ast.DistinctDecl{Header: header, Wrapped: wrapped, Inline: inlineVal}
		d.Attributes = ParseAttributes(p.C, p.Strings)
		applyCommonAttributes(d)
		p.C.Expect(token.SEMI, "';'")
		return d
	}

	if p.C.Is(token.FUNC) {
		p.C.Advance()
		ret := ParseType(p.C, p.Strings)
		p.C.TryConsume(token.BANG)
		d := &ast.TypedefDecl{Header: header, IsFunc: true, FuncReturn: ret}
		if _, ok := p.C.Expect(token.LPAREN, "'('"); ok {
			d.FuncParams, d.FuncVariadic = p.parseParams()
			p.C.Expect(token.RPAREN, "')'")
		}
		d.Attributes = ParseAttributes(p.C, p.Strings)
		applyCommonAttributes(d)
		p.C.Expect(token.SEMI, "';'")
		return d
	}

	// `type generic_params?`: either a plain type wrap, or — when the
	// base names a generic module and a `<...>` argument list follows
	// — a generic-module instantiation (§4.I) driven through a
	// DefineDecl rather than a TypedefDecl.
	start := p.C.Peek()
	prefix := ParsePathPrefix(p.C, p.Strings)
	baseNameTok, ok := ConsumeTypeName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	if p.C.Is(token.LT) {
		args := p.parseGenericArgs()
		d := &ast.DefineDecl{Header: header, AliasPath: prefix, AliasName: baseNameTok.Text, GenericArgs: args}
		d.Attributes = ParseAttributes(p.C, p.Strings)
		applyCommonAttributes(d)
		p.C.Expect(token.SEMI, "';'")
		return d
	}
	wrapped := ParseTypeWithBase(p.C, p.Strings, &ast.IdentifierType{
		TypeHeader: ast.TypeHeader{Tok: start}, Path: prefix, Name: baseNameTok.Text,
	})
	d := &ast.TypedefDecl{Header: header, Wrapped: wrapped}
	d.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(d)
	p.C.Expect(token.SEMI, "';'")
	return d
}

func (p *Parser) parseIdentAliasDefine(kwTok token.Token, vis ast.Visibility, docs *ast.Docs) ast.Decl {
	var nameTok token.Token
	var ok bool
	if p.C.Is(token.CONST_IDENT) {
		nameTok, ok = ConsumeConstName(p.C)
	} else {
		nameTok, ok = ConsumeIdent(p.C)
	}
	if !ok {
		return p.recoverTopLevel()
	}
	header := ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs}
	if _, ok := p.C.Expect(token.ASSIGN, "'='"); !ok {
		return p.recoverTopLevel()
	}
	prefix := ParsePathPrefix(p.C, p.Strings)
	aliasTok := p.C.Peek()
	p.C.Advance()
	d := &ast.DefineDecl{Header: header, AliasPath: prefix, AliasName: aliasTok.Text}
	if p.C.Is(token.LT) {
		d.GenericArgs = p.parseGenericArgs()
	}
	d.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(d)
	p.C.Expect(token.SEMI, "';'")
	return d
}

// parseGenericArgs parses `< T1, …, Tn >` (§4.D "define ... Generic
// params appear in < ... >").
func (p *Parser) parseGenericArgs() []ast.TypeInfo {
	p.C.Advance() // '<'
	var args []ast.TypeInfo
	for !p.C.Is(token.GT) && !p.C.Is(token.EOF) {
		args = append(args, ParseType(p.C, p.Strings))
		if !p.C.TryConsume(token.COMMA) {
			break
		}
	}
	p.C.Expect(token.GT, "'>'")
	return args
}

// parseAttributeDecl parses `attribute domain_list IDENT params? ';'`
// (§4.D "attribute"), where domain_list is a comma-separated subset of
// {func,var,enum,struct,union,typedef,const,error}.
func (p *Parser) parseAttributeDecl(vis ast.Visibility) ast.Decl {
	kwTok := p.C.Advance()
	var domains []string
	for {
		tok := p.C.Peek()
		switch tok.Kind {
		case token.FUNC, token.ENUM, token.STRUCT, token.UNION, token.CONST, token.ERR:
			domains = append(domains, tok.Text)
			p.C.Advance()
		case token.IDENT:
			domains = append(domains, tok.Text) // "var", "typedef"
			p.C.Advance()
		default:
			p.C.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, tok, "an attribute domain", string(tok.Kind)))
		}
		if !p.C.TryConsume(token.COMMA) {
			break
		}
	}
	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	d := &ast.AttributeDeclDecl{
		Header:  ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName},
		Domains: domains,
	}
	if p.C.Is(token.LPAREN) {
		p.C.Advance()
		if !p.C.Is(token.RPAREN) {
			d.ParamType = ParseType(p.C, p.Strings)
		}
		p.C.Expect(token.RPAREN, "')'")
	}
	p.C.Expect(token.SEMI, "';'")
	return d
}

// parseConstDecl parses `const type? CONST_IDENT '=' initializer;`
// (§4.D "global variable / constant").
func (p *Parser) parseConstDecl(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	var typ ast.TypeInfo
	if !p.C.Is(token.CONST_IDENT) {
		typ = ParseType(p.C, p.Strings)
	}
	nameTok, ok := ConsumeConstName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	d := &ast.VarDecl{
		Header: ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs},
		VarKind: ast.VarConst,
		Type:    typ,
	}
	if p.C.TryConsume(token.ASSIGN) {
		d.Init = ParseConstExpr(p.C)
	}
	d.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(d)
	p.C.Expect(token.SEMI, "';'")
	return d
}

// parseArrayValue parses `IDENT '+=' initializer ';'`, appending to a
// previously declared `[+]` incremental array (§4.D "incremental
// array", GLOSSARY).
func (p *Parser) parseArrayValue(vis ast.Visibility) ast.Decl {
	nameTok := p.C.Advance()
	p.C.Advance() // '+='
	init := ParseConstExpr(p.C)
	p.C.Expect(token.SEMI, "';'")
	return &ast.ArrayValueDecl{
		Header:     ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: nameTok.Span, Visibility: vis, Module: p.ModuleName, Status: ast.Done},
		TargetName: nameTok.Text,
		Init:       init,
	}
}

// parseGlobalVarOrConst parses `type '!'? IDENT ('=' initializer)?;`
// (§4.D "global variable / constant").
func (p *Parser) parseGlobalVarOrConst(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	startTok := p.C.Peek()
	typ := ParseType(p.C, p.Strings)
	failable := p.C.TryConsume(token.BANG)
	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	d := &ast.VarDecl{
		Header:   ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: startTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs},
		VarKind:  ast.VarGlobal,
		Type:     typ,
		Failable: failable,
	}
	if p.C.TryConsume(token.ASSIGN) {
		d.Init = ParseConstExpr(p.C)
	}
	d.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(d)
	p.C.Expect(token.SEMI, "';'")
	return d
}

// domainFromString maps a parsed attribute-domain token's text to the
// config.Domain enum used by ValidateAttributeDomain.
func domainFromString(s string) config.Domain {
	switch s {
	case "func":
		return config.DomainFunc
	case "var":
		return config.DomainVar
	case "const":
		return config.DomainConst
	case "enum":
		return config.DomainEnum
	case "struct":
		return config.DomainStruct
	case "union":
		return config.DomainUnion
	case "typedef":
		return config.DomainTypedef
	case "error", "err":
		return config.DomainError
	default:
		return config.Domain(s)
	}
}
