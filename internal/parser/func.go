package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/token"
)

// parseFunc parses `func rtype '!'? path? (TYPE '.')? IDENT '(' params
// ')' attributes? (';' | '{' stmts '}')` (§4.D "func"). With a `TYPE
// '.'` prefix the function is a method; with only `;` it is an
// interface-style declaration.
func (p *Parser) parseFunc(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	ret := ParseType(p.C, p.Strings)
	failable := p.C.TryConsume(token.BANG)

	ParsePathPrefix(p.C, p.Strings) // optional path; the receiver/name search continues regardless

	var recvTok token.Token
	var recvType string
	if p.C.Is(token.TYPE_IDENT) && p.C.NextIs(token.DOT) {
		recvTok = p.C.Advance()
		recvType = recvTok.Text
		p.C.Advance() // '.'
	}

	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		return p.recoverTopLevel()
	}

	decl := &ast.FuncDecl{
		Header: ast.Header{
			Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span,
			Visibility: vis, Module: p.ModuleName, Docs: docs,
		},
		Return:   ret,
		Failable: failable,
		RecvType: recvType,
		RecvTok:  recvTok,
	}

	if _, ok := p.C.Expect(token.LPAREN, "'('"); ok {
		decl.Params, decl.Variadic = p.parseParams()
		p.C.Expect(token.RPAREN, "')'")
	}

	decl.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(decl)

	switch {
	case p.C.TryConsume(token.SEMI):
		decl.HasBody = false
	case p.C.Is(token.LBRACE):
		decl.HasBody = true
		p.skipBalancedBraces()
	default:
		decl.HasBody = false
	}
	return decl
}

// parseParams parses a parenthesised parameter list shared by func and
// function-pointer typedefs: `type name ('=' default)?`, with a
// trailing `...` marking the last parameter variadic (§4.H "Function
// signature": "a variadic parameter converts its type to a sub-array
// of the element type").
func (p *Parser) parseParams() ([]*ast.Param, bool) {
	var params []*ast.Param
	variadic := false
	for !p.C.Is(token.RPAREN) && !p.C.Is(token.EOF) {
		if p.C.TryConsume(token.ELLIPSIS) {
			variadic = true
			break
		}
		typ := ParseType(p.C, p.Strings)
		nameTok, ok := ConsumeIdent(p.C)
		if !ok {
			break
		}
		param := &ast.Param{Name: nameTok.Text, NameTok: nameTok, Type: typ}
		if p.C.TryConsume(token.ASSIGN) {
			param.Default = ParseConstExpr(p.C)
		}
		params = append(params, param)
		if !p.C.TryConsume(token.COMMA) {
			break
		}
	}
	return params, variadic
}

// skipBalancedBraces consumes a `{ ... }` body without parsing its
// contents: the statement parser that understands function bodies is
// an out-of-scope collaborator, invoked by reference (§1). This module
// only needs to know where the body ends so top-level parsing can
// resume.
func (p *Parser) skipBalancedBraces() {
	depth := 0
	for {
		switch p.C.Peek().Kind {
		case token.LBRACE:
			depth++
			p.C.Advance()
		case token.RBRACE:
			depth--
			p.C.Advance()
			if depth == 0 {
				return
			}
		case token.EOF:
			return
		default:
			p.C.Advance()
		}
	}
}

// parseMacro parses `macro rtype? '!'? IDENT '(' macro_params ')'
// stmt` (§4.D "macro"). Parameter kinds are selected by sigil: IDENT =
// value parameter, $IDENT = compile-time value, &IDENT = by-reference,
// #IDENT = unevaluated expression, $TYPE = compile-time type; an
// explicit type before the sigil gives a typed parameter.
func (p *Parser) parseMacro(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()

	var ret ast.TypeInfo
	if NextIsTypeWithPathPrefix(p.C) || token.IsBuiltinTypeKeyword(p.C.Peek().Kind) {
		ret = ParseType(p.C, p.Strings)
	}
	failable := p.C.TryConsume(token.BANG)

	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		return p.recoverTopLevel()
	}

	decl := &ast.MacroDecl{
		Header: ast.Header{
			Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span,
			Visibility: vis, Module: p.ModuleName, Docs: docs,
		},
		Return:   ret,
		Failable: failable,
	}

	if _, ok := p.C.Expect(token.LPAREN, "'('"); ok {
		decl.Params = p.parseMacroParams()
		p.C.Expect(token.RPAREN, "')'")
	}
	decl.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(decl)

	if p.C.Is(token.LBRACE) {
		decl.HasBody = true
		p.skipBalancedBraces()
	} else {
		p.C.TryConsume(token.SEMI)
	}
	return decl
}

func (p *Parser) parseMacroParams() []*ast.MacroParam {
	var params []*ast.MacroParam
	for !p.C.Is(token.RPAREN) && !p.C.Is(token.EOF) {
		var explicitType ast.TypeInfo
		if NextIsTypeWithPathPrefix(p.C) || token.IsBuiltinTypeKeyword(p.C.Peek().Kind) {
			explicitType = ParseType(p.C, p.Strings)
		}
		sigil := ast.MacroParamValue
		switch p.C.Peek().Kind {
		case token.DOLLAR:
			p.C.Advance()
			if p.C.Is(token.TYPE_IDENT) {
				sigil = ast.MacroParamCompileTimeType
			} else {
				sigil = ast.MacroParamCompileTimeValue
			}
		case token.AMP:
			p.C.Advance()
			sigil = ast.MacroParamByRef
		case token.HASH:
			p.C.Advance()
			sigil = ast.MacroParamUnevaluatedExpr
		}
		nameTok := p.C.Peek()
		if nameTok.Kind != token.IDENT && nameTok.Kind != token.TYPE_IDENT {
			break
		}
		p.C.Advance()
		params = append(params, &ast.MacroParam{Sigil: sigil, Name: nameTok.Text, NameTok: nameTok, Type: explicitType})
		if !p.C.TryConsume(token.COMMA) {
			break
		}
	}
	return params
}

// parseGeneric parses `generic rtype? path? IDENT '(' macro_params ')'
// switch-body-by-type` (§4.D "generic"): a generic function whose
// cases each match the parameter count by a type list, or exactly one
// default case (§4.H "Generic function").
func (p *Parser) parseGeneric(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	var ret ast.TypeInfo
	if NextIsTypeWithPathPrefix(p.C) || token.IsBuiltinTypeKeyword(p.C.Peek().Kind) {
		ret = ParseType(p.C, p.Strings)
	}
	ParsePathPrefix(p.C, p.Strings)
	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	decl := &ast.GenericDecl{
		Header: ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs},
		Return: ret,
	}
	if _, ok := p.C.Expect(token.LPAREN, "'('"); ok {
		decl.Params = p.parseMacroParams()
		p.C.Expect(token.RPAREN, "')'")
	}
	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return decl
	}
	for p.C.Is(token.CT_CASE) || p.C.Is(token.CT_DEFAULT) {
		gc := &ast.GenericCase{}
		if p.C.TryConsume(token.CT_DEFAULT) {
			gc.IsDefault = true
		} else {
			p.C.Advance() // $case
			for {
				gc.Types = append(gc.Types, ParseType(p.C, p.Strings))
				if !p.C.TryConsume(token.COMMA) {
					break
				}
			}
		}
		p.C.Expect(token.COLON, "':'")
		p.C.TryConsume(token.LBRACE)
		p.skipBalancedBraces()
		decl.Cases = append(decl.Cases, gc)
	}
	p.C.Expect(token.RBRACE, "'}'")
	return decl
}

// parseInterface parses `interface TYPE attrs? '{' func_declaration*
// '}'` (§4.D "interface"); each inner func must end with ';'.
func (p *Parser) parseInterface(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	nameTok, ok := ConsumeTypeName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	decl := &ast.InterfaceDecl{Header: ast.Header{Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span, Visibility: vis, Module: p.ModuleName, Docs: docs}}
	decl.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(decl)
	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return decl
	}
	for p.C.Is(token.FUNC) {
		m := p.parseFunc(ast.Public, nil)
		if fn, ok := m.(*ast.FuncDecl); ok {
			decl.Methods = append(decl.Methods, fn)
		}
	}
	p.C.Expect(token.RBRACE, "'}'")
	p.C.TryConsume(token.SEMI)
	return decl
}
