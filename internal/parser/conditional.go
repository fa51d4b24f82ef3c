package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/token"
)

// parseCtIf parses `$if '(' expr ')' '{' decls '}' ($elif '(' expr ')'
// '{' decls '}')* ($else '{' decls '}')?` (§4.E). The contained blocks
// reuse the top-level dispatcher, matching §4.E's note that `$if`/
// `$switch` bodies parse exactly like any other top-level block.
func (p *Parser) parseCtIf() ast.Decl {
	kwTok := p.C.Advance()
	cond := p.parseCtCondition()

	decl := &ast.CtIfDecl{
		Header: ast.Header{Span: kwTok.Span, Module: p.ModuleName, Status: ast.Done},
		Cond:   cond,
	}
	decl.Then = p.parseCtBlock()

	for p.C.Is(token.CT_ELIF) {
		p.C.Advance()
		elifCond := p.parseCtCondition()
		decl.Elifs = append(decl.Elifs, &ast.CtElif{Cond: elifCond, Body: p.parseCtBlock()})
	}
	if p.C.TryConsume(token.CT_ELSE) {
		decl.Else = p.parseCtBlock()
	}
	return decl
}

// parseCtSwitch parses `$switch '(' expr ')' '{' ($case type | $default)
// ':' decls* '}'` (§4.E).
func (p *Parser) parseCtSwitch() ast.Decl {
	kwTok := p.C.Advance()
	subject := p.parseCtCondition()

	decl := &ast.CtSwitchDecl{
		Header:  ast.Header{Span: kwTok.Span, Module: p.ModuleName, Status: ast.Done},
		Subject: subject,
	}
	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return decl
	}
	for p.C.Is(token.CT_CASE) || p.C.Is(token.CT_DEFAULT) {
		cc := &ast.CtCase{}
		if p.C.TryConsume(token.CT_DEFAULT) {
			cc.IsDefault = true
		} else {
			p.C.Advance() // $case
			cc.Type = ParseType(p.C, p.Strings)
		}
		p.C.Expect(token.COLON, "':'")
		for !p.C.Is(token.CT_CASE) && !p.C.Is(token.CT_DEFAULT) && !p.C.Is(token.RBRACE) && !p.C.Is(token.EOF) {
			d := p.ParseTopLevelStatement()
			if d != nil {
				cc.Body = append(cc.Body, d)
			}
		}
		decl.Cases = append(decl.Cases, cc)
	}
	p.C.Expect(token.RBRACE, "'}'")
	return decl
}

// parseCtAssert parses `$assert '(' expr ')' ';'` (§4.D "$if / $switch /
// $assert").
func (p *Parser) parseCtAssert() ast.Decl {
	kwTok := p.C.Advance()
	cond := p.parseCtCondition()
	p.C.Expect(token.SEMI, "';'")
	return &ast.CtAssertDecl{
		Header: ast.Header{Span: kwTok.Span, Module: p.ModuleName, Status: ast.Done},
		Cond:   cond,
	}
}

func (p *Parser) parseCtCondition() ast.Expr {
	if _, ok := p.C.Expect(token.LPAREN, "'('"); !ok {
		return nil
	}
	cond := ParseConstExpr(p.C)
	p.C.Expect(token.RPAREN, "')'")
	return cond
}

// parseCtBlock parses a `'{' decls '}'` body by repeatedly calling back
// into ParseTopLevelStatement, terminating at a matching `}`, `$elif`,
// `$else`, or EOF.
func (p *Parser) parseCtBlock() []ast.Decl {
	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return nil
	}
	var decls []ast.Decl
	for !p.C.Is(token.RBRACE) && !p.C.Is(token.CT_ELIF) && !p.C.Is(token.CT_ELSE) && !p.C.Is(token.EOF) {
		d := p.ParseTopLevelStatement()
		if d != nil {
			decls = append(decls, d)
		}
	}
	p.C.Expect(token.RBRACE, "'}'")
	return decls
}
