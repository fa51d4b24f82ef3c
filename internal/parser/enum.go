package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// parseEnum parses `enum NAME (':' base_type (payload_params)?)?
// '{' comma-separated constants '}'` (§4.D "enum").
func (p *Parser) parseEnum(vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	nameTok, ok := ConsumeTypeName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}

	decl := &ast.EnumDecl{Header: ast.Header{
		Name: nameTok.Text, NameTok: nameTok, Span: kwTok.Span,
		Visibility: vis, Module: p.ModuleName, Docs: docs,
	}}

	if p.C.TryConsume(token.COLON) {
		decl.BaseType = ParseType(p.C, p.Strings)
		if p.C.Is(token.LPAREN) {
			p.C.Advance()
			for !p.C.Is(token.RPAREN) && !p.C.Is(token.EOF) {
				ptype := ParseType(p.C, p.Strings)
				pname, ok := ConsumeIdent(p.C)
				if !ok {
					break
				}
				decl.Parameters = append(decl.Parameters, &ast.Param{Name: pname.Text, NameTok: pname, Type: ptype})
				if !p.C.TryConsume(token.COMMA) {
					break
				}
			}
			p.C.Expect(token.RPAREN, "')'")
		}
	}

	decl.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(decl)

	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return decl
	}

	seen := map[string]token.Token{}
	ordinal := 0
	for !p.C.Is(token.RBRACE) && !p.C.Is(token.EOF) {
		constTok, ok := ConsumeConstName(p.C)
		if !ok {
			break
		}
		constDecl := &ast.EnumConstantDecl{
			Header: ast.Header{Name: constTok.Text, NameTok: constTok, Span: constTok.Span, Module: p.ModuleName},
			Ordinal: ordinal,
		}
		if p.C.Is(token.LPAREN) {
			p.C.Advance()
			for !p.C.Is(token.RPAREN) && !p.C.Is(token.EOF) {
				arg := ParseConstExpr(p.C)
				if arg != nil {
					constDecl.Args = append(constDecl.Args, arg)
				}
				if !p.C.TryConsume(token.COMMA) {
					break
				}
			}
			p.C.Expect(token.RPAREN, "')'")
		}
		if p.C.TryConsume(token.ASSIGN) {
			constDecl.Value = ParseConstExpr(p.C)
		}

		if prior, dup := seen[constDecl.Name]; dup {
			p.C.diags.Add(diagnostics.NewDuplicate(diagnostics.ErrP005DuplicateEnumName, diagnostics.PhaseParser, constTok, prior, constDecl.Name))
			constDecl.Status = ast.Done // poisoned but parsing continues (§4.D)
		} else {
			seen[constDecl.Name] = constTok
		}

		decl.Values = append(decl.Values, constDecl)
		ordinal++
		if !p.C.TryConsume(token.COMMA) {
			break
		}
	}
	p.C.Expect(token.RBRACE, "'}'")
	p.C.TryConsume(token.SEMI)
	return decl
}
