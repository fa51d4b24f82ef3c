package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// parseAggregate parses `struct`/`union`/`err` NAME, optional
// attributes, and a `{ ... }` body (§4.D "struct/union", "err").
func (p *Parser) parseAggregate(kind ast.DeclKind, vis ast.Visibility, docs *ast.Docs) ast.Decl {
	kwTok := p.C.Advance()
	nameTok, ok := ConsumeTypeName(p.C)
	if !ok {
		return p.recoverTopLevel()
	}
	attrs := ParseAttributes(p.C, p.Strings)

	decl := ast.NewAggregate(kind)
	decl.Name = nameTok.Text
	decl.NameTok = nameTok
	decl.Span = kwTok.Span
	decl.Visibility = vis
	decl.Module = p.ModuleName
	decl.Attributes = attrs
	decl.Docs = docs
	applyCommonAttributes(decl)

	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return p.recoverTopLevel()
	}
	decl.Members = p.parseAggregateMembers(decl)
	p.C.Expect(token.RBRACE, "'}'")
	p.C.TryConsume(token.SEMI)
	return decl
}

// parseAggregateMembers parses the member list of a struct/union body,
// each field terminated by ';', including an inline-prefixed first
// member (§4.D "An inline prefix is permitted only on the first
// member of a struct (sets is_substruct)") and nested anonymous or
// named sub-aggregates.
func (p *Parser) parseAggregateMembers(parent *ast.AggregateDecl) []ast.Decl {
	var members []ast.Decl
	first := true
	for !p.C.Is(token.RBRACE) && !p.C.Is(token.EOF) {
		inlineTok, isInline := p.tryConsumeInline()
		if isInline {
			if first {
				parent.IsSubstruct = true
			} else {
				p.C.diags.Add(diagnostics.New(diagnostics.ErrP004InlineNotFirst, inlineTok))
			}
		}

		var member ast.Decl
		switch p.C.Peek().Kind {
		case token.STRUCT:
			member = p.parseNestedAggregate(ast.DeclStruct)
		case token.UNION:
			member = p.parseNestedAggregate(ast.DeclUnion)
		default:
			member = p.parseFieldMember()
		}
		if member != nil {
			members = append(members, member)
		}
		first = false
	}
	return members
}

func (p *Parser) tryConsumeInline() (token.Token, bool) {
	if p.C.Peek().Kind == token.INLINE {
		return p.C.Advance(), true
	}
	return token.Token{}, false
}

// parseNestedAggregate parses a nested struct/union member. Without a
// name it is an anonymous inner aggregate whose members are promoted
// to the outer name space during analysis (§4.F); with a name it is a
// named member (§4.D "struct/union").
func (p *Parser) parseNestedAggregate(kind ast.DeclKind) ast.Decl {
	kwTok := p.C.Advance()
	decl := ast.NewAggregate(kind)
	decl.Span = kwTok.Span
	decl.Module = p.ModuleName
	decl.Visibility = ast.Public
	if p.C.Is(token.TYPE_IDENT) {
		nameTok, _ := ConsumeTypeName(p.C)
		decl.Name = nameTok.Text
		decl.NameTok = nameTok
	}
	decl.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(decl)
	if _, ok := p.C.Expect(token.LBRACE, "'{'"); !ok {
		return decl
	}
	decl.Members = p.parseAggregateMembers(decl)
	p.C.Expect(token.RBRACE, "'}'")
	p.C.TryConsume(token.SEMI)
	return decl
}

// parseFieldMember parses an ordinary typed member: `type name
// attrs? ;`.
func (p *Parser) parseFieldMember() ast.Decl {
	typ := ParseType(p.C, p.Strings)
	nameTok, ok := ConsumeIdent(p.C)
	if !ok {
		p.C.Advance()
		return nil
	}
	member := &ast.VarDecl{
		Header: ast.Header{
			Name:    nameTok.Text,
			NameTok: nameTok,
			Span:    nameTok.Span,
			Module:  p.ModuleName,
		},
		VarKind: ast.VarMember,
		Type:    typ,
	}
	member.Attributes = ParseAttributes(p.C, p.Strings)
	applyCommonAttributes(member)
	p.C.Expect(token.SEMI, "';'")
	return member
}

// applyCommonAttributes reads the packed/opaque/align/cname/section
// attributes off a freshly parsed Header's attribute list into their
// dedicated fields, so the declaration analyser (§4.H) does not need
// to re-scan the attribute list for these universally-referenced
// flags. Full domain/argument validation still happens in
// ValidateAttributeDomain during analysis.
func applyCommonAttributes(decl interface{ Head() *ast.Header }) {
	h := decl.Head()
	for _, a := range h.Attributes {
		if !a.Enabled() {
			continue
		}
		switch a.Name {
		case "packed":
			h.IsPacked = true
		case "opaque":
			h.IsOpaque = true
		case "align":
			h.Alignment = a.AlignmentVal
			h.HasAlignment = true
		case "cname":
			if s, ok := a.ArgExpr.(*ast.StringLiteral); ok {
				h.CName = s.Value
			}
		case "section":
			if s, ok := a.ArgExpr.(*ast.StringLiteral); ok {
				h.Section = s.Value
			}
		case "bitstruct":
			if lit, ok := a.ArgExpr.(*ast.IntLiteral); ok {
				n := int(lit.Value)
				h.BitOffset = &n
			}
		}
	}
}
