package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// ParseBaseType implements `parse_base_type` (§4.C): `virtual?` then
// either a path-prefixed TYPE_IDENT, a bare TYPE_IDENT|CT_TYPE_IDENT,
// or a built-in keyword. `virtual` requires a trailing `*`, enforced
// by the caller (ParseTypeWithBase) since the pointer wrap is parsed
// uniformly for every base.
func ParseBaseType(c *Cursor, strings Interner) ast.TypeInfo {
	startTok := c.Peek()
	virtual := false
	if c.Is(token.VIRTUAL) {
		virtual = true
		c.Advance()
	}

	if token.IsBuiltinTypeKeyword(c.Peek().Kind) {
		tok := c.Advance()
		return &ast.IdentifierType{
			TypeHeader: ast.TypeHeader{Tok: startTok},
			Name:       tok.Text,
			Builtin:    true,
			Virtual:    virtual,
		}
	}

	prefix := ParsePathPrefix(c, strings)
	if c.Is(token.TYPE_IDENT) {
		tok := c.Advance()
		return &ast.IdentifierType{
			TypeHeader: ast.TypeHeader{Tok: startTok},
			Path:       prefix,
			Name:       tok.Text,
			Virtual:    virtual,
		}
	}
	if c.Is(token.CT_TYPE_IDENT) {
		tok := c.Advance()
		return &ast.IdentifierType{
			TypeHeader: ast.TypeHeader{Tok: startTok},
			Path:       prefix,
			Name:       tok.Text,
			Virtual:    virtual,
		}
	}

	c.diags.Add(diagnostics.New(diagnostics.ErrP001UnexpectedToken, c.Peek(), "a type", string(c.Peek().Kind)))
	return ast.PoisonedType()
}

// ParseTypeWithBase implements `parse_type_with_base` (§4.C): wraps a
// parsed base type with a left-to-right sequence of `*` (pointer) or
// `[ ... ]` array forms.
func ParseTypeWithBase(c *Cursor, strings Interner, base ast.TypeInfo) ast.TypeInfo {
	result := base
	for {
		switch {
		case c.Is(token.STAR):
			tok := c.Advance()
			result = &ast.PointerType{TypeHeader: ast.TypeHeader{Tok: tok}, Inner: result}
		case c.Is(token.LBRACKET):
			tok := c.Advance()
			result = parseArrayBracket(c, strings, tok, result)
			if ast.IsPoisonedType(result) {
				return result
			}
		default:
			return result
		}
	}
}

func parseArrayBracket(c *Cursor, strings Interner, open token.Token, base ast.TypeInfo) ast.TypeInfo {
	switch {
	case c.Is(token.RBRACKET):
		c.Advance()
		return &ast.SubArrayType{TypeHeader: ast.TypeHeader{Tok: open}, Base: base}
	case c.Is(token.STAR):
		c.Advance()
		if _, ok := c.Expect(token.RBRACKET, "']'"); !ok {
			return ast.PoisonedType()
		}
		return &ast.VarArrayType{TypeHeader: ast.TypeHeader{Tok: open}, Base: base}
	case c.Is(token.QUESTION):
		c.Advance()
		if _, ok := c.Expect(token.RBRACKET, "']'"); !ok {
			return ast.PoisonedType()
		}
		return &ast.InferredArrayType{TypeHeader: ast.TypeHeader{Tok: open}, Base: base}
	case c.Is(token.PLUS):
		c.Advance()
		if _, ok := c.Expect(token.RBRACKET, "']'"); !ok {
			return ast.PoisonedType()
		}
		return &ast.IncArrayType{TypeHeader: ast.TypeHeader{Tok: open}, Base: base}
	default:
		lenExpr := ParseConstExpr(c)
		if lenExpr == nil {
			c.diags.Add(diagnostics.New(diagnostics.ErrP007BadArrayBracket, c.Peek(), "expected a length expression"))
			return ast.PoisonedType()
		}
		if _, ok := c.Expect(token.RBRACKET, "']'"); !ok {
			return ast.PoisonedType()
		}
		return &ast.ArrayType{TypeHeader: ast.TypeHeader{Tok: open}, Base: base, LenExpr: lenExpr}
	}
}

// ParseType is the full `base -> pointer/array/.../inferred-array`
// entry point composing ParseBaseType and ParseTypeWithBase.
func ParseType(c *Cursor, strings Interner) ast.TypeInfo {
	base := ParseBaseType(c, strings)
	if ast.IsPoisonedType(base) {
		return base
	}
	return ParseTypeWithBase(c, strings, base)
}
