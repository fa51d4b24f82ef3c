package parser

import (
	"strconv"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// ParseConstExpr is a narrow stand-in for the out-of-scope expression
// parser (§1 "Expression parser ... invoked by reference"). The
// declaration grammar only ever needs constant expressions: array
// lengths, enum constant values, attribute arguments, and $if/$switch
// conditions. Rather than reproduce a full Pratt expression grammar
// here, this module implements just enough — literals, identifiers,
// unary minus, and constructor-style calls — to drive every §4.D/§4.H
// rule that mentions a constant expression, and documents the
// narrowing in SPEC_FULL.md/DESIGN.md.
func ParseConstExpr(c *Cursor) ast.Expr {
	switch {
	case c.Is(token.MINUS):
		tok := c.Advance()
		inner := ParseConstExpr(c)
		lit, ok := inner.(*ast.IntLiteral)
		if !ok {
			c.diags.Add(diagnostics.New(diagnostics.ErrA003NotConstExpr, tok))
			return nil
		}
		return &ast.IntLiteral{Tok: tok, Value: -lit.Value}
	case c.Is(token.INT_LIT):
		tok := c.Advance()
		v, _ := strconv.ParseInt(tok.Text, 0, 64)
		return &ast.IntLiteral{Tok: tok, Value: v}
	case c.Is(token.STRING_LIT):
		tok := c.Advance()
		return &ast.StringLiteral{Tok: tok, Value: tok.Text}
	case c.Is(token.TRUE):
		tok := c.Advance()
		return &ast.BoolLiteral{Tok: tok, Value: true}
	case c.Is(token.FALSE):
		tok := c.Advance()
		return &ast.BoolLiteral{Tok: tok, Value: false}
	case c.Is(token.IDENT), c.Is(token.CONST_IDENT), c.Is(token.TYPE_IDENT):
		tok := c.Advance()
		ident := &ast.IdentExpr{Tok: tok, Name: tok.Text}
		if c.Is(token.LPAREN) {
			c.Advance()
			var args []ast.Expr
			for !c.Is(token.RPAREN) && !c.Is(token.EOF) {
				arg := ParseConstExpr(c)
				if arg == nil {
					return nil
				}
				args = append(args, arg)
				if !c.TryConsume(token.COMMA) {
					break
				}
			}
			c.Expect(token.RPAREN, "')'")
			return &ast.CallExpr{Tok: ident.Tok, Args: args}
		}
		return ident
	default:
		c.diags.Add(diagnostics.New(diagnostics.ErrA003NotConstExpr, c.Peek()))
		return nil
	}
}
