package ast

import "github.com/mcgru/c3decl/internal/token"

// Expr is the out-of-scope expression AST, "invoked by reference" per
// §1 ("Expression parser and expression-level semantic analyser").
// This module only needs enough of it to carry constant expressions
// through array lengths, enum values, and attribute arguments, so the
// variants below are a narrow stand-in rather than a general
// expression grammar.
type Expr interface {
	exprNode()
	GetToken() token.Token
}

type IntLiteral struct {
	Tok   token.Token
	Value int64
}

func (e *IntLiteral) exprNode()             {}
func (e *IntLiteral) GetToken() token.Token { return e.Tok }

type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (e *StringLiteral) exprNode()             {}
func (e *StringLiteral) GetToken() token.Token { return e.Tok }

type BoolLiteral struct {
	Tok   token.Token
	Value bool
}

func (e *BoolLiteral) exprNode()             {}
func (e *BoolLiteral) GetToken() token.Token { return e.Tok }

// IdentExpr references a previously declared constant by name, resolved
// during analysis through the symbol table (§4.F, §4.G).
type IdentExpr struct {
	Tok  token.Token
	Name string
}

func (e *IdentExpr) exprNode()             {}
func (e *IdentExpr) GetToken() token.Token { return e.Tok }

// CallExpr represents a constructor-style call such as an enum
// constant's payload arguments `A(1, "x")`.
type CallExpr struct {
	Tok  token.Token
	Args []Expr
}

func (e *CallExpr) exprNode()             {}
func (e *CallExpr) GetToken() token.Token { return e.Tok }

// IsConst reports whether e is a literal the analyser can fold without
// deferring to the (out-of-scope) expression analyser. Identifiers are
// resolved separately through the symbol table.
func IsConst(e Expr) bool {
	switch e.(type) {
	case *IntLiteral, *StringLiteral, *BoolLiteral:
		return true
	default:
		return false
	}
}
