package parser

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/token"
)

// alwaysSyncKeywords are sync points regardless of column (§4.D
// "Recovery"): reaching one of these almost always means the previous
// declaration's garbled tail has been fully skipped, since they rarely
// appear nested inside a malformed top-level form.
var alwaysSyncKeywords = map[token.Kind]bool{
	token.PRIVATE:   true,
	token.STRUCT:    true,
	token.INTERFACE: true,
	token.IMPORT:    true,
	token.UNION:     true,
	token.EXTERN:    true,
	token.ENUM:      true,
	token.GENERIC:   true,
	token.ATTRIBUTE: true,
	token.DEFINE:    true,
}

// columnOneSyncKeywords are only trusted as sync points when they start
// at column 1 (§4.D "Recovery"): these also appear inside expressions
// and nested positions, so off-column occurrences are skipped over
// rather than treated as the next declaration.
var columnOneSyncKeywords = map[token.Kind]bool{
	token.FUNC:       true,
	token.CT_IF:      true,
	token.CT_FOR:     true,
	token.CT_SWITCH:  true,
	token.CT_ASSERT:  true,
	token.CONST:      true,
	token.ASM:        true,
	token.TYPEOF:     true,
	token.CT_IDENT:   true,
	token.TYPE_IDENT: true,
	token.CT_TYPE_IDENT: true,
	token.DOCS_START: true,
}

// recoverTopLevel implements the Recovery procedure of §4.D: advance
// the cursor until EOF or a sync-point token, then return a poisoned
// Decl so that the caller can keep filing declarations from the next
// good position. Built-in type keywords and IDENT (the start of an
// incremental-array append or a global-variable declaration) are also
// trusted only at column 1, since both begin with tokens that also
// occur mid-expression.
func (p *Parser) recoverTopLevel() ast.Decl {
	startTok := p.C.Peek()
	for {
		tok := p.C.Peek()
		if tok.Kind == token.EOF {
			break
		}
		if alwaysSyncKeywords[tok.Kind] {
			break
		}
		atColumnOne := tok.Span.Column == 1
		if atColumnOne {
			if columnOneSyncKeywords[tok.Kind] || tok.Kind == token.IDENT || token.IsBuiltinTypeKeyword(tok.Kind) {
				break
			}
		}
		p.C.Advance()
	}
	return ast.NewPoisoned(startTok)
}
