package parser

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/intern"
	"github.com/mcgru/c3decl/internal/token"
)

// sliceStream feeds a fixed token slice as a pipeline.TokenStream,
// standing in for the out-of-scope lexer (§1) the same way cmd/c3decl's
// smoke test stands in for it at the ast level.
type sliceStream struct {
	toks []token.Token
	pos  int
}

func (s *sliceStream) Next() token.Token {
	if s.pos >= len(s.toks) {
		return token.Token{Kind: token.EOF}
	}
	t := s.toks[s.pos]
	s.pos++
	return t
}

func (s *sliceStream) Peek(n int) []token.Token {
	out := make([]token.Token, 0, n)
	for i := 0; i < n; i++ {
		idx := s.pos + i
		if idx >= len(s.toks) {
			out = append(out, token.Token{Kind: token.EOF})
			continue
		}
		out = append(out, s.toks[idx])
	}
	return out
}

func ident(kind token.Kind, text string) token.Token {
	return token.Token{Kind: kind, Text: text}
}

// TestEnumDuplicateConstantRecovers exercises §4.D's resynchronization
// rule: a repeated constant name within one enum body is reported once
// (with both spans) and poisoned, but the parser keeps consuming the
// rest of the body instead of aborting the whole declaration (§7, §8
// "recovery convergence").
func TestEnumDuplicateConstantRecovers(t *testing.T) {
	toks := []token.Token{
		ident(token.ENUM, "enum"),
		ident(token.TYPE_IDENT, "Color"),
		ident(token.LBRACE, "{"),
		ident(token.CONST_IDENT, "RED"),
		ident(token.COMMA, ","),
		ident(token.CONST_IDENT, "RED"),
		ident(token.COMMA, ","),
		ident(token.CONST_IDENT, "BLUE"),
		ident(token.RBRACE, "}"),
		ident(token.SEMI, ";"),
	}

	diags := &diagnostics.Bag{}
	p := New(&sliceStream{toks: toks}, diags, intern.New())

	decl := p.parseEnum(ast.Public, nil)
	enum, ok := decl.(*ast.EnumDecl)
	if !ok {
		t.Fatalf("expected *ast.EnumDecl, got %T", decl)
	}

	if len(enum.Values) != 3 {
		t.Fatalf("expected all 3 constants to be recorded despite the duplicate, got %d", len(enum.Values))
	}
	if enum.Values[0].Name != "RED" || enum.Values[1].Name != "RED" || enum.Values[2].Name != "BLUE" {
		t.Fatalf("unexpected constant names: %v", []string{enum.Values[0].Name, enum.Values[1].Name, enum.Values[2].Name})
	}
	if enum.Values[1].Status != ast.Done {
		t.Fatalf("expected the duplicate RED to be poisoned (Status=Done), got %v", enum.Values[1].Status)
	}
	if enum.Values[0].Status == ast.Done {
		t.Fatalf("expected the first RED to remain unpoisoned for the analyser to process")
	}

	var dupCount int
	for _, d := range diags.Items() {
		if d.Code == diagnostics.ErrP005DuplicateEnumName {
			dupCount++
			if d.PriorToken == nil {
				t.Fatalf("duplicate-enum-name diagnostic missing the prior occurrence's span")
			}
		}
	}
	if dupCount != 1 {
		t.Fatalf("expected exactly one duplicate-enum-name diagnostic, got %d", dupCount)
	}
}

// TestAttributesDuplicateNameRecovers exercises the same resynchronization
// shape at the attribute-list level (§4.D "Attribute parsing"): a
// repeated attribute name is reported once and dropped, not a parse abort.
func TestAttributesDuplicateNameRecovers(t *testing.T) {
	toks := []token.Token{
		ident(token.AT, "@"),
		ident(token.IDENT, "packed"),
		ident(token.AT, "@"),
		ident(token.IDENT, "packed"),
		ident(token.AT, "@"),
		ident(token.IDENT, "align"),
		ident(token.LPAREN, "("),
		{Kind: token.INT_LIT, Text: "4", Literal: int64(4)},
		ident(token.RPAREN, ")"),
	}

	diags := &diagnostics.Bag{}
	c := NewCursor(&sliceStream{toks: toks}, diags)
	attrs := ParseAttributes(c, intern.New())

	if len(attrs) != 2 {
		t.Fatalf("expected the duplicate to be dropped, leaving 2 attributes, got %d", len(attrs))
	}

	var dupCount int
	for _, d := range diags.Items() {
		if d.Code == diagnostics.ErrP003DuplicateAttr {
			dupCount++
		}
	}
	if dupCount != 1 {
		t.Fatalf("expected exactly one duplicate-attribute diagnostic, got %d", dupCount)
	}
}
