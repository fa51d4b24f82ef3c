package parser

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/config"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

func cnameAttr(value string) *ast.Attribute {
	return &ast.Attribute{Name: "cname", NameTok: token.Token{Text: "cname"}, ArgExpr: &ast.StringLiteral{Value: value}}
}

// @cname is validated against a target ABI name allowlist (SPEC_FULL §9
// supplement): a string containing characters illegal in a C identifier
// is rejected even though it is a well-formed string constant.
func TestCnameRejectsInvalidABIName(t *testing.T) {
	diags := &diagnostics.Bag{}
	ok := ValidateAttributeDomain(diags, cnameAttr("not a valid name!"), config.DomainFunc, false)
	if ok {
		t.Fatalf("expected an ABI-illegal cname to be rejected")
	}
	if len(diags.Items()) != 1 || diags.Items()[0].Code != diagnostics.ErrA008BadAttributeArg {
		t.Fatalf("expected one A008 diagnostic, got %v", diags.Items())
	}
}

func TestCnameAcceptsValidABIName(t *testing.T) {
	diags := &diagnostics.Bag{}
	ok := ValidateAttributeDomain(diags, cnameAttr("_my_c_symbol123"), config.DomainFunc, false)
	if !ok {
		t.Fatalf("expected a valid C identifier cname to be accepted, got diags %v", diags.Items())
	}
}

// @bitstruct takes an integer constant bit offset, not a string or
// alignment value (SPEC_FULL §9 supplement).
func TestBitstructRequiresIntArg(t *testing.T) {
	diags := &diagnostics.Bag{}
	attr := &ast.Attribute{Name: "bitstruct", NameTok: token.Token{Text: "bitstruct"}, ArgExpr: &ast.IntLiteral{Value: 3}}
	if !ValidateAttributeDomain(diags, attr, config.DomainMember, false) {
		t.Fatalf("expected an integer-constant bitstruct argument to be accepted, got diags %v", diags.Items())
	}

	badDiags := &diagnostics.Bag{}
	bad := &ast.Attribute{Name: "bitstruct", NameTok: token.Token{Text: "bitstruct"}, ArgExpr: &ast.StringLiteral{Value: "3"}}
	if ValidateAttributeDomain(badDiags, bad, config.DomainMember, false) {
		t.Fatalf("expected a non-integer bitstruct argument to be rejected")
	}
}

// A $if-guarded attribute whose condition folds to literal false is
// skipped entirely by applyCommonAttributes, as though it were never
// written (SPEC_FULL §9 supplement: conditional attribute application).
func TestDisabledAttributeIsNotApplied(t *testing.T) {
	h := &ast.Header{
		Attributes: []*ast.Attribute{
			{Name: "packed", CondExpr: &ast.BoolLiteral{Value: false}},
			{Name: "opaque", CondExpr: &ast.BoolLiteral{Value: true}},
		},
	}
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Header = *h
	applyCommonAttributes(decl)

	if decl.IsPacked {
		t.Fatalf("expected the false-guarded @packed to be skipped")
	}
	if !decl.IsOpaque {
		t.Fatalf("expected the true-guarded @opaque to still apply")
	}
}
