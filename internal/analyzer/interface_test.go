package analyzer

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
)

// The DECL_INTERFACE open question (§9) resolves to rejecting a body, a
// default-valued parameter, and a variadic parameter on an interface
// method, even though a free function with the same shape is accepted.
func TestInterfaceMethodRejectsBodyDefaultAndVariadic(t *testing.T) {
	a := newTestAnalyzer()
	withBody := &ast.FuncDecl{Header: ast.Header{Name: "withBody"}, Return: builtinIdent("void"), HasBody: true}
	withDefault := &ast.FuncDecl{
		Header: ast.Header{Name: "withDefault"}, Return: builtinIdent("void"),
		Params: []*ast.Param{{Name: "n", Type: builtinIdent("int"), Default: &ast.IntLiteral{Value: 0}}},
	}
	withVariadic := &ast.FuncDecl{Header: ast.Header{Name: "withVariadic"}, Return: builtinIdent("void"), Variadic: true}

	d := &ast.InterfaceDecl{
		Header:  ast.Header{Name: "Shape"},
		Methods: []*ast.FuncDecl{withBody, withDefault, withVariadic},
	}

	if a.AnalyseDecl(d) {
		t.Fatalf("expected analysis to fail given three invalid interface methods")
	}

	var count int
	for _, diag := range a.Diags.Items() {
		if diag.Code == diagnostics.ErrA014InterfaceMethod {
			count++
		}
	}
	if count != 3 {
		t.Fatalf("expected three A014 diagnostics (one per offending method), got %d", count)
	}
}

// A plain interface method with no body, no default parameter, and no
// variadic parameter is accepted.
func TestInterfaceMethodPlainSignatureAccepted(t *testing.T) {
	a := newTestAnalyzer()
	plain := &ast.FuncDecl{
		Header: ast.Header{Name: "area"}, Return: builtinIdent("int"),
		Params: []*ast.Param{{Name: "scale", Type: builtinIdent("int")}},
	}
	d := &ast.InterfaceDecl{Header: ast.Header{Name: "Shape"}, Methods: []*ast.FuncDecl{plain}}

	if !a.AnalyseDecl(d) {
		t.Fatalf("expected a plain method signature to be accepted, diags: %v", a.Diags.Items())
	}
}
