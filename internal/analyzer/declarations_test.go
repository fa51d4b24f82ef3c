package analyzer

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/token"
)

// AnalyseDecl must be idempotent on a Done declaration (§4.H): a second
// call returns the same result without re-running analysis or
// re-reporting any diagnostic.
func TestAnalyseDeclIdempotentOnDone(t *testing.T) {
	a := newTestAnalyzer()
	d := &ast.VarDecl{
		Header: ast.Header{Name: "count"},
		VarKind: ast.VarGlobal,
		Type:    builtinIdent("int"),
	}

	if ok := a.AnalyseDecl(d); !ok {
		t.Fatalf("expected the first analysis pass to succeed")
	}
	if d.Status != ast.Done {
		t.Fatalf("expected Status Done after the first pass, got %v", d.Status)
	}
	firstDiagCount := len(a.Diags.Items())

	if ok := a.AnalyseDecl(d); !ok {
		t.Fatalf("expected the second (idempotent) pass to still report success")
	}
	if len(a.Diags.Items()) != firstDiagCount {
		t.Fatalf("expected no additional diagnostics from the idempotent re-run, had %d now have %d",
			firstDiagCount, len(a.Diags.Items()))
	}
}

// A declaration that resolves back to itself through identifier
// resolution is a recursive cycle, reported once via ErrA001RecursiveCycle
// (§4.H, §7).
func TestRecursiveTypedefCycleReported(t *testing.T) {
	a := newTestAnalyzer()
	d := &ast.TypedefDecl{
		Header:  ast.Header{Name: "Loop"},
		Wrapped: &ast.IdentifierType{Name: "Loop"},
	}
	a.Table.Define(&symbols.Symbol{Name: "Loop", Kind: symbols.KindType, Decl: d})

	a.AnalyseDecl(d)

	var cycleCount int
	for _, diag := range a.Diags.Items() {
		if diag.Code == diagnostics.ErrA001RecursiveCycle {
			cycleCount++
		}
	}
	if cycleCount != 1 {
		t.Fatalf("expected exactly one recursive-cycle diagnostic, got %d", cycleCount)
	}
}

// A nil declaration, and a declaration already poisoned by a prior
// failed pass, are both rejected without panicking (§7 "poisoned
// declarations are inert").
func TestAnalyseDeclRejectsNilAndPoisoned(t *testing.T) {
	a := newTestAnalyzer()
	if ok := a.AnalyseDecl(nil); ok {
		t.Fatalf("expected a nil declaration to report failure")
	}

	poisoned := ast.NewPoisoned(token.Token{})
	if ok := a.AnalyseDecl(poisoned); ok {
		t.Fatalf("expected a poisoned declaration to report failure")
	}
}

// An attribute guarded by a literal-false $if condition is skipped by
// domain validation entirely, even one that would otherwise be invalid
// for this declaration kind (SPEC_FULL §9 supplement).
func TestFalseGuardedAttributeSkipsDomainValidation(t *testing.T) {
	a := newTestAnalyzer()
	h := &ast.Header{
		Name: "Shape",
		Attributes: []*ast.Attribute{
			{Name: "noreturn", NameTok: token.Token{Text: "noreturn"}, CondExpr: &ast.BoolLiteral{Value: false}},
		},
	}

	if !a.analyseAttributes(h, "typedef") {
		t.Fatalf("expected the false-guarded, domain-invalid attribute to be skipped without error")
	}
	if len(a.Diags.Items()) != 0 {
		t.Fatalf("expected no diagnostics for a disabled attribute, got %v", a.Diags.Items())
	}
}
