package analyzer

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// newMethodTestAnalyzer pre-registers a struct named recvType so method
// declarations against it can resolve their receiver, mirroring what the
// module registry's pre-registration pass would normally do.
func newMethodTestAnalyzer(recvType string) (*Analyzer, *ast.AggregateDecl) {
	store := types.NewStore()
	table := symbols.NewTable("test")

	parentDecl := ast.NewAggregate(ast.DeclStruct)
	parentDecl.Name = recvType
	parentType := store.NewNominal(types.Struct, parentDecl)

	table.Define(&symbols.Symbol{Name: recvType, Kind: symbols.KindType, Type: parentType, Decl: parentDecl})

	a := New(store, table, &diagnostics.Bag{})
	return a, parentDecl
}

func methodDecl(recvType, name string, vis ast.Visibility) *ast.FuncDecl {
	return &ast.FuncDecl{
		Header:   ast.Header{Name: name, Visibility: vis},
		Return:   builtinIdent("void"),
		RecvType: recvType,
	}
}

// S5: two methods sharing the same receiver type and name collide; the
// second is rejected with both occurrences' spans, the first keeps its
// mangled external name (§4.H "Method").
func TestDuplicateMethodNameRejectsSecond(t *testing.T) {
	a, _ := newMethodTestAnalyzer("Point")

	first := methodDecl("Point", "scale", ast.VisModule)
	second := methodDecl("Point", "scale", ast.VisModule)

	if ok := a.analyseFunc(first); !ok {
		t.Fatalf("expected the first method declaration to succeed")
	}
	if first.Mangled != "Point.scale" {
		t.Fatalf("expected module-visibility mangled name 'Point.scale', got %q", first.Mangled)
	}

	if ok := a.analyseFunc(second); ok {
		t.Fatalf("expected the second, colliding method declaration to fail")
	}

	var dupCount int
	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA005DuplicateMethod {
			dupCount++
			if d.PriorToken == nil {
				t.Fatalf("expected the duplicate-method diagnostic to carry the first occurrence's span")
			}
		}
	}
	if dupCount != 1 {
		t.Fatalf("expected exactly one duplicate-method diagnostic, got %d", dupCount)
	}
}

// A public method mangles its external name as "Parent__name" rather
// than "Parent.name" (§4.H "Method").
func TestPublicMethodMangling(t *testing.T) {
	a, _ := newMethodTestAnalyzer("Point")

	m := methodDecl("Point", "scale", ast.Public)
	if ok := a.analyseFunc(m); !ok {
		t.Fatalf("expected the method declaration to succeed")
	}
	if m.Mangled != "Point__scale" {
		t.Fatalf("expected public-visibility mangled name 'Point__scale', got %q", m.Mangled)
	}
}

// Methods on distinct receiver types never collide, even with the same
// method name (§4.H "Method": the collision key is "parent.name").
func TestSameMethodNameDifferentReceiversDoNotCollide(t *testing.T) {
	store := types.NewStore()
	table := symbols.NewTable("test")

	for _, name := range []string{"Point", "Vector"} {
		decl := ast.NewAggregate(ast.DeclStruct)
		decl.Name = name
		typ := store.NewNominal(types.Struct, decl)
		table.Define(&symbols.Symbol{Name: name, Kind: symbols.KindType, Type: typ, Decl: decl})
	}

	a := New(store, table, &diagnostics.Bag{})

	if ok := a.analyseFunc(methodDecl("Point", "scale", ast.VisModule)); !ok {
		t.Fatalf("expected Point.scale to succeed")
	}
	if ok := a.analyseFunc(methodDecl("Vector", "scale", ast.VisModule)); !ok {
		t.Fatalf("expected Vector.scale to succeed despite sharing a name with Point.scale")
	}

	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA005DuplicateMethod {
			t.Fatalf("did not expect a duplicate-method diagnostic across distinct receivers, got %v", d)
		}
	}
}

// A method whose receiver type cannot be resolved at all is rejected
// with an unresolved-symbol diagnostic rather than panicking.
func TestMethodOnUnresolvedReceiverFails(t *testing.T) {
	a := New(types.NewStore(), symbols.NewTable("test"), &diagnostics.Bag{})

	m := methodDecl("Nonexistent", "scale", ast.VisModule)
	if ok := a.analyseFunc(m); ok {
		t.Fatalf("expected analysis to fail for an unresolved receiver type")
	}

	var unresolved bool
	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA013UnresolvedSymbol {
			unresolved = true
		}
	}
	if !unresolved {
		t.Fatalf("expected an unresolved-symbol diagnostic for the missing receiver type")
	}
}
