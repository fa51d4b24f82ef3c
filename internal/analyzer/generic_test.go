package analyzer

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/token"
	"github.com/mcgru/c3decl/internal/types"
)

type fakeLookup struct {
	modules map[string]*ast.Module
}

func (f *fakeLookup) FindModule(path string) *ast.Module { return f.modules[path] }

func newGenericSourceModule(canonicalName string) *ast.Module {
	path := ast.NewPath([]string{canonicalName}, token.Span{}, canonicalName)
	mod := ast.NewModule(path)
	mod.Parameters = []token.Token{{Kind: token.TYPE_IDENT, Text: "T"}}
	ctx := ast.NewContext(mod, "<generic-src>")
	ctx.GlobalDecls = append(ctx.GlobalDecls, &ast.VarDecl{
		Header: ast.Header{Name: "value"},
		Type:   &ast.IdentifierType{Name: "T"},
	})
	return mod
}

func defineDecl(name, aliasName string, args ...ast.TypeInfo) *ast.DefineDecl {
	return &ast.DefineDecl{
		Header:      ast.Header{Name: name},
		AliasName:   aliasName,
		GenericArgs: args,
	}
}

// newGenericSourceModuleWithMember builds a generic source module named
// canonicalName, parameterised over T, containing `define memberName =
// T;` — the S6 fixture (spec.md §8: module `list<T>` containing `define
// N = T;`).
func newGenericSourceModuleWithMember(canonicalName, memberName string) *ast.Module {
	path := ast.NewPath([]string{canonicalName}, token.Span{}, canonicalName)
	mod := ast.NewModule(path)
	mod.Parameters = []token.Token{{Kind: token.TYPE_IDENT, Text: "T"}}
	ctx := ast.NewContext(mod, "<generic-src>")
	ctx.GlobalDecls = append(ctx.GlobalDecls, &ast.DefineDecl{
		Header:    ast.Header{Name: memberName},
		AliasName: "T",
	})
	return mod
}

// moduleMemberDefine builds `define name = modulePath::memberName<args>;`
// the way the parser produces it: AliasPath names the source module,
// AliasName names the member inside it.
func moduleMemberDefine(name, modulePath, memberName string, args ...ast.TypeInfo) *ast.DefineDecl {
	return &ast.DefineDecl{
		Header:      ast.Header{Name: name},
		AliasPath:   ast.NewPath([]string{modulePath}, token.Span{}, modulePath),
		AliasName:   memberName,
		GenericArgs: args,
	}
}

// S6: instantiating the same generic module with the same arguments
// twice produces the same mangled name and reuses the cached
// instantiation (the uuidv5 cache key collapses repeats, §4.I).
func TestGenericInstantiationCachesRepeats(t *testing.T) {
	a := newTestAnalyzer()
	src := newGenericSourceModule("vec")
	a.Instantiator.Lookup = &fakeLookup{modules: map[string]*ast.Module{"vec": src}}

	first := defineDecl("IntVec", "vec", builtinIdent("int"))
	second := defineDecl("IntVec2", "vec", builtinIdent("int"))

	name1, ok1 := a.Instantiator.Instantiate(first)
	if !ok1 {
		t.Fatalf("expected the first instantiation to succeed")
	}
	name2, ok2 := a.Instantiator.Instantiate(second)
	if !ok2 {
		t.Fatalf("expected the second instantiation to succeed")
	}
	if name1 != name2 {
		t.Fatalf("expected both instantiations to mangle to the same name, got %q and %q", name1, name2)
	}
	if len(a.Instantiator.cache) != 1 {
		t.Fatalf("expected exactly one cached instantiation after two requests for the same args, got %d", len(a.Instantiator.cache))
	}
}

// Instantiating the same generic module with structurally different
// arguments produces distinct mangled names and distinct cache entries.
func TestGenericInstantiationDistinctArgsDoNotCollide(t *testing.T) {
	a := newTestAnalyzer()
	src := newGenericSourceModule("vec")
	a.Instantiator.Lookup = &fakeLookup{modules: map[string]*ast.Module{"vec": src}}

	intVec := defineDecl("IntVec", "vec", builtinIdent("int"))
	boolVec := defineDecl("BoolVec", "vec", builtinIdent("bool"))

	nameInt, ok := a.Instantiator.Instantiate(intVec)
	if !ok {
		t.Fatalf("expected int instantiation to succeed")
	}
	nameBool, ok := a.Instantiator.Instantiate(boolVec)
	if !ok {
		t.Fatalf("expected bool instantiation to succeed")
	}
	if nameInt == nameBool {
		t.Fatalf("expected distinct mangled names for distinct type arguments, both got %q", nameInt)
	}
	if len(a.Instantiator.cache) != 2 {
		t.Fatalf("expected two distinct cache entries, got %d", len(a.Instantiator.cache))
	}
}

// Two distinct source modules that happen to mangle to the same
// human-readable name never collide in the cache, since the key is
// namespaced on the source module's own canonical identity (§4.I).
func TestGenericInstantiationNamespacedBySourceModule(t *testing.T) {
	a := newTestAnalyzer()
	srcA := newGenericSourceModule("vendor_a::vec")
	srcB := newGenericSourceModule("vendor_b::vec")
	lookup := &fakeLookup{modules: map[string]*ast.Module{
		"vendor_a::vec": srcA,
		"vendor_b::vec": srcB,
	}}
	a.Instantiator.Lookup = lookup

	keyA := a.Instantiator.instanceKey(srcA, "vec.int")
	keyB := a.Instantiator.instanceKey(srcB, "vec.int")
	if keyA == keyB {
		t.Fatalf("expected distinct uuidv5 keys for distinct source modules sharing a mangled name, both got %q", keyA)
	}
}

// Instantiating against an unknown module base reports an
// unresolved-symbol diagnostic rather than a cache entry.
func TestGenericInstantiationUnresolvedSourceModule(t *testing.T) {
	a := newTestAnalyzer()
	a.Instantiator.Lookup = &fakeLookup{modules: map[string]*ast.Module{}}

	_, ok := a.Instantiator.Instantiate(defineDecl("IntVec", "nonexistent", builtinIdent("int")))
	if ok {
		t.Fatalf("expected instantiation against an unknown source module to fail")
	}
	if len(a.Instantiator.cache) != 0 {
		t.Fatalf("expected no cache entry to be created for a failed instantiation")
	}
}

// Before a module registry is wired in (Lookup == nil), instantiation
// still mints a mangled name and dedups on it, falling back to the
// mangled text as the cache key.
func TestGenericInstantiationWithoutLookupFallsBackToMangledKey(t *testing.T) {
	a := newTestAnalyzer()

	name1, ok := a.Instantiator.Instantiate(defineDecl("IntVec", "vec", builtinIdent("int")))
	if !ok {
		t.Fatalf("expected instantiation without a registry to still succeed")
	}
	name2, ok := a.Instantiator.Instantiate(defineDecl("IntVec2", "vec", builtinIdent("int")))
	if !ok {
		t.Fatalf("expected the repeated instantiation to still succeed")
	}
	if name1 != name2 {
		t.Fatalf("expected the same mangled name both times, got %q and %q", name1, name2)
	}
	if len(a.Instantiator.cache) != 1 {
		t.Fatalf("expected one cache entry keyed on the mangled text, got %d", len(a.Instantiator.cache))
	}
}

// S6 (spec.md §8): instantiating `list::N<int>` against a module `list<T>`
// containing `define N = T;` resolves IntN's symbol to int, not nil —
// Instantiate must actually analyse the generated module's own
// declarations and rebind the outer alias to the result.
func TestGenericInstantiationResolvesAliasedMemberType(t *testing.T) {
	a := newTestAnalyzer()
	src := newGenericSourceModuleWithMember("list", "N")
	a.Instantiator.Lookup = &fakeLookup{modules: map[string]*ast.Module{"list": src}}

	d := moduleMemberDefine("IntN", "list", "N", builtinIdent("int"))
	if _, ok := a.Instantiator.Instantiate(d); !ok {
		t.Fatalf("expected the instantiation to succeed")
	}

	sym, ok := a.Table.Get("IntN")
	if !ok {
		t.Fatalf("expected IntN to be defined in the calling module's table")
	}
	if sym.Type == nil {
		t.Fatalf("expected IntN to resolve to a concrete type, got nil")
	}
	wantInt := types.LookupInteger("int")
	if sym.Type != wantInt {
		t.Fatalf("expected IntN to resolve to int, got %v", sym.Type)
	}
}

// Instantiating the same generic module with distinct type arguments
// must not let the second instantiation's members alias the first's
// already-resolved declarations (the failure mode a shallow
// append-copy in cloneAndAnalyse would produce): IntN and BoolN must
// resolve to their own distinct bound types.
func TestGenericInstantiationDistinctArgsResolveIndependently(t *testing.T) {
	a := newTestAnalyzer()
	src := newGenericSourceModuleWithMember("list", "N")
	a.Instantiator.Lookup = &fakeLookup{modules: map[string]*ast.Module{"list": src}}

	intDefine := moduleMemberDefine("IntN", "list", "N", builtinIdent("int"))
	boolDefine := moduleMemberDefine("BoolN", "list", "N", builtinIdent("bool"))

	if _, ok := a.Instantiator.Instantiate(intDefine); !ok {
		t.Fatalf("expected the int instantiation to succeed")
	}
	if _, ok := a.Instantiator.Instantiate(boolDefine); !ok {
		t.Fatalf("expected the bool instantiation to succeed")
	}

	intSym, _ := a.Table.Get("IntN")
	boolSym, _ := a.Table.Get("BoolN")
	if intSym.Type == nil || boolSym.Type == nil {
		t.Fatalf("expected both aliases to resolve, got IntN=%v BoolN=%v", intSym.Type, boolSym.Type)
	}
	if intSym.Type == boolSym.Type {
		t.Fatalf("expected IntN and BoolN to resolve to distinct types, both resolved to %v", intSym.Type)
	}
	if intSym.Type != types.LookupInteger("int") {
		t.Fatalf("expected IntN to resolve to int, got %v", intSym.Type)
	}
	if boolSym.Type != types.BoolType {
		t.Fatalf("expected BoolN to resolve to bool, got %v", boolSym.Type)
	}
}
