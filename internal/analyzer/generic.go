package analyzer

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// instantiation bundles a generated module together with the symbol
// table it was analysed into, so a later Instantiate call for the same
// cache key can re-resolve a (possibly different) aliased member
// without re-running cloneModule/analyseGenerated.
type instantiation struct {
	mod   *ast.Module
	table *symbols.Table
}

// ModuleLookup is the narrow view of the module registry (internal/
// modules, built separately) the Generic Instantiator needs: find the
// generic module a parameterised define instantiates from. Declared
// here rather than imported, the same opaque-interface technique used
// for ast.Context.ScopeStack, so this package does not depend on
// internal/modules.
type ModuleLookup interface {
	FindModule(path string) *ast.Module
}

// instantiationNamespace roots every derived instantiation uuid (§4.I:
// "mangled-name cache keys... are namespaced with a UUIDv5 derived from
// the module path + type-argument canonical names"), so the uuids this
// process mints never collide with uuidv5 values derived under an
// unrelated namespace elsewhere.
var instantiationNamespace = uuid.MustParse("6f1a6e0a-6b0e-4e0a-9c2a-6c6f64756c65")

// Instantiator implements the Generic Instantiator (§4.I): a
// parameterised `define mod<T1,...,Tn>` mangles to a fresh module name
// `<mod>.<T1>.….<Tn>` for display, but the process-wide instantiation
// cache is actually keyed on a UUIDv5 derived from the *source* module's
// identity plus the mangled argument list, so two source modules that
// happen to render the same human-readable mangled name (e.g. vendored
// copies of the same generic module under different import roots) are
// never conflated into one cached instantiation. Grounded on the
// teacher's module-instance caching in internal/repl (memoized
// construction keyed by a derived string), generalized from a REPL
// session cache to a generic-module cache (DOMAIN STACK:
// github.com/google/uuid).
type Instantiator struct {
	a      *Analyzer
	Lookup ModuleLookup
	// cache is keyed by the uuidv5 instance key once a registry is
	// wired in, or by the mangled text directly beforehand (no source
	// module identity yet to namespace a uuid against); the entry is
	// nil in the latter case since there is no generated module to
	// remember without a registry to clone one from.
	cache map[string]*instantiation

	// OnInstantiate, if set, is notified after each freshly built
	// instantiation with its display name, its uuid cache key, and its
	// source module's canonical path — the Module Registry's optional
	// sqlite-backed cache (internal/modules.Cache) hangs off this hook
	// rather than this package depending on database/sql directly.
	OnInstantiate func(mangledName, instanceKey, sourceModule string)
}

// NewInstantiator creates an Instantiator bound to a. Lookup is left
// nil until the module registry wires itself in; instantiation then
// still resolves the arguments and mints and records a mangled name,
// but binds no type parameters and clones no source module's
// declarations.
func NewInstantiator(a *Analyzer) *Instantiator {
	return &Instantiator{a: a, cache: make(map[string]*instantiation)}
}

// MangledName renders mod<arg1,...,argn>'s canonical instantiation name
// as "<mod>.<arg1>.….<argn>" (§4.I), using each argument's canonical
// Type identity so structurally distinct instantiations never collide
// and equivalent ones always share one generated module.
func (inst *Instantiator) MangledName(base string, args []*types.Type) string {
	var b strings.Builder
	b.WriteString(base)
	for _, t := range args {
		b.WriteByte('.')
		b.WriteString(canonicalArgName(t))
	}
	return b.String()
}

func canonicalArgName(t *types.Type) string {
	if t == nil {
		return "<unresolved>"
	}
	if t.Decl != nil {
		return t.Decl.TypeName()
	}
	return t.Kind.String() + "#" + strconv.Itoa(t.ID())
}

// Instantiate implements §4.I for a parameterised define: resolves each
// generic argument, mints the mangled name, and — if this exact
// instantiation has not been built before — clones the source module's
// imports and global declarations into a fresh module, binds each type
// parameter to a synthetic Typedef aliasing the supplied argument, and
// drives the new declarations to the same analysis stage as the
// caller's own module. d itself is then rebound to the concrete
// symbol its AliasName resolves to inside the generated module (§4.H
// "Define (alias)"). Returns the mangled name and whether
// instantiation succeeded.
func (inst *Instantiator) Instantiate(d *ast.DefineDecl) (string, bool) {
	base := d.AliasPath.String()
	if base == "" {
		base = d.AliasName
	}

	args := make([]*types.Type, 0, len(d.GenericArgs))
	for _, argTi := range d.GenericArgs {
		ct := inst.a.ResolveType(argTi, false)
		if ct == nil {
			return "", false
		}
		args = append(args, ct)
	}

	mangled := inst.MangledName(base, args)

	if inst.Lookup == nil {
		// The module registry has not been wired in at this point in the
		// build; there is no source module identity to namespace a uuid
		// against yet, so fall back to the mangled text as the key. Once a
		// registry is wired every lookup re-keys on the uuid below.
		inst.cache[mangled] = nil
		return mangled, true
	}

	src := inst.Lookup.FindModule(base)
	if src == nil {
		inst.a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, d.NameTok, base))
		return "", false
	}

	key := inst.instanceKey(src, mangled)
	if inst2, done := inst.cache[key]; done {
		inst.rebindAlias(d, inst2)
		return mangled, true
	}

	generated, table := inst.cloneAndAnalyse(src, mangled, d.GenericArgs, args)
	inst2 := &instantiation{mod: generated, table: table}
	inst.cache[key] = inst2
	if inst.OnInstantiate != nil {
		inst.OnInstantiate(mangled, key, src.Name.CanonicalForm)
	}
	inst.rebindAlias(d, inst2)
	return mangled, true
}

// rebindAlias resolves d.AliasName (e.g. "N" in "define IntN =
// list::N<int>;") inside the generated instantiation's own symbol
// table — already fully analysed by cloneAndAnalyse by the time this
// runs — and rebinds d to that symbol's Kind/Type (§4.H "Define
// (alias)": "rebinds this decl to point at the concrete symbol"). If
// the generated module carries no such member — the plain-module-alias
// form (`define IntList = list<int>;`, where AliasName names the
// module itself rather than a member in it) — d is left with no
// resolved type, matching a plain identifier alias's failure mode.
func (inst *Instantiator) rebindAlias(d *ast.DefineDecl, gen *instantiation) {
	if gen == nil || gen.table == nil {
		return
	}
	sym, ok := gen.table.Resolve(d.AliasName)
	if !ok {
		return
	}
	inst.a.define(d.Name, sym.Kind, sym.Type, d)
}

// instanceKey derives the UUIDv5 cache key for one instantiation from
// src's own identity (its canonical module path, stable regardless of
// which import root named it `base`) and the mangled argument suffix.
func (inst *Instantiator) instanceKey(src *ast.Module, mangled string) string {
	seed := src.Name.CanonicalForm + "#" + mangled
	return uuid.NewSHA1(instantiationNamespace, []byte(seed)).String()
}

// cloneAndAnalyse deep-copies only imports and global_decls from src
// (§4.I: "copy imports and global declarations, not functions/methods/
// types" is the narrower reading this module takes of the
// instantiation boundary — a generic module's functions and aggregate
// bodies are reached through the declarations that reference the bound
// type parameters, so copying global_decls already carries them
// along), via ast.CloneDecl so the generated module's declarations are
// structurally independent of src's (and of any other instantiation of
// src) rather than sharing the same Decl/TypeInfo pointers. It then
// binds each of src's type parameters to a synthetic Typedef wrapping
// the corresponding supplied argument, and drives every cloned
// top-level declaration through its own fresh Analyzer/symbol table —
// sharing this instantiation's type Store and diagnostics bag, but
// never the caller's table — to the same analysis stage the caller's
// module itself reaches (§4.I "drives the new module to the same
// analysis stage as the caller").
func (inst *Instantiator) cloneAndAnalyse(src *ast.Module, mangledName string, argTis []ast.TypeInfo, args []*types.Type) (*ast.Module, *symbols.Table) {
	path := ast.NewPath(strings.Split(mangledName, "."), src.Name.Span, mangledName)
	generated := ast.NewModule(path)
	generated.IsPrivate = src.IsPrivate

	table := symbols.NewTable(mangledName)
	ag := New(inst.a.Store, table, inst.a.Diags)
	ag.InGenericModule = src.IsGenericModule()

	for i, paramTok := range src.Parameters {
		if i >= len(args) {
			break
		}
		synthetic := &ast.TypedefDecl{
			Header: ast.Header{
				Name:      paramTok.Text,
				NameTok:   paramTok,
				Status:    ast.Done,
				Canonical: args[i],
			},
			Wrapped: argTis[i],
		}
		ag.define(paramTok.Text, symbols.KindType, args[i], synthetic)
	}

	for _, srcCtx := range src.Contexts {
		ctx := ast.NewContext(generated, srcCtx.FilePath)
		ctx.Imports = cloneImportDecls(srcCtx.Imports)
		for _, d := range srcCtx.GlobalDecls {
			ctx.GlobalDecls = append(ctx.GlobalDecls, ast.CloneDecl(d))
		}
	}

	// Pre-register every cloned top-level name before analysing any of
	// them, the same order AnalyseStage's preRegister/AnalyseDecl split
	// enforces for an ordinary module, so one cloned declaration can
	// forward-reference another cloned declaration by name.
	for _, ctx := range generated.Contexts {
		for _, decl := range ctx.GlobalDecls {
			h := decl.Head()
			if h.Name == "" {
				continue
			}
			if _, ok := table.Get(h.Name); !ok {
				table.Define(&symbols.Symbol{Name: h.Name, Decl: decl})
			}
		}
	}
	for _, ctx := range generated.Contexts {
		for _, decl := range ctx.GlobalDecls {
			ag.AnalyseDecl(decl)
		}
	}

	generated.Stage = ast.StageBodiesAnalyzed
	return generated, table
}

// cloneImportDecls deep-copies each import so the generated module's
// import list shares no ImportDecl pointers with src's.
func cloneImportDecls(imports []*ast.ImportDecl) []*ast.ImportDecl {
	if imports == nil {
		return nil
	}
	out := make([]*ast.ImportDecl, len(imports))
	for i, imp := range imports {
		out[i] = ast.CloneDecl(imp).(*ast.ImportDecl)
	}
	return out
}
