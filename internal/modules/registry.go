// Package modules implements the narrow Module Registry collaborator
// (§1 "module loader... exposed as find_or_create_module, analyse_stage";
// §6 "analyse_stage is provided by the narrow ModuleRegistry collaborator
// interface"). File-system discovery, import-path resolution, and
// recursive dependency loading are out of scope here — the registry only
// owns the in-memory bookkeeping once a caller (a driver or a test) has
// already produced a parsed *ast.Module: registering it by canonical
// path, pre-registering its top-level names, and running every
// declaration through the Declaration Analyser.
//
// Grounded on the teacher's internal/modules/loader.go Loader
// (LoadedModules/ModulesByName cache-by-key maps, Processing cycle
// guard), narrowed to drop the teacher's directory-walking and
// package-group logic (out of scope per the spec) while keeping its
// find-or-create + cache pattern.
package modules

import (
	"context"

	"github.com/mcgru/c3decl/internal/analyzer"
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// Registry is the find_or_create_module/analyse_stage collaborator.
// One Registry owns every module discovered during a single compiler
// invocation, a process-wide type Store shared by all their analyzers
// (so nominal identity is comparable across module boundaries), and the
// per-module symbol tables the analyzer resolves names through.
type Registry struct {
	Store *types.Store
	Diags *diagnostics.Bag

	modules map[string]*ast.Module
	tables  map[string]*symbols.Table
	cache   *Cache
}

// NewRegistry creates an empty registry reporting into diags.
func NewRegistry(diags *diagnostics.Bag) *Registry {
	return &Registry{
		Store:   types.NewStore(),
		Diags:   diags,
		modules: make(map[string]*ast.Module),
		tables:  make(map[string]*symbols.Table),
	}
}

// FindOrCreateModule returns the already-registered module named path,
// or registers and returns a freshly minted empty one (§6
// find_or_create_module). The second result reports whether the module
// already existed.
func (r *Registry) FindOrCreateModule(path ast.Path) (*ast.Module, bool) {
	key := path.CanonicalForm
	if mod, ok := r.modules[key]; ok {
		return mod, true
	}
	mod := ast.NewModule(path)
	r.modules[key] = mod
	r.tables[key] = symbols.NewTable(key)
	return mod, false
}

// Register adds an already-built module (e.g. the output of a parse
// pass the caller drove directly) under its own canonical path,
// replacing any placeholder FindOrCreateModule had minted for the same
// path.
func (r *Registry) Register(mod *ast.Module) {
	key := mod.Name.CanonicalForm
	r.modules[key] = mod
	if _, ok := r.tables[key]; !ok {
		r.tables[key] = symbols.NewTable(key)
	}
}

// FindModule implements analyzer.ModuleLookup, so the Generic
// Instantiator can resolve a parameterised define's base module without
// this package's caller having to wire two separate lookup paths.
func (r *Registry) FindModule(path string) *ast.Module {
	return r.modules[path]
}

// TableFor returns the symbol table owned by mod, creating one if mod
// was registered by Register rather than FindOrCreateModule.
func (r *Registry) TableFor(mod *ast.Module) *symbols.Table {
	key := mod.Name.CanonicalForm
	if t, ok := r.tables[key]; ok {
		return t
	}
	t := symbols.NewTable(key)
	r.tables[key] = t
	return t
}

// preRegister walks every context of mod and defines each top-level
// declaration's name into table with Type left nil (§4.H doc comment on
// Analyzer.define: "top-level names are pre-registered... before
// analysis begins"). A name already bound in this table is a duplicate
// top-level declaration, reported once here rather than by the analyser
// (which only fills in Type/Kind for a name it finds already present).
func preRegister(table *symbols.Table, mod *ast.Module, diags *diagnostics.Bag) {
	for _, ctx := range mod.Contexts {
		for _, decl := range ctx.AllDecls() {
			h := decl.Head()
			if h.Name == "" {
				continue
			}
			sym := &symbols.Symbol{Name: h.Name, Kind: guessKind(decl), Decl: decl}
			if prior, ok := table.Define(sym); !ok {
				diags.Add(diagnostics.NewDuplicate(diagnostics.ErrA004DuplicateMember, diagnostics.PhaseAnalyzer, h.NameTok, prior.Decl.Head().NameTok, h.Name))
			}
		}
	}
}

// guessKind picks a placeholder Kind for a pre-registered symbol, purely
// cosmetic until AnalyseDecl fills in the resolved Kind/Type in place;
// nothing in the Type Resolver or Declaration Analyser branches on a
// symbol's Kind before that point.
func guessKind(decl ast.Decl) symbols.Kind {
	switch decl.(type) {
	case *ast.FuncDecl, *ast.MacroDecl, *ast.GenericDecl:
		return symbols.KindFunc
	case *ast.AggregateDecl, *ast.EnumDecl, *ast.TypedefDecl, *ast.DistinctDecl, *ast.InterfaceDecl:
		return symbols.KindType
	default:
		return symbols.KindValue
	}
}

// AnalyseStage implements §6's analyse_stage entry point: pre-registers
// mod's top-level names (first call only — a module already past
// StageParsed has already been pre-registered), builds an Analyzer over
// mod's table and the registry's shared type store, wires the Generic
// Instantiator's lookup back to this registry, and runs every
// declaration through AnalyseDecl. Advances mod.Stage to
// StageBodiesAnalyzed on completion; safe to call again (AnalyseDecl is
// idempotent on Done per §7).
func (r *Registry) AnalyseStage(mod *ast.Module) *analyzer.Analyzer {
	table := r.TableFor(mod)

	if mod.Stage < ast.StageHeadersAnalyzed {
		preRegister(table, mod, r.Diags)
		mod.Stage = ast.StageHeadersAnalyzed
	}

	a := analyzer.New(r.Store, table, r.Diags)
	a.InGenericModule = mod.IsGenericModule()
	a.Instantiator.Lookup = r
	if r.cache != nil {
		a.Instantiator.OnInstantiate = func(mangledName, instanceKey, sourceModule string) {
			r.PersistInstantiation(context.Background(), mangledName, instanceKey, sourceModule)
		}
	}

	for _, ctx := range mod.Contexts {
		for _, decl := range ctx.AllDecls() {
			a.AnalyseDecl(decl)
		}
	}

	mod.Stage = ast.StageBodiesAnalyzed
	return a
}
