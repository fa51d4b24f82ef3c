package ast

import "github.com/mcgru/c3decl/internal/token"

// ModuleStage is the analysis stage a Module has reached, driven
// synchronously by the out-of-scope module loader via analyse_stage
// (§1, §6).
type ModuleStage int

const (
	StageUnparsed ModuleStage = iota
	StageParsed
	StageHeadersAnalyzed
	StageBodiesAnalyzed
)

// Module is `{name, parameters, contexts, is_generic, is_private,
// stage}` (§3).
type Module struct {
	Name       Path
	Parameters []token.Token // type-parameter tokens; empty for non-generic modules
	Contexts   []*Context
	IsGeneric  bool
	IsPrivate  bool
	Stage      ModuleStage
}

func NewModule(name Path) *Module {
	return &Module{Name: name}
}

func (m *Module) IsGenericModule() bool { return m.IsGeneric || len(m.Parameters) > 0 }

// Context is the per-source-file data bag named in §3: `{module,
// imports, global_decls, functions, methods, types, enums,
// interfaces, ct_ifs, external_symbols, scope_stack, docs_start_token}`.
//
// ScopeStack is held as an opaque value (populated by the analyser,
// which imports both this package and internal/symbols) so that this
// package does not need to depend on internal/symbols — matching the
// same opaque-handle technique used for types.NominalDecl to avoid an
// import cycle.
type Context struct {
	Module          *Module
	FilePath        string
	Imports         []*ImportDecl
	GlobalDecls     []Decl
	Functions       []*FuncDecl
	Methods         []*FuncDecl
	Types           []Decl // struct/union/err/typedef/distinct declarations
	Enums           []*EnumDecl
	Interfaces      []*InterfaceDecl
	CtIfs           []Decl // *CtIfDecl / *CtSwitchDecl
	ExternalSymbols []string
	ScopeStack      interface{}
	DocsStartTok    *token.Token
}

func NewContext(module *Module, filePath string) *Context {
	ctx := &Context{Module: module, FilePath: filePath}
	module.Contexts = append(module.Contexts, ctx)
	return ctx
}

// AllDecls returns every top-level declaration recorded in this
// context, in the order the classification lists were populated
// (globals, functions, methods, types, enums, interfaces, conditionals),
// primarily useful for tests and for a driver that wants to walk
// "every declaration in the file" without caring about its shape.
func (c *Context) AllDecls() []Decl {
	var all []Decl
	all = append(all, c.GlobalDecls...)
	for _, f := range c.Functions {
		all = append(all, f)
	}
	for _, m := range c.Methods {
		all = append(all, m)
	}
	all = append(all, c.Types...)
	for _, e := range c.Enums {
		all = append(all, e)
	}
	for _, i := range c.Interfaces {
		all = append(all, i)
	}
	all = append(all, c.CtIfs...)
	return all
}
