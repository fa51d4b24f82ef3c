// Package analyzer implements the Type Resolver (§4.G) and Declaration
// Analyser (§4.H), plus the Generic Instantiator (§4.I). Grounded on the
// teacher's internal/typesystem/types.go ApplyWithCycleCheck tri-state
// walk, generalized from unification-style type inference to this
// module's nominal/structural resolution.
package analyzer

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// Analyzer drives type resolution and declaration analysis over one
// module's symbol table and the process-wide type store, reporting into
// a shared diagnostics bag (§5: all shared state is touched from a
// single analysis thread, so Analyzer keeps no locks).
type Analyzer struct {
	Store  *types.Store
	Table  *symbols.Table
	Scopes *symbols.Stack

	Diags *diagnostics.Bag

	// InGenericModule gates the cname/section generic-module
	// restriction (§4.H "Attribute application").
	InGenericModule bool

	// methodNames tracks "Parent.Name" -> first-occurrence declaration across
	// every method analysed so far, for the duplicate-method check
	// (§4.H "Method").
	methodNames map[string]ast.Decl

	Instantiator *Instantiator
}

// New creates an Analyzer over table and store, reporting into diags.
func New(store *types.Store, table *symbols.Table, diags *diagnostics.Bag) *Analyzer {
	a := &Analyzer{
		Store:       store,
		Table:       table,
		Scopes:      symbols.NewStack(),
		Diags:       diags,
		methodNames: make(map[string]ast.Decl),
	}
	a.Instantiator = NewInstantiator(a)
	return a
}

// ResolveType implements resolve_type_shallow(ti, allow_inferred) (§4.G):
// Done is a no-op returning the cached canonical handle; Running is a
// cycle, reported once and poisoned; otherwise the TypeInfo is walked by
// kind, interned through a.Store, and marked Done.
func (a *Analyzer) ResolveType(ti ast.TypeInfo, allowInferred bool) *types.Type {
	if ti == nil {
		return nil
	}
	if ast.IsPoisonedType(ti) {
		return nil
	}

	switch ti.Status() {
	case ast.Done:
		return ti.Canonical()
	case ast.Running:
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA001RecursiveCycle, ti.GetToken()))
		ti.SetStatus(ast.Done)
		return nil
	}

	ti.SetStatus(ast.Running)

	var canon *types.Type
	switch t := ti.(type) {
	case *ast.IdentifierType:
		canon = a.resolveIdentifierType(t)
	case *ast.PointerType:
		if inner := a.ResolveType(t.Inner, false); inner != nil {
			canon = a.Store.InternPointer(inner)
		}
	case *ast.ArrayType:
		base := a.ResolveType(t.Base, false)
		length, ok := a.evalArrayLength(t.LenExpr)
		if base != nil && ok {
			canon = a.Store.InternArray(base, length)
		}
	case *ast.SubArrayType:
		if base := a.ResolveType(t.Base, false); base != nil {
			canon = a.Store.InternSubArray(base)
		}
	case *ast.VarArrayType:
		if base := a.ResolveType(t.Base, false); base != nil {
			canon = a.Store.InternVarArray(base)
		}
	case *ast.InferredArrayType:
		if !allowInferred {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, t.GetToken()))
			break
		}
		// An inferred array's length is only known once an initializer
		// supplies it (§4.G); until that out-of-scope initializer
		// analysis runs, it shares a sub-array's (pointer, length)
		// structural shape.
		if base := a.ResolveType(t.Base, false); base != nil {
			canon = a.Store.InternSubArray(base)
		}
	case *ast.ExpressionType:
		// `typeof(expr)` defers to the out-of-scope expression analyser
		// (§1); without it this module cannot determine the referenced
		// expression's type.
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, t.GetToken()))
	case *ast.IncArrayType:
		// Never reaches the analyser per §3; rewritten by the parser
		// into incremental-array bookkeeping before analysis.
	}

	ti.SetStatus(ast.Done)
	if canon != nil {
		ti.SetCanonical(canon)
	}
	return canon
}

// resolveIdentifierType looks the name up through the symbol table,
// dereferencing through Define/Typedef aliases (§4.G "Identifier
// resolution dereferences through Define/Typedef aliases"), lazily
// triggering analysis of the referenced declaration if it has not run
// yet (§9 "lazy resolution").
func (a *Analyzer) resolveIdentifierType(t *ast.IdentifierType) *types.Type {
	if t.Builtin {
		return builtinType(t.Name)
	}

	sym, ok := a.Table.Resolve(t.Name)
	if !ok {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, t.GetToken(), t.Name))
		return nil
	}

	for depth := 0; depth < 64; depth++ {
		def, isDefine := sym.Decl.(*ast.DefineDecl)
		if !isDefine || def.IsGenericInstantiation() {
			break
		}
		next, found := a.Table.Resolve(def.AliasName)
		if !found {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, t.GetToken(), def.AliasName))
			return nil
		}
		sym = next
	}

	if sym.Type != nil {
		return sym.Type
	}
	if sym.Decl != nil {
		a.AnalyseDecl(sym.Decl)
		return sym.Type
	}
	return nil
}

func builtinType(name string) *types.Type {
	if it := types.LookupInteger(name); it != nil {
		return it
	}
	switch name {
	case "void":
		return types.VoidType
	case "bool":
		return types.BoolType
	case "float":
		return types.FloatType
	case "double":
		return types.DoubleType
	case "typeid":
		return types.TypeIDType
	case "err":
		return types.ErrBase
	}
	return nil
}

// evalArrayLength analyses a fixed-array length expression: must fold to
// a non-negative constant that fits a signed 64-bit value (§4.G "Array:
// analyse length expression as usize; must be EXPR_CONST, non-negative,
// fit in 64-bit signed").
func (a *Analyzer) evalArrayLength(e ast.Expr) (int64, bool) {
	lit, ok := e.(*ast.IntLiteral)
	if !ok {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, e.GetToken()))
		return 0, false
	}
	if lit.Value < 0 {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, e.GetToken()))
		return 0, false
	}
	return lit.Value, true
}
