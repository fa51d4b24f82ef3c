package analyzer

import (
	"fmt"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/config"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/parser"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// define records the canonical type/kind resolved for name. Top-level
// names are pre-registered into a.Table (Type nil, Decl set) by the
// module registry before analysis begins, so this normally just fills
// in the Symbol's Type field in place — duplicate-name detection
// happens once, at registration time, not here. A name not found
// pre-registered (an inner-scope or synthetic name) is defined fresh.
func (a *Analyzer) define(name string, kind symbols.Kind, typ *types.Type, decl ast.Decl) {
	if name == "" {
		return
	}
	if sym, ok := a.Table.Get(name); ok {
		sym.Type = typ
		sym.Kind = kind
		if sym.Decl == nil {
			sym.Decl = decl
		}
		return
	}
	a.Table.Define(&symbols.Symbol{Name: name, Kind: kind, Type: typ, Decl: decl})
}

// AnalyseDecl implements analyse_decl(decl) (§4.H): idempotent on Done,
// reports a cycle on Running, otherwise dispatches by concrete Decl kind
// and marks the header Done+poisoned on failure so a containing
// aggregate can keep analysing its remaining members (§7).
func (a *Analyzer) AnalyseDecl(decl ast.Decl) bool {
	if decl == nil || ast.IsPoisoned(decl) {
		return false
	}
	h := decl.Head()
	switch h.Status {
	case ast.Done:
		return true // already analysed; any diagnostic was reported the first time (§7)
	case ast.Running:
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA001RecursiveCycle, h.NameTok))
		h.Status = ast.Done
		return false
	}
	h.Status = ast.Running

	ok := true
	switch d := decl.(type) {
	case *ast.AggregateDecl:
		ok = a.analyseAggregateDecl(d)
	case *ast.EnumDecl:
		ok = a.analyseEnum(d)
	case *ast.FuncDecl:
		ok = a.analyseFunc(d)
	case *ast.MacroDecl:
		ok = a.analyseMacro(d)
	case *ast.GenericDecl:
		ok = a.analyseGeneric(d)
	case *ast.TypedefDecl:
		ok = a.analyseTypedef(d)
	case *ast.DistinctDecl:
		ok = a.analyseDistinct(d)
	case *ast.DefineDecl:
		ok = a.analyseDefine(d)
	case *ast.VarDecl:
		ok = a.analyseVar(d)
	case *ast.InterfaceDecl:
		ok = a.analyseInterface(d)
	case *ast.AttributeDeclDecl:
		ok = true
	case *ast.CtIfDecl:
		ok = a.analyseCtIf(d)
	case *ast.CtSwitchDecl:
		ok = a.analyseCtSwitch(d)
	case *ast.CtAssertDecl:
		ok = a.analyseCtAssert(d)
	case *ast.ImportDecl, *ast.ArrayValueDecl, *ast.LabelDecl:
		ok = true
	default:
		ok = true
	}

	h.Status = ast.Done
	return ok
}

// analyseAttributes runs ValidateAttributeDomain over every attribute on
// decl, enforcing the inline/noinline mutual exclusion (§4.H "Attribute
// application") as an additional pass-specific check.
func (a *Analyzer) analyseAttributes(h *ast.Header, domain config.Domain) bool {
	ok := true
	hasInline, hasNoinline := false, false
	for _, attr := range h.Attributes {
		// A $if-guarded attribute whose condition folds to a literal
		// false (SPEC_FULL §9 supplement) is neither validated nor
		// applied, as though it were never written.
		if !attr.Enabled() {
			continue
		}
		if !parser.ValidateAttributeDomain(a.Diags, attr, domain, a.InGenericModule) {
			ok = false
		}
		switch attr.Name {
		case "inline":
			hasInline = true
		case "noinline":
			hasNoinline = true
		}
	}
	if hasInline && hasNoinline {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA012MutuallyExclusive, h.NameTok))
		ok = false
	}
	return ok
}

// analyseAggregateDecl dispatches struct/union/err layout (§4.H) and
// registers the nominal canonical type.
func (a *Analyzer) analyseAggregateDecl(d *ast.AggregateDecl) bool {
	domain := config.DomainStruct
	if d.Kind() == ast.DeclUnion {
		domain = config.DomainUnion
	} else if d.Kind() == ast.DeclErr {
		domain = config.DomainError
	}
	ok := a.analyseAttributes(&d.Header, domain)

	if d.Kind() == ast.DeclErr {
		a.analyseError(d)
	} else {
		a.analyseAggregateLayout(d)
	}

	kind := types.Struct
	if d.Kind() == ast.DeclUnion {
		kind = types.Union
	} else if d.Kind() == ast.DeclErr {
		kind = types.Err
	}
	ct := a.Store.NewNominal(kind, &d.Header)
	ct.Size, ct.AbiAlignment = d.Size, d.Alignment
	d.Canonical = ct
	a.define(d.Name, symbols.KindType, ct, d)
	return ok
}

// analyseEnum implements §4.H "Enum": resolve the base type (must be an
// integer), then walk constants assigning either the explicit constant
// value or prev+1 starting at 0.
func (a *Analyzer) analyseEnum(d *ast.EnumDecl) bool {
	ok := a.analyseAttributes(&d.Header, config.DomainEnum)

	base := types.LookupInteger("int")
	if d.BaseType != nil {
		resolved := a.ResolveType(d.BaseType, false)
		if resolved == nil || resolved.Kind != types.Integer {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA002NotInteger, d.NameTok, kindName(resolved)))
			ok = false
		} else {
			base = resolved
		}
	}

	var prev int64 = -1
	for _, c := range d.Values {
		if c.Status == ast.Done {
			continue // already poisoned as a duplicate name by the parser (§4.D)
		}
		if c.Value != nil {
			if lit, isInt := c.Value.(*ast.IntLiteral); isInt {
				c.ResolvedInt = lit.Value
			} else {
				a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, c.Value.GetToken()))
				ok = false
				c.ResolvedInt = prev + 1
			}
		} else {
			c.ResolvedInt = prev + 1
		}
		prev = c.ResolvedInt
		c.Status = ast.Done
	}

	ct := a.Store.NewNominal(types.Enum, &d.Header)
	ct.Size, ct.AbiAlignment = base.Size, base.AbiAlignment
	d.Canonical = ct
	a.define(d.Name, symbols.KindType, ct, d)
	return ok
}

func kindName(t *types.Type) string {
	if t == nil {
		return "<unresolved>"
	}
	return t.Kind.String()
}

// analyseFunc implements §4.H "Function signature" and "Method":
// resolves the return type and each parameter, converts a variadic
// parameter's type to a sub-array, enforces MAX_PARAMS and parameter
// name uniqueness, and — for a method — mangles the external name and
// rejects a duplicate method on the same parent.
func (a *Analyzer) analyseFunc(d *ast.FuncDecl) bool {
	ok := a.analyseAttributes(&d.Header, config.DomainFunc)

	retType := a.ResolveType(d.Return, false)
	if retType == nil {
		retType = types.VoidType
	}

	scratch := map[string]bool{}
	var paramTypes []*types.Type
	for i, p := range d.Params {
		pt := a.ResolveType(p.Type, false)
		if pt == nil {
			pt = types.VoidType // unresolved parameter type; already diagnosed by ResolveType
		}
		if i == len(d.Params)-1 && d.Variadic {
			pt = a.Store.InternSubArray(pt)
		}
		if p.Default != nil && !ast.IsConst(p.Default) {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, p.Default.GetToken()))
			ok = false
		}
		if scratch[p.Name] {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA004DuplicateMember, p.NameTok, p.Name))
			ok = false
		} else {
			scratch[p.Name] = true
		}
		paramTypes = append(paramTypes, pt)
	}
	if len(d.Params) > config.MaxParams {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA006TooManyParams, d.Params[config.MaxParams].NameTok, fmt.Sprintf("%d", config.MaxParams)))
		ok = false
	}

	sigType := a.Store.InternFunc(&types.FuncSig{Params: paramTypes, Return: retType, Variadic: d.Variadic})
	d.SigType = sigType

	if d.IsMethod() {
		ok = a.analyseMethod(d) && ok
	} else {
		a.define(d.Name, symbols.KindFunc, sigType, d)
	}
	return ok
}

// analyseMethod implements §4.H "Method": the parent type must admit
// sub-elements (struct, union, enum, error, distinct); the external
// name mangles as "parent.name" (module-private) or "parent__name"
// (public); a duplicate method name on the same parent is rejected.
func (a *Analyzer) analyseMethod(d *ast.FuncDecl) bool {
	parentSym, ok := a.Table.Resolve(d.RecvType)
	if !ok {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, d.RecvTok, d.RecvType))
		return false
	}
	if parentSym.Type == nil {
		a.AnalyseDecl(parentSym.Decl)
	}
	if parentSym.Type != nil {
		switch parentSym.Type.Kind {
		case types.Struct, types.Union, types.Enum, types.Err, types.Distinct:
		default:
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA007BadAttributeDomain, d.RecvTok, "a method receiver", parentSym.Type.Kind.String()))
			return false
		}
	}

	key := d.RecvType + "." + d.Name
	if prior, dup := a.methodNames[key]; dup {
		a.Diags.Add(diagnostics.NewDuplicate(diagnostics.ErrA005DuplicateMethod, diagnostics.PhaseAnalyzer, d.NameTok, prior.Head().NameTok, d.Name))
		return false
	}
	a.methodNames[key] = d

	if d.Visibility == ast.VisModule || d.Visibility == ast.VisLocal {
		d.Mangled = d.RecvType + "." + d.Name
	} else {
		d.Mangled = d.RecvType + "__" + d.Name
	}
	return true
}

// analyseMacro resolves a macro's explicit parameter/return types where
// present; the macro body itself is an out-of-scope statement-parser
// concern (§1), so this is intentionally shallow.
func (a *Analyzer) analyseMacro(d *ast.MacroDecl) bool {
	if d.Return != nil {
		a.ResolveType(d.Return, false)
	}
	for _, p := range d.Params {
		if p.Type != nil {
			a.ResolveType(p.Type, false)
		}
	}
	a.define(d.Name, symbols.KindFunc, nil, d)
	return true
}

// analyseGeneric implements §4.H "Generic function": resolves the
// optional return type and requires at least one parameter; each case
// must be a type-list matching the parameter count, or exactly one
// default.
func (a *Analyzer) analyseGeneric(d *ast.GenericDecl) bool {
	if d.Return != nil {
		a.ResolveType(d.Return, false)
	}
	ok := true
	if len(d.Params) == 0 {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, d.NameTok))
		ok = false
	}
	defaults := 0
	for _, c := range d.Cases {
		if c.IsDefault {
			defaults++
			continue
		}
		if len(c.Types) != len(d.Params) {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA006TooManyParams, d.NameTok, fmt.Sprintf("%d", len(d.Params))))
			ok = false
		}
		for _, t := range c.Types {
			a.ResolveType(t, false)
		}
	}
	if defaults > 1 {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA004DuplicateMember, d.NameTok, "$default"))
		ok = false
	}
	a.define(d.Name, symbols.KindFunc, nil, d)
	return ok
}

// analyseTypedef implements §4.H "Typedef/Distinct" for the `is_func`
// branch (analyse the function signature and set canonical to the
// interned function type) and the plain-wrap branch.
func (a *Analyzer) analyseTypedef(d *ast.TypedefDecl) bool {
	ok := a.analyseAttributes(&d.Header, config.DomainTypedef)
	if d.IsFunc {
		retType := a.ResolveType(d.FuncReturn, false)
		var paramTypes []*types.Type
		for _, p := range d.FuncParams {
			paramTypes = append(paramTypes, a.ResolveType(p.Type, false))
		}
		sig := a.Store.InternFunc(&types.FuncSig{Params: paramTypes, Return: retType, Variadic: d.FuncVariadic})
		ct := a.Store.NewNominal(types.Typedef, &d.Header)
		ct.Size, ct.AbiAlignment = sig.Size, sig.AbiAlignment
		ct.Elem = sig
		d.Canonical = ct
		a.define(d.Name, symbols.KindType, ct, d)
		return ok
	}
	wrapped := a.ResolveType(d.Wrapped, false)
	ct := a.Store.NewNominal(types.Typedef, &d.Header)
	if wrapped != nil {
		ct.Size, ct.AbiAlignment = wrapped.Size, wrapped.AbiAlignment
		ct.Elem = wrapped
	}
	d.Canonical = ct
	a.define(d.Name, symbols.KindType, ct, d)
	return ok
}

// analyseDistinct implements §4.H "Distinct is disallowed over: virtual,
// error, error-union, void, typeid."
func (a *Analyzer) analyseDistinct(d *ast.DistinctDecl) bool {
	ok := a.analyseAttributes(&d.Header, config.DomainTypedef)
	wrapped := a.ResolveType(d.Wrapped, false)
	if wrapped != nil {
		switch wrapped.Kind {
		case types.Err, types.Void, types.TypeID:
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA010DistinctDisallowed, d.NameTok, wrapped.Kind.String()))
			ok = false
		}
		if id, isIdent := d.Wrapped.(*ast.IdentifierType); isIdent && id.Virtual {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA010DistinctDisallowed, d.NameTok, "virtual"))
			ok = false
		}
	}
	ct := a.Store.NewNominal(types.Distinct, &d.Header)
	if wrapped != nil {
		ct.Size, ct.AbiAlignment = wrapped.Size, wrapped.AbiAlignment
		ct.Elem = wrapped
	}
	d.Canonical = ct
	a.define(d.Name, symbols.KindType, ct, d)
	return ok
}

// analyseDefine implements §4.H "Define (alias)": a plain identifier
// alias resolves the referenced symbol; a parameterised define
// instantiates a generic module (§4.I) and rebinds this decl to the
// resulting concrete symbol.
func (a *Analyzer) analyseDefine(d *ast.DefineDecl) bool {
	if d.IsGenericInstantiation() {
		mangled, ok := a.Instantiator.Instantiate(d)
		d.ResolvedName = mangled
		// Instantiate already rebinds d to the concrete symbol its
		// AliasName resolves to inside the generated module (S6: "IntN
		// resolves to int") — nothing left to define here.
		return ok
	}
	sym, ok := a.Table.Resolve(d.AliasName)
	if !ok {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, d.NameTok, d.AliasName))
		return false
	}
	if sym.Type == nil && sym.Decl != nil {
		a.AnalyseDecl(sym.Decl)
	}
	d.ResolvedName = d.AliasName
	a.define(d.Name, sym.Kind, sym.Type, d)
	return true
}

// analyseVar resolves a global/const declaration's type and validates
// its attributes against the var/const domain.
func (a *Analyzer) analyseVar(d *ast.VarDecl) bool {
	domain := config.DomainVar
	if d.VarKind == ast.VarConst {
		domain = config.DomainConst
	} else if d.VarKind == ast.VarMember {
		domain = config.DomainMember
	}
	ok := a.analyseAttributes(&d.Header, domain)
	var vt *types.Type
	if d.Type != nil {
		vt = a.ResolveType(d.Type, true)
	}
	if d.Init != nil && !ast.IsConst(d.Init) {
		if _, isIdent := d.Init.(*ast.IdentExpr); !isIdent {
			if _, isCall := d.Init.(*ast.CallExpr); !isCall {
				a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA003NotConstExpr, d.Init.GetToken()))
				ok = false
			}
		}
	}
	if d.VarKind != ast.VarMember && d.VarKind != ast.VarParam {
		a.define(d.Name, symbols.KindValue, vt, d)
	}
	return ok
}

// analyseInterface resolves the DECL_INTERFACE open question (§9): an
// interface method is a signature only, so a body, a default-valued
// parameter, or a variadic parameter are all rejected, even though
// analyseFunc would otherwise accept any of them on a free function.
func (a *Analyzer) analyseInterface(d *ast.InterfaceDecl) bool {
	ok := a.analyseAttributes(&d.Header, config.DomainTypedef)
	for _, m := range d.Methods {
		if !a.analyseFunc(m) {
			ok = false
		}
		if !a.checkInterfaceMethodShape(m) {
			ok = false
		}
	}
	ct := a.Store.NewNominal(types.Interface, &d.Header)
	ct.Size, ct.AbiAlignment = types.PointerSize*2, types.PointerSize
	d.Canonical = ct
	a.define(d.Name, symbols.KindType, ct, d)
	return ok
}

func (a *Analyzer) checkInterfaceMethodShape(m *ast.FuncDecl) bool {
	ok := true
	if m.HasBody {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA014InterfaceMethod, m.NameTok, m.Name, "a body"))
		ok = false
	}
	if m.Variadic {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA014InterfaceMethod, m.NameTok, m.Name, "a variadic parameter"))
		ok = false
	}
	for _, p := range m.Params {
		if p.Default != nil {
			a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA014InterfaceMethod, m.NameTok, m.Name, "a default-valued parameter"))
			ok = false
			break
		}
	}
	return ok
}

// analyseCtIf is a best-effort evaluation of `$if`: only a literal
// boolean condition can be decided without the out-of-scope expression
// analyser (§1), in which case the chosen branch's declarations are
// analysed (a literal true selects Then; a literal false selects Else
// when there are no `$elif` arms). Otherwise Then, every `$elif` body,
// and Else are all analysed so their declarations still reach the
// symbol table (§4.E).
func (a *Analyzer) analyseCtIf(d *ast.CtIfDecl) bool {
	if lit, isBool := d.Cond.(*ast.BoolLiteral); isBool && (lit.Value || len(d.Elifs) == 0) {
		branch := d.Else
		if lit.Value {
			branch = d.Then
		}
		return a.analyseAll(branch)
	}
	ok := a.analyseAll(d.Then)
	for _, elif := range d.Elifs {
		if !a.analyseAll(elif.Body) {
			ok = false
		}
	}
	if !a.analyseAll(d.Else) {
		ok = false
	}
	return ok
}

func (a *Analyzer) analyseCtSwitch(d *ast.CtSwitchDecl) bool {
	ok := true
	for _, c := range d.Cases {
		if !a.analyseAll(c.Body) {
			ok = false
		}
	}
	return ok
}

func (a *Analyzer) analyseCtAssert(d *ast.CtAssertDecl) bool {
	if d.Cond == nil {
		return false
	}
	if lit, isBool := d.Cond.(*ast.BoolLiteral); isBool {
		return lit.Value
	}
	return true // non-literal conditions defer to the out-of-scope expression analyser
}

func (a *Analyzer) analyseAll(decls []ast.Decl) bool {
	ok := true
	for _, d := range decls {
		if !a.AnalyseDecl(d) {
			ok = false
		}
	}
	return ok
}
