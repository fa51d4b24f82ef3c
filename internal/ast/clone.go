package ast

// CloneDecl returns an independent deep copy of d (§3 "Generic
// instantiation performs a deep structural copy of declarations",
// §4.I "The instantiator deep-copies each source context's imports and
// global_decls"). Every resolve-status field on the clone is reset to
// NotDone and every cached canonical handle is cleared, so the clone
// resolves against its own bound type parameters instead of inheriting
// whatever the source declaration had already resolved to — without
// this, two instantiations of the same generic module would share one
// underlying Decl tree and the second would silently alias the first's
// already-Done results. The poisoned sentinel is not a shared
// singleton the way PoisonedType is, so it is cloned like any other
// declaration rather than returned by identity.
func CloneDecl(d Decl) Decl {
	if d == nil {
		return nil
	}
	switch v := d.(type) {
	case *PoisonedDecl:
		c := &PoisonedDecl{Header: cloneHeader(v.Header)}
		c.Status = Done // poisoned nodes are never re-reported (§7)
		return c
	case *VarDecl:
		return &VarDecl{
			Header:   cloneHeader(v.Header),
			VarKind:  v.VarKind,
			Type:     CloneType(v.Type),
			Init:     CloneExpr(v.Init),
			Failable: v.Failable,
		}
	case *ImportDecl:
		return &ImportDecl{Header: cloneHeader(v.Header), ImportPath: v.ImportPath}
	case *ArrayValueDecl:
		return &ArrayValueDecl{Header: cloneHeader(v.Header), TargetName: v.TargetName, Init: CloneExpr(v.Init)}
	case *LabelDecl:
		return &LabelDecl{Header: cloneHeader(v.Header)}
	case *AggregateDecl:
		c := NewAggregate(v.kind)
		c.Header = cloneHeader(v.Header)
		c.Members = cloneDeclSlice(v.Members)
		c.Size = v.Size
		c.NaturalAlign = v.NaturalAlign
		c.UnionRep = v.UnionRep
		c.IsSubstruct = v.IsSubstruct
		c.IsUnaligned = v.IsUnaligned
		return c
	case *EnumDecl:
		c := &EnumDecl{Header: cloneHeader(v.Header), BaseType: CloneType(v.BaseType), Parameters: cloneParams(v.Parameters)}
		for _, val := range v.Values {
			c.Values = append(c.Values, cloneEnumConstant(val))
		}
		return c
	case *EnumConstantDecl:
		return cloneEnumConstant(v)
	case *FuncDecl:
		return &FuncDecl{
			Header:   cloneHeader(v.Header),
			Return:   CloneType(v.Return),
			Failable: v.Failable,
			RecvType: v.RecvType,
			RecvTok:  v.RecvTok,
			Params:   cloneParams(v.Params),
			Variadic: v.Variadic,
			HasBody:  v.HasBody,
			Mangled:  v.Mangled,
		}
	case *MacroDecl:
		return &MacroDecl{
			Header:   cloneHeader(v.Header),
			Return:   CloneType(v.Return),
			Failable: v.Failable,
			Params:   cloneMacroParams(v.Params),
			HasBody:  v.HasBody,
		}
	case *GenericDecl:
		c := &GenericDecl{Header: cloneHeader(v.Header), Return: CloneType(v.Return), Params: cloneMacroParams(v.Params)}
		for _, cs := range v.Cases {
			c.Cases = append(c.Cases, &GenericCase{Types: cloneTypeSlice(cs.Types), IsDefault: cs.IsDefault, Body: cloneDeclSlice(cs.Body)})
		}
		return c
	case *InterfaceDecl:
		c := &InterfaceDecl{Header: cloneHeader(v.Header)}
		for _, m := range v.Methods {
			c.Methods = append(c.Methods, CloneDecl(m).(*FuncDecl))
		}
		return c
	case *TypedefDecl:
		return &TypedefDecl{
			Header:       cloneHeader(v.Header),
			IsFunc:       v.IsFunc,
			FuncReturn:   CloneType(v.FuncReturn),
			FuncParams:   cloneParams(v.FuncParams),
			FuncVariadic: v.FuncVariadic,
			Wrapped:      CloneType(v.Wrapped),
		}
	case *DistinctDecl:
		return &DistinctDecl{Header: cloneHeader(v.Header), Wrapped: CloneType(v.Wrapped), Inline: v.Inline}
	case *DefineDecl:
		return &DefineDecl{
			Header:       cloneHeader(v.Header),
			AliasPath:    v.AliasPath,
			AliasName:    v.AliasName,
			GenericArgs:  cloneTypeSlice(v.GenericArgs),
			ResolvedName: v.ResolvedName,
		}
	case *AttributeDeclDecl:
		return &AttributeDeclDecl{Header: cloneHeader(v.Header), Domains: append([]string{}, v.Domains...), ParamType: CloneType(v.ParamType)}
	case *CtIfDecl:
		c := &CtIfDecl{Header: cloneHeader(v.Header), Cond: CloneExpr(v.Cond), Then: cloneDeclSlice(v.Then), Else: cloneDeclSlice(v.Else)}
		for _, e := range v.Elifs {
			c.Elifs = append(c.Elifs, &CtElif{Cond: CloneExpr(e.Cond), Body: cloneDeclSlice(e.Body)})
		}
		return c
	case *CtSwitchDecl:
		c := &CtSwitchDecl{Header: cloneHeader(v.Header), Subject: CloneExpr(v.Subject)}
		for _, cs := range v.Cases {
			c.Cases = append(c.Cases, &CtCase{Type: CloneType(cs.Type), IsDefault: cs.IsDefault, Body: cloneDeclSlice(cs.Body)})
		}
		return c
	case *CtAssertDecl:
		return &CtAssertDecl{Header: cloneHeader(v.Header), Cond: CloneExpr(v.Cond)}
	default:
		return d
	}
}

// cloneDeclSlice clones every element of decls independently.
func cloneDeclSlice(decls []Decl) []Decl {
	if decls == nil {
		return nil
	}
	out := make([]Decl, len(decls))
	for i, d := range decls {
		out[i] = CloneDecl(d)
	}
	return out
}

// cloneHeader deep-copies h's attribute/docs lists and resets the
// resolve-status and layout fields a fresh, not-yet-analysed clone
// must not inherit from the source declaration.
func cloneHeader(h Header) Header {
	c := h
	c.Attributes = cloneAttributes(h.Attributes)
	c.Docs = cloneDocs(h.Docs)
	c.Status = NotDone
	c.Canonical = nil
	c.Offset = 0
	if h.BitOffset != nil {
		bo := *h.BitOffset
		c.BitOffset = &bo
	}
	return c
}

func cloneAttributes(attrs []*Attribute) []*Attribute {
	if attrs == nil {
		return nil
	}
	out := make([]*Attribute, len(attrs))
	for i, a := range attrs {
		c := *a
		c.ArgExpr = CloneExpr(a.ArgExpr)
		c.CondExpr = CloneExpr(a.CondExpr)
		out[i] = &c
	}
	return out
}

func cloneDocs(d *Docs) *Docs {
	if d == nil {
		return nil
	}
	c := &Docs{Pure: d.Pure}
	if d.Param != nil {
		c.Param = make(map[string]string, len(d.Param))
		for k, v := range d.Param {
			c.Param[k] = v
		}
	}
	c.Require = append([]string(nil), d.Require...)
	c.Ensure = append([]string(nil), d.Ensure...)
	c.Errors = append([]string(nil), d.Errors...)
	c.Unknown = append([]string(nil), d.Unknown...)
	return c
}

func cloneParams(params []*Param) []*Param {
	if params == nil {
		return nil
	}
	out := make([]*Param, len(params))
	for i, p := range params {
		out[i] = &Param{Name: p.Name, NameTok: p.NameTok, Type: CloneType(p.Type), Default: CloneExpr(p.Default), IsVariadic: p.IsVariadic}
	}
	return out
}

func cloneMacroParams(params []*MacroParam) []*MacroParam {
	if params == nil {
		return nil
	}
	out := make([]*MacroParam, len(params))
	for i, p := range params {
		out[i] = &MacroParam{Sigil: p.Sigil, Name: p.Name, NameTok: p.NameTok, Type: CloneType(p.Type)}
	}
	return out
}

func cloneEnumConstant(v *EnumConstantDecl) *EnumConstantDecl {
	return &EnumConstantDecl{
		Header:      cloneHeader(v.Header),
		Ordinal:     v.Ordinal,
		Value:       CloneExpr(v.Value),
		Args:        cloneExprSlice(v.Args),
		ResolvedInt: v.ResolvedInt,
	}
}

// CloneType returns an independent deep copy of ti, resetting its
// resolve-status and canonical handle so it resolves fresh against the
// type parameter bindings of its new owning module. The poisoned
// sentinel is returned unchanged, by identity, since every caller
// compares it by pointer (IsPoisonedType) and it is explicitly meant to
// be shared (§7 "Poisoned nodes are never re-reported").
func CloneType(ti TypeInfo) TypeInfo {
	if ti == nil {
		return nil
	}
	if IsPoisonedType(ti) {
		return ti
	}
	switch t := ti.(type) {
	case *IdentifierType:
		return &IdentifierType{TypeHeader: cloneTypeHeader(t.TypeHeader), Path: t.Path, Name: t.Name, Virtual: t.Virtual, Builtin: t.Builtin}
	case *PointerType:
		return &PointerType{TypeHeader: cloneTypeHeader(t.TypeHeader), Inner: CloneType(t.Inner)}
	case *ArrayType:
		return &ArrayType{TypeHeader: cloneTypeHeader(t.TypeHeader), Base: CloneType(t.Base), LenExpr: CloneExpr(t.LenExpr)}
	case *SubArrayType:
		return &SubArrayType{TypeHeader: cloneTypeHeader(t.TypeHeader), Base: CloneType(t.Base)}
	case *VarArrayType:
		return &VarArrayType{TypeHeader: cloneTypeHeader(t.TypeHeader), Base: CloneType(t.Base)}
	case *InferredArrayType:
		return &InferredArrayType{TypeHeader: cloneTypeHeader(t.TypeHeader), Base: CloneType(t.Base)}
	case *IncArrayType:
		return &IncArrayType{TypeHeader: cloneTypeHeader(t.TypeHeader), Base: CloneType(t.Base)}
	case *ExpressionType:
		return &ExpressionType{TypeHeader: cloneTypeHeader(t.TypeHeader), Expr: CloneExpr(t.Expr)}
	default:
		return ti
	}
}

func cloneTypeHeader(h TypeHeader) TypeHeader {
	return TypeHeader{Tok: h.Tok, ResStatus: NotDone}
}

func cloneTypeSlice(tis []TypeInfo) []TypeInfo {
	if tis == nil {
		return nil
	}
	out := make([]TypeInfo, len(tis))
	for i, t := range tis {
		out[i] = CloneType(t)
	}
	return out
}

// CloneExpr returns an independent deep copy of e. The expression AST
// carries no resolve-status of its own (§1: expression analysis is
// out of scope here), so this exists purely to keep a cloned
// declaration from sharing Expr nodes with its source.
func CloneExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case *IntLiteral:
		c := *v
		return &c
	case *StringLiteral:
		c := *v
		return &c
	case *BoolLiteral:
		c := *v
		return &c
	case *IdentExpr:
		c := *v
		return &c
	case *CallExpr:
		return &CallExpr{Tok: v.Tok, Args: cloneExprSlice(v.Args)}
	default:
		return e
	}
}

func cloneExprSlice(exprs []Expr) []Expr {
	if exprs == nil {
		return nil
	}
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = CloneExpr(e)
	}
	return out
}
