package ast

// TypedefDecl is `define TYPE '=' (func signature | type)` when the
// right-hand side is a type or function signature (§4.D "define"). A
// right-hand side followed by `<...>` generic arguments is parsed as a
// DefineDecl instead.
type TypedefDecl struct {
	Header
	IsFunc      bool
	FuncReturn  TypeInfo
	FuncParams  []*Param
	FuncVariadic bool
	Wrapped     TypeInfo // set when !IsFunc
}

func (d *TypedefDecl) Kind() DeclKind { return DeclTypedef }
func (d *TypedefDecl) Head() *Header  { return &d.Header }

// DistinctDecl is `define TYPE '=' distinct inline? type` (§4.D "define", §4.H
// "Typedef/Distinct"). Disallowed over virtual, error, error-union,
// void, typeid (§4.H).
type DistinctDecl struct {
	Header
	Wrapped TypeInfo
	Inline  bool // `distinct inline TYPE = ...`: the wrapped type's methods are promoted
}

func (d *DistinctDecl) Kind() DeclKind { return DeclDistinct }
func (d *DistinctDecl) Head() *Header  { return &d.Header }

// DefineDecl is either a type alias or an identifier alias (§4.D
// "define"):
//   - type alias:       handled by TypedefDecl/DistinctDecl above, except
//     `define TYPE '=' path? TYPE generic_params`, which is a DefineDecl
//   - identifier alias: `define (IDENT|CONST_IDENT) '=' path? identifier generic_params?`
//
// A non-empty GenericArgs marks a parameterised instantiation
// (DEFINE_*_GENERIC in the original), which drives the Generic
// Instantiator (§4.I) before this decl is rebound to the resulting
// concrete symbol.
type DefineDecl struct {
	Header
	AliasPath   Path
	AliasName   string
	GenericArgs []TypeInfo
	ResolvedName string // filled in once the generic instantiation (if any) resolves
}

func (d *DefineDecl) Kind() DeclKind { return DeclDefine }
func (d *DefineDecl) Head() *Header  { return &d.Header }

func (d *DefineDecl) IsGenericInstantiation() bool { return len(d.GenericArgs) > 0 }

// AttributeDeclDecl is `attribute domain_list IDENT params? ';'`
// (§4.D "attribute"): a user-defined attribute declaration, distinct
// from an Attribute usage.
type AttributeDeclDecl struct {
	Header
	Domains   []string
	ParamType TypeInfo // optional parameter type
}

func (d *AttributeDeclDecl) Kind() DeclKind { return DeclAttribute }
func (d *AttributeDeclDecl) Head() *Header  { return &d.Header }
