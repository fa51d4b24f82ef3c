package ast

import (
	"github.com/mcgru/c3decl/internal/token"
	"github.com/mcgru/c3decl/internal/types"
)

// DeclKind tags the Decl variant (§3 "Decl. Tagged variant over...").
type DeclKind int

const (
	DeclPoisoned DeclKind = iota
	DeclVar
	DeclFunc
	DeclMacro
	DeclStruct
	DeclUnion
	DeclErr
	DeclEnum
	DeclEnumConstant
	DeclTypedef
	DeclDistinct
	DeclInterface
	DeclDefine
	DeclGeneric
	DeclAttribute
	DeclImport
	DeclArrayValue
	DeclCtIf
	DeclCtSwitch
	DeclCtAssert
	DeclLabel
)

// Visibility is the declaration's visibility qualifier (§3, §4.D).
type Visibility int

const (
	Public Visibility = iota
	VisLocal
	VisModule
	VisExtern
)

// VarKind distinguishes the Var decl sub-kinds named in §3.
type VarKind int

const (
	VarConst VarKind = iota
	VarGlobal
	VarLocal
	VarMember
	VarParam
	VarParamVariadic
	VarAlias
)

// Docs holds the recognised doc directives preceding a declaration
// (§4.D "Doc directives"). Unrecognised directives are preserved
// verbatim in Unknown rather than dropped.
type Docs struct {
	Param   map[string]string
	Pure    bool
	Require []string
	Ensure  []string
	Errors  []string // §9 open question: resolved as comma-separated TYPE_IDENT list
	Unknown []string
}

// Attribute is one `@name(arg)` occurrence (§3, §4.D "Attribute
// parsing").
type Attribute struct {
	NameTok       token.Token
	Name          string
	Path          Path
	ArgExpr       Expr
	AlignmentVal  uint64
	HasAlignment  bool
	// CondExpr is the optional `$if (const_expr)` guard supplementing
	// the base grammar (SPEC_FULL §9 supplement: conditional attribute
	// arguments).
	CondExpr Expr
}

// Enabled reports whether a's guard permits it to be applied: a bare
// attribute or one guarded by a literal-true condition is enabled; one
// guarded by a literal-false condition is not. A non-literal guard is
// out of reach of the out-of-scope expression analyser (§1), so it
// defaults to enabled, the same best-effort rule $if and $assert apply
// to a non-literal condition elsewhere in this analyser.
func (a *Attribute) Enabled() bool {
	if a.CondExpr == nil {
		return true
	}
	lit, ok := a.CondExpr.(*BoolLiteral)
	if !ok {
		return true
	}
	return lit.Value
}

// Header is the common fields shared by every Decl variant (§3).
type Header struct {
	Name         string
	NameTok      token.Token
	Span         token.Span
	Visibility   Visibility
	Module       string
	Attributes   []*Attribute
	Docs         *Docs
	Status       ResolveStatus
	ExternalName string
	Alignment    uint64
	HasAlignment bool // true once an explicit `@align(n)` attribute has set Alignment
	Section      string
	CName        string
	IsPacked     bool
	IsOpaque     bool

	// BitOffset supplements the base grammar with the original
	// implementation's narrower @bitstruct member attribute (SPEC_FULL
	// §9 supplement), consulted only when present.
	BitOffset *int

	// Offset is the byte offset computed by the struct/union layout
	// algorithm (§4.H), meaningful only on an aggregate member's Header
	// (a VarMember field or a nested struct/union member).
	Offset uint64

	// Canonical caches the canonical Type this declaration denotes once
	// analysed, for the nominal kinds (struct/union/enum/err/distinct/
	// typedef/interface). Unused on non-type declarations.
	Canonical *types.Type
}

// TypeName satisfies types.NominalDecl so every nominal Decl variant
// can be used as a canonical Type's Decl back-reference without this
// package importing internal/types.
func (h *Header) TypeName() string { return h.Name }

// Decl is the tagged-variant interface every declaration-parser output
// implements.
type Decl interface {
	Kind() DeclKind
	Head() *Header
}

// HasAttribute reports whether name already occurs in h.Attributes,
// returning the prior occurrence for the two-span duplicate-attribute
// diagnostic (§4.D, §7).
func (h *Header) HasAttribute(name string) (*Attribute, bool) {
	for _, a := range h.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// PoisonedDecl is the sentinel "failed to parse/analyse" declaration
// (§7, §9 "Poison sentinels").
type PoisonedDecl struct{ Header }

func (d *PoisonedDecl) Kind() DeclKind { return DeclPoisoned }
func (d *PoisonedDecl) Head() *Header  { return &d.Header }

// NewPoisoned builds a poisoned declaration at tok's position.
func NewPoisoned(tok token.Token) *PoisonedDecl {
	return &PoisonedDecl{Header{NameTok: tok, Status: Done}}
}

// IsPoisoned reports whether d is a poisoned declaration.
func IsPoisoned(d Decl) bool {
	_, ok := d.(*PoisonedDecl)
	return ok
}

// VarDecl covers Const/Global/Local/Member/Param/Param*/Alias (§3).
type VarDecl struct {
	Header
	VarKind  VarKind
	Type     TypeInfo
	Init     Expr
	Failable bool
}

func (d *VarDecl) Kind() DeclKind { return DeclVar }
func (d *VarDecl) Head() *Header  { return &d.Header }

// ImportDecl is a parsed `import a::b::c;` statement.
type ImportDecl struct {
	Header
	ImportPath Path
}

func (d *ImportDecl) Kind() DeclKind { return DeclImport }
func (d *ImportDecl) Head() *Header  { return &d.Header }

// ArrayValueDecl is an incremental-array append: `IDENT += initializer;`
// (§4.D "incremental array", GLOSSARY "Incremental array").
type ArrayValueDecl struct {
	Header
	TargetName string
	Init       Expr
}

func (d *ArrayValueDecl) Kind() DeclKind { return DeclArrayValue }
func (d *ArrayValueDecl) Head() *Header  { return &d.Header }

// LabelDecl is a minimal placeholder for the Label decl variant named
// in §3; labels belong to the out-of-scope statement parser and are
// only ever produced here as an opaque marker so that a `Decl` slice
// can hold one without the declaration parser needing statement-parser
// internals.
type LabelDecl struct{ Header }

func (d *LabelDecl) Kind() DeclKind { return DeclLabel }
func (d *LabelDecl) Head() *Header  { return &d.Header }
