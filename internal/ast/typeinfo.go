package ast

import (
	"github.com/mcgru/c3decl/internal/token"
	"github.com/mcgru/c3decl/internal/types"
)

// TypeInfo is the unresolved syntactic type variant from the data
// model (§3). Every variant carries a resolve_status and, once Done, a
// canonical handle (§4.G).
type TypeInfo interface {
	typeInfoNode()
	Status() ResolveStatus
	SetStatus(ResolveStatus)
	Canonical() *types.Type
	SetCanonical(*types.Type)
	GetToken() token.Token
}

// TypeHeader is embedded by every TypeInfo variant. It is exported (and
// its fields exported) so the parser package can build TypeInfo values
// directly as struct literals; the resolve-status/canonical-handle
// invariant (SetCanonical always marks Done) is still only enforced
// through the methods below, which every caller outside this package
// uses instead of writing the fields directly.
type TypeHeader struct {
	Tok       token.Token
	ResStatus ResolveStatus
	Canon     *types.Type
}

func (h *TypeHeader) Status() ResolveStatus     { return h.ResStatus }
func (h *TypeHeader) SetStatus(s ResolveStatus) { h.ResStatus = s }
func (h *TypeHeader) Canonical() *types.Type    { return h.Canon }
func (h *TypeHeader) SetCanonical(t *types.Type) {
	h.Canon = t
	h.ResStatus = Done
}
func (h *TypeHeader) GetToken() token.Token { return h.Tok }

// IdentifierType is `path? name` possibly qualified as virtual
// (pointer-to-interface), or a built-in base-type keyword.
type IdentifierType struct {
	TypeHeader
	Path    Path
	Name    string
	Virtual bool
	Builtin bool // true when Name is a built-in keyword (void, int, ...)
}

func (t *IdentifierType) typeInfoNode() {}

// PointerType is `inner*`.
type PointerType struct {
	TypeHeader
	Inner TypeInfo
}

func (t *PointerType) typeInfoNode() {}

// ArrayType is `base[len_expr]`, a fixed-length array.
type ArrayType struct {
	TypeHeader
	Base    TypeInfo
	LenExpr Expr
}

func (t *ArrayType) typeInfoNode() {}

// SubArrayType is `base[]`, a slice.
type SubArrayType struct {
	TypeHeader
	Base TypeInfo
}

func (t *SubArrayType) typeInfoNode() {}

// VarArrayType is `base[*]`, a variable-length array.
type VarArrayType struct {
	TypeHeader
	Base TypeInfo
}

func (t *VarArrayType) typeInfoNode() {}

// InferredArrayType is `base[?]`, valid only where an initializer
// supplies the length.
type InferredArrayType struct {
	TypeHeader
	Base TypeInfo
}

func (t *InferredArrayType) typeInfoNode() {}

// IncArrayType is `base[+]`, parser-only: it never reaches the
// analyser (§3). It is rewritten into incremental-array bookkeeping by
// the declaration parser before any analysis occurs.
type IncArrayType struct {
	TypeHeader
	Base TypeInfo
}

func (t *IncArrayType) typeInfoNode() {}

// ExpressionType is a `typeof(expr)`-style type.
type ExpressionType struct {
	TypeHeader
	Expr Expr
}

func (t *ExpressionType) typeInfoNode() {}

// poisoned is the distinguished sentinel for a syntactically invalid
// type expression (§4.C). It is a package-level singleton so every
// caller observing it can compare by identity and skip re-reporting
// (§7 "Poisoned nodes are never re-reported").
var poisoned = &IdentifierType{Name: "<poisoned>"}

func init() {
	poisoned.ResStatus = Done
}

// PoisonedType returns the sentinel poisoned TypeInfo.
func PoisonedType() TypeInfo { return poisoned }

// IsPoisonedType reports whether ti is the poisoned sentinel.
func IsPoisonedType(ti TypeInfo) bool { return ti == TypeInfo(poisoned) }
