// Package types implements the canonical type store described in the
// data model: structural interning for pointers, arrays, and function
// signatures, nominal identity (by declaration identity) for
// struct/union/enum/err/distinct/typedef. Grounded on the shape of the
// teacher's internal/typesystem/types.go (a Type interface with a
// central interning table and cycle-safe substitution) but reworked
// from Hindley-Milner-style unification to the nominal/structural split
// this module's data model requires.
package types

// Kind classifies a canonical Type.
type Kind int

const (
	Invalid Kind = iota
	Void
	Bool
	Integer
	Float
	Double
	TypeID
	Pointer
	Array
	SubArray
	VarArray
	Func
	Struct
	Union
	Enum
	Err
	Distinct
	Typedef
	Interface
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Bool:
		return "bool"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Double:
		return "double"
	case TypeID:
		return "typeid"
	case Pointer:
		return "pointer"
	case Array:
		return "array"
	case SubArray:
		return "subarray"
	case VarArray:
		return "vararray"
	case Func:
		return "func"
	case Struct:
		return "struct"
	case Union:
		return "union"
	case Enum:
		return "enum"
	case Err:
		return "err"
	case Distinct:
		return "distinct"
	case Typedef:
		return "typedef"
	case Interface:
		return "interface"
	}
	return "invalid"
}

// NominalDecl is the narrow view of a declaration a canonical Type
// needs to carry a back-reference to one of the nominal kinds
// (struct/union/enum/err/distinct/typedef/interface). Declared here
// rather than importing the ast package, so that ast can depend on
// types (for TypeInfo.Canonical) without a cycle: ast's declaration
// structs satisfy this interface structurally.
type NominalDecl interface {
	TypeName() string
}

// FuncSig describes a function type's structural shape for §4.H's
// "function types are interned by signature structural equality".
type FuncSig struct {
	Params   []*Type
	Return   *Type
	Variadic bool
}

// Type is the canonical, interned type handle a TypeInfo resolves to.
// Canonical points to itself for every entry actually stored in the
// interning tables; Decl is set only for the nominal kinds.
type Type struct {
	id int

	Kind         Kind
	Size         uint64
	AbiAlignment uint64
	Canonical    *Type

	// Integer/float payload.
	Signed   bool
	BitWidth int

	// Pointer/array payload.
	Elem *Type
	Len  int64 // -1 when not a fixed-length array

	// Func payload.
	Sig *FuncSig

	// Nominal payload (struct/union/enum/err/distinct/typedef/interface).
	Decl NominalDecl
}

// ID returns a process-unique identifier for this canonical entry,
// stable for the entry's lifetime. Two Types denote the same canonical
// type iff their ID (equivalently their pointer) is identical (§8.5
// "type-interning uniqueness").
func (t *Type) ID() int { return t.id }

var nextID int

func newType(k Kind) *Type {
	nextID++
	t := &Type{id: nextID, Kind: k}
	t.Canonical = t
	return t
}

// Builtin singletons. These are created once per process (package
// init), matching the teacher's practice of pre-registering well-known
// base types rather than re-interning them per use.
var (
	VoidType   = builtin(Void, 0, 1)
	BoolType   = builtin(Bool, 1, 1)
	FloatType  = builtin(Float, 4, 4)
	DoubleType = builtin(Double, 8, 8)
	TypeIDType = builtin(TypeID, 8, 8)
	ErrBase    = builtin(Err, 8, 8)
)

func builtin(k Kind, size, align uint64) *Type {
	t := newType(k)
	t.Size, t.AbiAlignment = size, align
	return t
}

// IntegerKind describes one of the built-in signed/unsigned integer
// widths recognised by parse_base_type (§4.C).
type IntegerKind struct {
	Name     string
	BitWidth int
	Signed   bool
}

var integerKinds = map[string]IntegerKind{
	"ichar":   {"ichar", 8, true},
	"char":    {"char", 8, false},
	"short":   {"short", 16, true},
	"ushort":  {"ushort", 16, false},
	"int":     {"int", 32, true},
	"uint":    {"uint", 32, false},
	"long":    {"long", 64, true},
	"ulong":   {"ulong", 64, false},
	"int128":  {"int128", 128, true},
	"uint128": {"uint128", 128, false},
	"iptr":    {"iptr", 64, true},
	"uptr":    {"uptr", 64, false},
	"isz":     {"isz", 64, true},
	"usz":     {"usz", 64, false},
}

var integerTypes = map[string]*Type{}

func init() {
	for name, ik := range integerKinds {
		t := newType(Integer)
		t.Signed = ik.Signed
		t.BitWidth = ik.BitWidth
		t.Size = uint64(ik.BitWidth) / 8
		t.AbiAlignment = t.Size
		integerTypes[name] = t
	}
}

// LookupInteger returns the canonical Type for a built-in integer
// keyword, or nil if name does not name one.
func LookupInteger(name string) *Type {
	return integerTypes[name]
}

// PointerSize is the ABI pointer width used for uptr/iptr and for the
// error-type cap (§8.6, §4.H "Error type").
const PointerSize = 8

// UptrType is the canonical unsigned pointer-sized integer type, used
// as the error-type cap target.
var UptrType = integerTypes["uptr"]
