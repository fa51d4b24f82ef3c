package config

// AttributeArgKind describes what an attribute's argument must look
// like, if it takes one at all.
type AttributeArgKind int

const (
	ArgNone AttributeArgKind = iota
	ArgStringConst
	ArgAlignValue
	// ArgIntConst accepts any non-negative integer constant, unlike
	// ArgAlignValue which additionally demands a power of two
	// (@bitstruct's bit offset has no such alignment constraint).
	ArgIntConst
)

// Domain is one of the declaration kinds an attribute may attach to,
// per the attribute/domain table in §4.H.
type Domain string

const (
	DomainFunc    Domain = "func"
	DomainVar     Domain = "var"
	DomainConst   Domain = "const"
	DomainEnum    Domain = "enum"
	DomainStruct  Domain = "struct"
	DomainUnion   Domain = "union"
	DomainTypedef Domain = "typedef"
	DomainError   Domain = "error"
	DomainMember  Domain = "member"
)

// AttributeSpec is one row of the §4.H attribute table.
type AttributeSpec struct {
	Name    string
	Domains []Domain
	Arg     AttributeArgKind
	// GenericModuleForbidden marks attributes rejected inside generic
	// modules (cname, section per §4.H).
	GenericModuleForbidden bool
}

func (s AttributeSpec) AllowsDomain(d Domain) bool {
	for _, candidate := range s.Domains {
		if candidate == d {
			return true
		}
	}
	return false
}

// Attributes is the attribute-domain table from §4.H, modeled the way
// the teacher's internal/config/operators.go models AllOperators: one
// literal table instead of scattered conditionals.
var Attributes = map[string]AttributeSpec{
	"weak": {
		Name: "weak", Domains: []Domain{DomainFunc, DomainConst, DomainVar}, Arg: ArgNone,
	},
	"cname": {
		Name: "cname",
		Domains: []Domain{
			DomainFunc, DomainVar, DomainConst, DomainEnum, DomainStruct,
			DomainUnion, DomainTypedef, DomainError, DomainMember,
		},
		Arg:                    ArgStringConst,
		GenericModuleForbidden: true,
	},
	"section": {
		Name: "section", Domains: []Domain{DomainFunc, DomainConst, DomainVar}, Arg: ArgStringConst,
		GenericModuleForbidden: true,
	},
	"packed": {
		Name: "packed", Domains: []Domain{DomainStruct, DomainUnion, DomainError}, Arg: ArgNone,
	},
	"noreturn": {
		Name: "noreturn", Domains: []Domain{DomainFunc}, Arg: ArgNone,
	},
	"inline": {
		Name: "inline", Domains: []Domain{DomainFunc}, Arg: ArgNone,
	},
	"noinline": {
		Name: "noinline", Domains: []Domain{DomainFunc}, Arg: ArgNone,
	},
	"stdcall": {
		Name: "stdcall", Domains: []Domain{DomainFunc}, Arg: ArgNone,
	},
	"align": {
		Name: "align",
		Domains: []Domain{
			DomainFunc, DomainConst, DomainVar, DomainStruct, DomainUnion, DomainMember,
		},
		Arg: ArgAlignValue,
	},
	"opaque": {
		Name: "opaque", Domains: []Domain{DomainStruct, DomainUnion}, Arg: ArgNone,
	},
	// bitstruct (SPEC_FULL §9 supplement) manually pins one member to an
	// explicit bit offset within its enclosing struct, narrower than full
	// @packed layout.
	"bitstruct": {
		Name: "bitstruct", Domains: []Domain{DomainMember}, Arg: ArgIntConst,
	},
}
