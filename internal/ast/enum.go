package ast

// EnumConstantDecl is one constant of an enum body: `CONST_IDENT ('('
// expr_list ')')? ('=' const_expr)?` (§4.D "enum", §3 "Enum body").
type EnumConstantDecl struct {
	Header
	Ordinal      int
	Value        Expr // explicit '=' const_expr, or nil to auto-increment
	Args         []Expr
	ResolvedInt  int64
}

func (d *EnumConstantDecl) Kind() DeclKind { return DeclEnumConstant }
func (d *EnumConstantDecl) Head() *Header  { return &d.Header }

// EnumDecl is `enum NAME (':' base_type (payload_params)?)? '{' ... '}'`
// (§3 "Enum body", §4.D "enum").
type EnumDecl struct {
	Header
	BaseType   TypeInfo // integer base type; nil means the default int
	Parameters []*Param // optional payload declarations
	Values     []*EnumConstantDecl
}

func (d *EnumDecl) Kind() DeclKind { return DeclEnum }
func (d *EnumDecl) Head() *Header  { return &d.Header }
