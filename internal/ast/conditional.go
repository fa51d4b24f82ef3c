package ast

// CtElif is one `$elif (expr) { decls }` arm.
type CtElif struct {
	Cond Expr
	Body []Decl
}

// CtIfDecl is `$if (expr) { decls } ($elif ...)* ($else { decls })?`
// (§4.E). It parses to the same Decl level as any other declaration;
// the semantic phase evaluates Cond to choose one branch and promotes
// its declarations into the enclosing scope.
type CtIfDecl struct {
	Header
	Cond  Expr
	Then  []Decl
	Elifs []*CtElif
	Else  []Decl
}

func (d *CtIfDecl) Kind() DeclKind { return DeclCtIf }
func (d *CtIfDecl) Head() *Header  { return &d.Header }

// CtCase is one `$case type | $default : decls*` arm of a `$switch`.
type CtCase struct {
	Type      TypeInfo // nil for $default
	IsDefault bool
	Body      []Decl
}

// CtSwitchDecl is `$switch (expr) { ($case type | $default): decls* }`
// (§4.E).
type CtSwitchDecl struct {
	Header
	Subject Expr
	Cases   []*CtCase
}

func (d *CtSwitchDecl) Kind() DeclKind { return DeclCtSwitch }
func (d *CtSwitchDecl) Head() *Header  { return &d.Header }
