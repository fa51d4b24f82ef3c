package ast

// CtAssertDecl is `$assert (expr) ;` — a compile-time assertion at
// declaration level (§4.D "$if / $switch / $assert", §4.E). It is not
// itself given a dedicated paragraph in the data model's Decl variant
// list, but is named as a top-level form and a recovery sync point, so
// it is modeled the same way CtIf/CtSwitch are: a Decl that the
// semantic phase evaluates once.
type CtAssertDecl struct {
	Header
	Cond Expr
}

func (d *CtAssertDecl) Kind() DeclKind { return DeclCtAssert }
func (d *CtAssertDecl) Head() *Header  { return &d.Header }
