package ast

// AggregateDecl is the shared struct/union/error body (§3 "Struct/Union
// body"): `{members, size, padding, union_rep, is_substruct}`. DeclErr
// reuses this shape too, analysed as a struct but capped to pointer
// size (§4.H "Error type").
type AggregateDecl struct {
	Header
	kind        DeclKind // DeclStruct, DeclUnion, or DeclErr
	Members     []Decl   // each a *VarDecl (VarMember) or nested *AggregateDecl
	Size        uint64
	NaturalAlign uint64
	UnionRep    int // index into Members, meaningful only for DeclUnion
	IsSubstruct bool

	// IsUnaligned records whether the layout algorithm (§4.H) had to
	// diverge from natural alignment anywhere in this aggregate.
	IsUnaligned bool
}

func NewAggregate(kind DeclKind) *AggregateDecl {
	return &AggregateDecl{kind: kind, UnionRep: -1}
}

func (d *AggregateDecl) Kind() DeclKind { return d.kind }
func (d *AggregateDecl) Head() *Header  { return &d.Header }
