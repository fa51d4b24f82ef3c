package analyzer

import (
	"testing"

	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/token"
	"github.com/mcgru/c3decl/internal/types"
)

func newTestAnalyzer() *Analyzer {
	return New(types.NewStore(), symbols.NewTable("test"), &diagnostics.Bag{})
}

func builtinIdent(name string) *ast.IdentifierType {
	return &ast.IdentifierType{Name: name, Builtin: true}
}

func member(name, builtinType string) *ast.VarDecl {
	return &ast.VarDecl{Header: ast.Header{Name: name, NameTok: token.Token{Text: name}}, Type: builtinIdent(builtinType)}
}

// S1: a packed struct with three members (int, int, bool) lays out back
// to back with no inter-member padding, matching §4.H's packed override
// (member_align = 1 regardless of natural alignment).
func TestPackedStructLayoutIsContiguous(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Name = "Point"
	decl.IsPacked = true
	decl.Members = []ast.Decl{
		member("x", "int"),
		member("y", "int"),
		member("flag", "bool"),
	}

	a.analyseAggregateLayout(decl)

	xOff := decl.Members[0].Head().Offset
	yOff := decl.Members[1].Head().Offset
	fOff := decl.Members[2].Head().Offset
	if xOff != 0 || yOff != 4 || fOff != 8 {
		t.Fatalf("expected packed offsets 0,4,8; got %d,%d,%d", xOff, yOff, fOff)
	}
	if decl.Size != 9 {
		t.Fatalf("expected packed size 9 (4+4+1, no trailing pad since alignment=1), got %d", decl.Size)
	}
	if decl.Alignment != 1 {
		t.Fatalf("expected packed alignment 1, got %d", decl.Alignment)
	}
}

// An unpacked struct with the same members pads y's offset and the
// overall size up to natural alignment (§4.H "Struct/union layout").
func TestUnpackedStructLayoutAligns(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Name = "Flagged"
	decl.Members = []ast.Decl{
		member("flag", "bool"),
		member("x", "int"),
	}

	a.analyseAggregateLayout(decl)

	if decl.Members[1].Head().Offset != 4 {
		t.Fatalf("expected int member to start at offset 4 (aligned past the bool+pad), got %d", decl.Members[1].Head().Offset)
	}
	if decl.Size != 8 {
		t.Fatalf("expected struct size 8 (4-byte aligned), got %d", decl.Size)
	}
	if decl.IsUnaligned {
		t.Fatalf("naturally-aligned layout should not be marked unaligned")
	}
}

// S2: union layout picks the member of maximum alignment as the
// representative, ties broken toward larger size (§4.H "Union layout").
func TestUnionLayoutPicksMaxAlignmentRepresentative(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclUnion)
	decl.Name = "Variant"
	decl.Members = []ast.Decl{
		member("small", "char"),
		member("big", "long"),
	}

	a.analyseAggregateLayout(decl)

	if decl.UnionRep != 1 {
		t.Fatalf("expected the 8-byte 'long' member (index 1) to be the representative, got index %d", decl.UnionRep)
	}
	if decl.Size != 8 || decl.Alignment != 8 {
		t.Fatalf("expected union size/alignment 8, got size=%d align=%d", decl.Size, decl.Alignment)
	}
}

// Duplicate member names within one aggregate are reported once, with
// both occurrences' spans, via the dynamic scope pushed for a named
// aggregate (§4.F, §7 two-span rule).
func TestDuplicateMemberNameReportsOnce(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Name = "Dup"
	decl.Members = []ast.Decl{
		member("x", "int"),
		member("x", "int"),
	}

	a.analyseAggregateLayout(decl)

	var dupCount int
	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA004DuplicateMember {
			dupCount++
			if d.PriorToken == nil {
				t.Fatalf("expected the duplicate-member diagnostic to carry the prior occurrence's span")
			}
		}
	}
	if dupCount != 1 {
		t.Fatalf("expected exactly one duplicate-member diagnostic, got %d", dupCount)
	}
}

// An anonymous nested aggregate is opaque for layout (one offset/size
// unit) but its members still promote into the enclosing scope for name
// visibility, so a name collision across the anonymous boundary is still
// caught (§4.F).
func TestAnonymousAggregateMembersPromoteForNaming(t *testing.T) {
	a := newTestAnalyzer()
	inner := ast.NewAggregate(ast.DeclStruct)
	inner.Members = []ast.Decl{member("a", "int")}

	outer := ast.NewAggregate(ast.DeclStruct)
	outer.Name = "Outer"
	outer.Members = []ast.Decl{inner, member("a", "int")}

	a.analyseAggregateLayout(outer)

	var dupCount int
	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA004DuplicateMember {
			dupCount++
		}
	}
	if dupCount != 1 {
		t.Fatalf("expected the anonymous member's 'a' to collide with the outer 'a', got %d duplicate diagnostics", dupCount)
	}
}

// An `err` declaration larger than pointer size is rejected; one that
// fits is padded up to pointer size (§4.H "Error type", §8 invariant).
func TestErrorTypeSizeCap(t *testing.T) {
	a := newTestAnalyzer()
	small := ast.NewAggregate(ast.DeclErr)
	small.Name = "SmallErr"
	small.Members = []ast.Decl{member("code", "char")}
	a.analyseError(small)
	if small.Size != types.PointerSize {
		t.Fatalf("expected small err decl padded to pointer size %d, got %d", types.PointerSize, small.Size)
	}

	big := ast.NewAggregate(ast.DeclErr)
	big.Name = "BigErr"
	big.Members = []ast.Decl{member("a", "long"), member("b", "long")}
	a.analyseError(big)
	var tooBig bool
	for _, d := range a.Diags.Items() {
		if d.Code == diagnostics.ErrA009ErrorTypeTooBig {
			tooBig = true
		}
	}
	if !tooBig {
		t.Fatalf("expected an oversize err declaration to be rejected")
	}
}

// sema_decls.c:238 overwrites is_packed with is_unaligned unconditionally
// at the end of struct layout: a struct nobody marked @packed still ends
// up reporting IsPacked = true once an explicit per-member @align drags
// its natural layout out of alignment.
func TestUnalignedStructIsMarkedPacked(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Name = "Skewed"
	c := member("c", "char")
	x := member("x", "int")
	x.Header.HasAlignment = true
	x.Header.Alignment = 1
	decl.Members = []ast.Decl{c, x}

	a.analyseAggregateLayout(decl)

	if !decl.IsUnaligned {
		t.Fatalf("expected the skewed per-member alignment to mark the struct unaligned")
	}
	if !decl.IsPacked {
		t.Fatalf("expected is_unaligned to overwrite IsPacked to true (sema_decls.c:238), got false")
	}
}

// @bitstruct manually pins one member's offset instead of the computed
// one, narrower than full @packed layout (SPEC_FULL §9 supplement).
func TestBitstructMemberUsesExplicitOffset(t *testing.T) {
	a := newTestAnalyzer()
	decl := ast.NewAggregate(ast.DeclStruct)
	decl.Name = "Flags"
	c := member("c", "char")
	pinned := member("pinned", "int")
	bit := 3
	pinned.Header.BitOffset = &bit
	decl.Members = []ast.Decl{c, pinned}

	a.analyseAggregateLayout(decl)

	if pinned.Header.Offset != 3 {
		t.Fatalf("expected the bitstruct member to land at its pinned offset 3, got %d", pinned.Header.Offset)
	}
}
