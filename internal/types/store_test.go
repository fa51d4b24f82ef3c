package types

import "testing"

// §8.5 "type-interning uniqueness": repeated interning calls with
// structurally identical arguments must return the identical *Type,
// not merely an equal-looking one.
func TestInternPointerUniqueness(t *testing.T) {
	s := NewStore()
	p1 := s.InternPointer(IntType())
	p2 := s.InternPointer(IntType())
	if p1 != p2 {
		t.Fatalf("expected InternPointer to return the same *Type for the same elem, got distinct pointers")
	}
}

func TestInternPointerDistinctElemsDiffer(t *testing.T) {
	s := NewStore()
	p1 := s.InternPointer(IntType())
	p2 := s.InternPointer(BoolType)
	if p1 == p2 {
		t.Fatalf("expected pointers to distinct elem types to be distinct")
	}
}

func TestInternArrayUniqueness(t *testing.T) {
	s := NewStore()
	a1 := s.InternArray(IntType(), 4)
	a2 := s.InternArray(IntType(), 4)
	if a1 != a2 {
		t.Fatalf("expected InternArray to dedup on (elem, length)")
	}

	a3 := s.InternArray(IntType(), 5)
	if a1 == a3 {
		t.Fatalf("expected a different length to produce a distinct array type")
	}
}

func TestInternSubArrayAndVarArrayUniqueness(t *testing.T) {
	s := NewStore()
	if s.InternSubArray(IntType()) != s.InternSubArray(IntType()) {
		t.Fatalf("expected InternSubArray to dedup on elem")
	}
	if s.InternVarArray(IntType()) != s.InternVarArray(IntType()) {
		t.Fatalf("expected InternVarArray to dedup on elem")
	}
	if s.InternSubArray(IntType()) == s.InternVarArray(IntType()) {
		t.Fatalf("sub-array and var-array of the same elem must remain distinct kinds")
	}
}

// Function types intern by structural signature equality, not pointer
// identity of the FuncSig value (§4.H "Function types are interned by
// signature structural equality").
func TestInternFuncStructuralEquality(t *testing.T) {
	s := NewStore()
	sig1 := &FuncSig{Params: []*Type{IntType(), BoolType}, Return: VoidType}
	sig2 := &FuncSig{Params: []*Type{IntType(), BoolType}, Return: VoidType}

	f1 := s.InternFunc(sig1)
	f2 := s.InternFunc(sig2)
	if f1 != f2 {
		t.Fatalf("expected two structurally identical signatures to intern to the same *Type")
	}

	variadic := &FuncSig{Params: []*Type{IntType(), BoolType}, Return: VoidType, Variadic: true}
	f3 := s.InternFunc(variadic)
	if f1 == f3 {
		t.Fatalf("expected the variadic flag to distinguish otherwise-identical signatures")
	}
}

// Nominal types are never structurally deduplicated: two distinct
// declarations of "the same shape" still get distinct canonical
// entries, since nominal identity is by declaration (§3).
func TestNewNominalNeverDeduplicates(t *testing.T) {
	s := NewStore()
	declA := &fakeNominalDecl{name: "Point"}
	declB := &fakeNominalDecl{name: "Point"}

	t1 := s.NewNominal(Struct, declA)
	t2 := s.NewNominal(Struct, declB)
	if t1 == t2 {
		t.Fatalf("expected distinct declarations to produce distinct nominal types even with the same name")
	}
	if t1.ID() == t2.ID() {
		t.Fatalf("expected distinct nominal types to carry distinct process-wide ids")
	}
}

type fakeNominalDecl struct{ name string }

func (f *fakeNominalDecl) TypeName() string { return f.name }

// IntType returns the canonical built-in "int" type, used throughout
// these tests in place of constructing one from scratch.
func IntType() *Type {
	return LookupInteger("int")
}
