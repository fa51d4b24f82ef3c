package ast

import (
	"strings"

	"github.com/mcgru/c3decl/internal/token"
)

// Path is a dotted-scope module name, e.g. "a::b::c" (§3). Equality is
// pointer equality on CanonicalForm once both paths have been routed
// through the same intern.Table; the parser does this through its
// Strings interner.
type Path struct {
	Segments      []string
	Span          token.Span
	CanonicalForm string
}

// NewPath builds a Path and computes its canonical "a::b::c" form.
// canonical should be the *interned* string returned by
// intern.Table.Intern so that equal paths compare pointer-equal.
func NewPath(segments []string, span token.Span, canonical string) Path {
	return Path{Segments: segments, Span: span, CanonicalForm: canonical}
}

// Join renders segments into their "a::b::c" textual form, the
// pre-interning input used to derive CanonicalForm.
func Join(segments []string) string {
	return strings.Join(segments, "::")
}

func (p Path) String() string { return p.CanonicalForm }

// Empty reports whether the path has no segments (no path prefix was
// present).
func (p Path) Empty() bool { return len(p.Segments) == 0 }
