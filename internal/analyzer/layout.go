package analyzer

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/symbols"
	"github.com/mcgru/c3decl/internal/types"
)

// ceil rounds n up to the next multiple of align (align must be > 0).
func ceil(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}

// analyseAggregateLayout implements the struct and union layout
// algorithms of §4.H, including the packed/explicit-align overrides.
// The inline-first-member flag (IsSubstruct) is not consulted here and
// does not change offsets or size. Error (`err`)
// declarations reuse the struct algorithm and are additionally capped to
// pointer size by the caller (analyseError).
func (a *Analyzer) analyseAggregateLayout(decl *ast.AggregateDecl) {
	// A named aggregate pushes its own dynamic scope on entry and pops it
	// on exit (§4.F); an anonymous one has no scope of its own — its
	// members promote straight into whichever scope is already current.
	if decl.Name != "" {
		a.Scopes.PushNamed()
		defer a.Scopes.Pop()
	}

	if decl.Kind() == ast.DeclUnion {
		a.analyseUnionLayout(decl)
		return
	}

	var offset uint64
	var naturalAlign uint64 = 1

	for _, m := range decl.Members {
		memberNatural, memberSize, header, ok := a.analyseMember(m)
		if !ok {
			continue
		}

		memberAlign := memberNatural
		if decl.IsPacked {
			memberAlign = 1
		}
		if header.HasAlignment {
			memberAlign = header.Alignment
		}

		alignedOffset := ceil(offset, memberAlign)
		naturalAlignedOffset := ceil(offset, memberNatural)
		if naturalAlignedOffset > alignedOffset {
			decl.IsUnaligned = true
		}

		// @bitstruct (SPEC_FULL §9 supplement) pins this member to a
		// manually specified offset instead of the computed one: the
		// attribute's integer argument is used unconverted as the member's
		// byte offset (Header.Offset). Layout otherwise proceeds exactly
		// as above.
		if header.BitOffset != nil {
			alignedOffset = uint64(*header.BitOffset)
		}

		header.Offset = alignedOffset
		offset = alignedOffset + memberSize
		if memberNatural > naturalAlign {
			naturalAlign = memberNatural
		}
	}

	decl.NaturalAlign = naturalAlign
	alignment := naturalAlign
	if decl.IsPacked {
		alignment = 1
	}
	if decl.HasAlignment && decl.Alignment > alignment {
		alignment = decl.Alignment
	}
	decl.Alignment = alignment

	size := ceil(offset, alignment)
	if size < ceil(offset, naturalAlign) {
		decl.IsUnaligned = true
	}
	decl.Size = size

	// sema_decls.c:238 overwrites is_packed with is_unaligned at the very
	// end of layout, unconditionally — a struct nobody marked @packed
	// still ends up reporting is_packed = true once its natural layout
	// comes out unaligned. Preserved verbatim here, surprising as it is.
	decl.IsPacked = decl.IsUnaligned
}

// analyseUnionLayout implements §4.H "Union layout": the representative
// member is the one with maximum abi_alignment, ties broken toward the
// larger size.
func (a *Analyzer) analyseUnionLayout(decl *ast.AggregateDecl) {
	var maxAlign, maxSize uint64
	rep := -1

	for i, m := range decl.Members {
		memberNatural, memberSize, header, ok := a.analyseMember(m)
		if !ok {
			continue
		}
		memberAlign := memberNatural
		if decl.IsPacked {
			memberAlign = 1
		}
		if header.HasAlignment {
			memberAlign = header.Alignment
		}
		if memberAlign > maxAlign || (memberAlign == maxAlign && memberSize > maxSize) {
			maxAlign, maxSize, rep = memberAlign, memberSize, i
		}
	}

	decl.UnionRep = rep
	decl.NaturalAlign = maxAlign
	alignment := maxAlign
	if decl.HasAlignment {
		alignment = decl.Alignment
	}
	decl.Alignment = alignment
	decl.Size = ceil(maxSize, alignment)
}

// analyseMember resolves one aggregate member's type (or recursively
// lays out a nested anonymous/named aggregate member) and returns its
// natural alignment, size, and the Header the layout offset should be
// written back onto.
func (a *Analyzer) analyseMember(m ast.Decl) (natural, size uint64, header *ast.Header, ok bool) {
	switch mem := m.(type) {
	case *ast.VarDecl:
		a.checkMemberName(&mem.Header, mem)
		a.ResolveType(mem.Type, false)
		ct := typeCanonical(mem.Type)
		if ct == nil {
			return 0, 0, nil, false
		}
		return ct.AbiAlignment, ct.Size, &mem.Header, true
	case *ast.AggregateDecl:
		if mem.Name != "" {
			a.checkMemberName(&mem.Header, mem)
		} else {
			a.promoteAnonymousMembers(mem)
		}
		a.analyseAggregateLayout(mem)
		return mem.NaturalAlign, mem.Size, &mem.Header, true
	default:
		return 0, 0, nil, false
	}
}

// checkMemberName registers a named member in the current dynamic scope
// (§4.F "resolve_symbol_in_current_dynamic_scope"), reporting a
// duplicate-member diagnostic with both spans if the name is already
// taken in this scope by a different declaration (§7 two-span rule).
// Re-registering the same declaration is silent: an anonymous
// aggregate's members are promoted up front and then registered again
// when the anonymous aggregate itself is laid out.
func (a *Analyzer) checkMemberName(h *ast.Header, decl ast.Decl) {
	if h.Name == "" {
		return
	}
	sym := &symbols.Symbol{Name: h.Name, Kind: symbols.KindValue, Decl: decl}
	if prior, ok := a.Scopes.DefineInCurrent(sym); !ok && prior.Decl != decl {
		a.Diags.Add(diagnostics.NewDuplicate(diagnostics.ErrA004DuplicateMember, diagnostics.PhaseAnalyzer, h.NameTok, prior.Decl.Head().NameTok, h.Name))
	}
}

// promoteAnonymousMembers registers every member of an anonymous nested
// aggregate directly in the current scope (§4.F "anonymous aggregates
// promote their members to the outer name space"), recursing through
// further anonymous nesting.
func (a *Analyzer) promoteAnonymousMembers(agg *ast.AggregateDecl) {
	for _, m := range agg.Members {
		switch mem := m.(type) {
		case *ast.VarDecl:
			a.checkMemberName(&mem.Header, mem)
		case *ast.AggregateDecl:
			if mem.Name != "" {
				a.checkMemberName(&mem.Header, mem)
			} else {
				a.promoteAnonymousMembers(mem)
			}
		}
	}
}

// typeCanonical returns ti's canonical Type if resolution succeeded, or
// nil if ti is absent/poisoned/unresolved.
func typeCanonical(ti ast.TypeInfo) *types.Type {
	if ti == nil || ast.IsPoisonedType(ti) {
		return nil
	}
	return ti.Canonical()
}

// analyseError analyses an `err` declaration as a struct, then enforces
// §4.H "Error type": reject if size exceeds sizeof(uptr); otherwise pad
// up to pointer size.
func (a *Analyzer) analyseError(decl *ast.AggregateDecl) {
	a.analyseAggregateLayout(decl)
	if decl.Size > types.PointerSize {
		a.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA009ErrorTypeTooBig, decl.NameTok, diagnostics.HumanSize(decl.Size), diagnostics.HumanSize(types.PointerSize)))
		return
	}
	decl.Size = types.PointerSize
	if decl.Alignment < types.PointerSize {
		decl.Alignment = types.PointerSize
	}
}
