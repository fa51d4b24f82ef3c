// Package symbols implements the scope and symbol-table model of §4.F:
// a dynamic scope stack pushed on entry to a named aggregate and
// popped on exit (anonymous aggregates promote their members to the
// outer scope), plus a per-module symbol table used by the type
// resolver. Grounded on the shape of the teacher's
// internal/symbols/symbol_table.go (outer-chained SymbolTable,
// Define*/Resolve*/Get* method family) generalized from an
// expression-language symbol table to a declaration-level one.
package symbols

import (
	"github.com/mcgru/c3decl/internal/ast"
	"github.com/mcgru/c3decl/internal/types"
)

// Kind classifies what a Symbol names.
type Kind int

const (
	KindValue Kind = iota // const/global/local/member/param
	KindType              // struct/union/enum/err/distinct/typedef/interface
	KindFunc
	KindModule
)

// Symbol is one entry in a scope or the module table.
type Symbol struct {
	Name string
	Kind Kind
	Type *types.Type
	Decl ast.Decl
}
