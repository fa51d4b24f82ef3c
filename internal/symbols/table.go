package symbols

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Table is the per-module symbol table (§3 component F "per-module
// symbols"). It is distinct from the dynamic Stack: Stack tracks
// nested-aggregate member scopes during a single declaration's parse,
// while Table holds every top-level name a module exports plus the
// tables of modules it imports, consulted by resolve_normal_symbol
// during type resolution (§4.F, §4.G).
type Table struct {
	Module  string
	symbols map[string]*Symbol
	// Imported holds imported module tables, keyed by the alias under
	// which they were imported, consulted with visibility filtering
	// when a name is not found locally.
	Imported map[string]*Table
}

func NewTable(module string) *Table {
	return &Table{Module: module, symbols: make(map[string]*Symbol), Imported: make(map[string]*Table)}
}

// Define adds sym to the module table. It returns the previous symbol
// and false if name was already bound (duplicate top-level
// declaration).
func (t *Table) Define(sym *Symbol) (prior *Symbol, ok bool) {
	if existing, found := t.symbols[sym.Name]; found {
		return existing, false
	}
	t.symbols[sym.Name] = sym
	return nil, true
}

// Get looks up name in this table only (no import fallthrough).
func (t *Table) Get(name string) (*Symbol, bool) {
	sym, ok := t.symbols[name]
	return sym, ok
}

// Resolve looks up name in this table, then in each imported table
// in import order (§4.F "resolve_normal_symbol ... looks through
// imports"). Only symbols with Public/Module visibility would be
// visible across modules; this module's narrow scope (declaration
// analysis, not cross-module visibility enforcement of every
// qualifier) resolves any symbol an imported table exports, leaving
// visibility enforcement to the call site if it cares.
func (t *Table) Resolve(name string) (*Symbol, bool) {
	if sym, ok := t.symbols[name]; ok {
		return sym, true
	}
	for _, imp := range t.Imported {
		if sym, ok := imp.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// AllNames returns every name defined directly in this table, for
// error-suggestion support (not currently wired into diagnostics
// rendering, but kept available the way the teacher's GetAllNames is).
// Returned in sorted order so repeated calls (and any diagnostic output
// built from them) are deterministic.
func (t *Table) AllNames() []string {
	names := maps.Keys(t.symbols)
	slices.Sort(names)
	return names
}
