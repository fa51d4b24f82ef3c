// Package intern provides a process-wide string interning table so that
// equality of paths and identifiers can be tested by pointer/handle
// identity rather than byte comparison, per the canonical-type and path
// equality rules in the data model.
package intern

// Table maps string content to a single canonical Go string value. Go
// strings already compare by content, but callers that need a cheap
// "same entry" identity (map keys keyed by the *canonical* string,
// slices deduplicated by identity) benefit from routing every string of
// a given kind through one Table so only one allocation per distinct
// value ever exists.
//
// Table is not safe for concurrent use; the front-end is single-threaded
// end to end.
type Table struct {
	entries map[string]string
}

// New creates an empty interning table.
func New() *Table {
	return &Table{entries: make(map[string]string)}
}

// Intern returns the canonical string equal to s, storing s as canonical
// the first time it is seen.
func (t *Table) Intern(s string) string {
	if canonical, ok := t.entries[s]; ok {
		return canonical
	}
	t.entries[s] = s
	return s
}

// Len reports how many distinct strings have been interned.
func (t *Table) Len() int {
	return len(t.entries)
}
