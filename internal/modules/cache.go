package modules

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver, grounded on internal/evaluator/builtins_sql.go

	"github.com/mcgru/c3decl/internal/diagnostics"
	"github.com/mcgru/c3decl/internal/token"
)

// Cache is an optional, disabled-by-default persisted store for generic-
// module instantiation results, keyed by the Generic Instantiator's
// mangled name (DOMAIN STACK: modernc.org/sqlite). Nothing in Registry
// requires one; AnalyseStage and Instantiate both work entirely from the
// in-memory cache when r.cache is nil. Grounded on the teacher's
// internal/evaluator/builtins_sql.go SqlDB wrapper around database/sql,
// narrowed from a general runtime SQL binding down to the one
// key/metadata table this registry actually needs.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if absent) a sqlite-backed instantiation
// cache at path. Genuine I/O, so ctx is threaded through per §5 — this
// cache file is the only part of the module that accepts a
// context.Context, matching the
// spec's carve-out that synchronous, CPU-bound parser/analyzer calls
// never take one.
func OpenCache(ctx context.Context, path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open instantiation cache: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS instantiations (
	mangled_name TEXT PRIMARY KEY,
	instance_key TEXT NOT NULL,
	source_module TEXT NOT NULL
);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init instantiation cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close releases the cache's database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Lookup reports whether mangledName has a recorded instantiation and,
// if so, the uuid instance key and source module path it was recorded
// under on a previous compiler invocation over the same tree.
func (c *Cache) Lookup(ctx context.Context, mangledName string) (instanceKey, sourceModule string, found bool, err error) {
	row := c.db.QueryRowContext(ctx, `SELECT instance_key, source_module FROM instantiations WHERE mangled_name = ?`, mangledName)
	switch scanErr := row.Scan(&instanceKey, &sourceModule); scanErr {
	case nil:
		return instanceKey, sourceModule, true, nil
	case sql.ErrNoRows:
		return "", "", false, nil
	default:
		return "", "", false, scanErr
	}
}

// Record persists one instantiation's mangled name, instance key, and
// source module so a later invocation's Lookup can short-circuit
// recomputing it.
func (c *Cache) Record(ctx context.Context, mangledName, instanceKey, sourceModule string) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO instantiations (mangled_name, instance_key, source_module)
VALUES (?, ?, ?)
ON CONFLICT(mangled_name) DO UPDATE SET instance_key = excluded.instance_key, source_module = excluded.source_module`,
		mangledName, instanceKey, sourceModule)
	return err
}

// AttachCache wires an opened Cache into r so AnalyseStage-driven
// instantiations are recorded into it after each fresh build. The
// instantiator does not read the cache back: reuse within a run comes
// from its in-memory cache alone. Disabled by default: a Registry with
// no AttachCache call never touches sqlite.
func (r *Registry) AttachCache(c *Cache) {
	r.cache = c
}

// PersistInstantiation records one freshly built generic instantiation
// into the attached cache, tolerating cache errors by reporting them as
// ordinary diagnostics rather than failing analysis (persistence is an
// optimization, not a correctness requirement). A Registry with no
// attached cache never calls this.
func (r *Registry) PersistInstantiation(ctx context.Context, mangledName, instanceKey, sourceModule string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Record(ctx, mangledName, instanceKey, sourceModule); err != nil {
		r.Diags.Add(diagnostics.NewAnalyzer(diagnostics.ErrA013UnresolvedSymbol, token.Token{}, fmt.Sprintf("instantiation cache: %v", err)))
	}
}
