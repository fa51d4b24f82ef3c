package modules

import (
	"context"
	"testing"

	"github.com/mcgru/c3decl/internal/diagnostics"
)

func TestCacheRecordAndLookupRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCache(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	if err := c.Record(ctx, "vec.int", "uuid-1", "vec"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	key, src, found, err := c.Lookup(ctx, "vec.int")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found {
		t.Fatalf("expected a recorded instantiation to be found")
	}
	if key != "uuid-1" || src != "vec" {
		t.Fatalf("expected (uuid-1, vec), got (%s, %s)", key, src)
	}
}

func TestCacheLookupMissReportsNotFound(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCache(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	_, _, found, err := c.Lookup(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if found {
		t.Fatalf("expected no row for an unrecorded mangled name")
	}
}

// Recording the same mangled name twice updates the row rather than
// erroring, since a re-run of the compiler over an unchanged tree will
// naturally re-derive the same instantiation.
func TestCacheRecordUpsertsOnConflict(t *testing.T) {
	ctx := context.Background()
	c, err := OpenCache(ctx, ":memory:")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	defer c.Close()

	if err := c.Record(ctx, "vec.int", "uuid-1", "vec"); err != nil {
		t.Fatalf("first Record: %v", err)
	}
	if err := c.Record(ctx, "vec.int", "uuid-2", "vec"); err != nil {
		t.Fatalf("second Record: %v", err)
	}

	key, _, found, err := c.Lookup(ctx, "vec.int")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if !found || key != "uuid-2" {
		t.Fatalf("expected the second Record to overwrite the instance key, got found=%v key=%s", found, key)
	}
}

// PersistInstantiation is a no-op on a Registry with no attached cache.
// The failing-write case (a closed db handle reported as a diagnostic)
// is exercised by the next test.
func TestPersistInstantiationNoopWithoutCache(t *testing.T) {
	r := NewRegistry(&diagnostics.Bag{})
	r.PersistInstantiation(context.Background(), "vec.int", "uuid-1", "vec")
	if len(r.Diags.Items()) != 0 {
		t.Fatalf("expected no diagnostics when no cache is attached")
	}
}

func TestPersistInstantiationReportsCacheErrorAsDiagnostic(t *testing.T) {
	diags := &diagnostics.Bag{}
	r := NewRegistry(diags)
	c, err := OpenCache(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	c.Close() // force every subsequent call to fail
	r.AttachCache(c)

	r.PersistInstantiation(context.Background(), "vec.int", "uuid-1", "vec")
	if len(diags.Items()) != 1 {
		t.Fatalf("expected exactly one diagnostic reporting the cache write failure, got %d", len(diags.Items()))
	}
}
