package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rezzedai/bourlier-site/internal/visitor"
)

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "visitor.db"), "test-salt", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestFlags(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, visitor.ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || got != "v2" {
		t.Errorf("Get(k) = %q, %v; want v2", got, err)
	}
}

func TestGreetPersists(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if g, err := visitor.Greet(ctx, s, "abc", noon); err != nil || g.Returning {
		t.Fatalf("first Greet() = %+v, %v", g, err)
	}
	g, err := visitor.Greet(ctx, s, "abc", noon.Add(time.Hour))
	if err != nil || !g.Returning || !g.Since.Equal(noon) {
		t.Errorf("second Greet() = %+v, %v; want returning since %v", g, err, noon)
	}
}

func TestRecordAndStats(t *testing.T) {
	ctx := context.Background()
	db := openTestStore(t)
	clock := noon
	db.now = func() time.Time { return clock }

	clock = noon.Add(-10 * 24 * time.Hour)
	mustRecord(t, db, "10.0.0.1", "/", false)
	clock = noon.Add(-2 * 24 * time.Hour)
	mustRecord(t, db, "10.0.0.2", "/", false)
	clock = noon.Add(-time.Hour)
	mustRecord(t, db, "10.0.0.1", "/", true)
	mustRecord(t, db, "10.0.0.1", "/api/content", true)
	clock = noon

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalVisits != 4 {
		t.Errorf("TotalVisits = %d, want 4", stats.TotalVisits)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if stats.ReturningVisits != 2 {
		t.Errorf("ReturningVisits = %d, want 2", stats.ReturningVisits)
	}
	if stats.VisitsToday != 2 {
		t.Errorf("VisitsToday = %d, want 2", stats.VisitsToday)
	}
	if stats.VisitsThisWeek != 3 {
		t.Errorf("VisitsThisWeek = %d, want 3", stats.VisitsThisWeek)
	}
	if len(stats.TopPaths) == 0 || stats.TopPaths[0].Path != "/" || stats.TopPaths[0].Visits != 3 {
		t.Errorf("TopPaths = %+v", stats.TopPaths)
	}
	if len(stats.RecentVisits) != 4 {
		t.Fatalf("RecentVisits = %d, want 4", len(stats.RecentVisits))
	}
	for _, v := range stats.RecentVisits {
		if v.HashedIP == "10.0.0.1" || v.HashedIP == "10.0.0.2" || len(v.HashedIP) != 16 {
			t.Errorf("stored address %q is not a 16 char hash", v.HashedIP)
		}
	}
	if got := stats.RecentVisits[len(stats.RecentVisits)-1].VisitedAt; !got.Equal(noon.Add(-10 * 24 * time.Hour)) {
		t.Errorf("oldest VisitedAt = %v", got)
	}
}

func TestCleanup(t *testing.T) {
	ctx := context.Background()
	db := openTestStore(t)
	clock := noon.AddDate(-2, 0, 0)
	db.now = func() time.Time { return clock }
	mustRecord(t, db, "1.1.1.1", "/", false)
	clock = noon
	mustRecord(t, db, "1.1.1.1", "/", true)

	n, err := db.Cleanup(ctx, 365*24*time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("Cleanup() removed %d, want 1", n)
	}
	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d after cleanup, want 1", stats.TotalVisits)
	}
}

func TestHashIPStable(t *testing.T) {
	db := openTestStore(t)
	if db.HashIP("1.2.3.4") != db.HashIP("1.2.3.4") {
		t.Error("HashIP is not stable")
	}
	if db.HashIP("1.2.3.4") == db.HashIP("1.2.3.5") {
		t.Error("HashIP collides for different addresses")
	}
}

func mustRecord(t *testing.T, db *Store, ip, path string, returning bool) {
	t.Helper()
	if err := db.Record(context.Background(), ip, "test-agent", path, returning); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
}
