package visitor

import (
	"context"
	"errors"
	"testing"
	"time"
)

var noon = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
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

func TestGreet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first, err := Greet(ctx, store, "abc", noon)
	if err != nil {
		t.Fatal(err)
	}
	if first.Returning {
		t.Error("first visit reported as returning")
	}

	again, err := Greet(ctx, store, "abc", noon.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if !again.Returning || again.Message != "Welcome back." {
		t.Errorf("second greeting = %+v", again)
	}
	if !again.Since.Equal(noon) {
		t.Errorf("Since = %v, want %v", again.Since, noon)
	}

	other, err := Greet(ctx, store, "xyz", noon)
	if err != nil {
		t.Fatal(err)
	}
	if other.Returning {
		t.Error("flag leaked across visitors")
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) { return "", errors.New("boom") }
func (failingStore) Set(context.Context, string, string) error   { return errors.New("boom") }

func TestGreetStoreError(t *testing.T) {
	if _, err := Greet(context.Background(), failingStore{}, "a", noon); err == nil {
		t.Error("Greet() swallowed a store error")
	}
}

func TestVisitedKey(t *testing.T) {
	if VisitedKey("") != "visited" || VisitedKey("id") != "visited:id" {
		t.Errorf("VisitedKey = %q, %q", VisitedKey(""), VisitedKey("id"))
	}
}

func TestPaletteAt(t *testing.T) {
	tests := []struct {
		hour int
		want Palette
	}{
		{0, Night}, {4, Night}, {5, Dawn}, {7, Dawn}, {8, Day},
		{16, Day}, {17, Dusk}, {19, Dusk}, {20, Night}, {23, Night},
	}
	for _, tt := range tests {
		at := time.Date(2026, 1, 1, tt.hour, 30, 0, 0, time.UTC)
		if got := PaletteAt(at); got != tt.want {
			t.Errorf("PaletteAt(%02d:30) = %s, want %s", tt.hour, got.Name, tt.want.Name)
		}
	}
}
