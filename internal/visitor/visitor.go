// Package visitor holds the small amount of per-visitor state the site keeps:
// a "has visited before" flag behind an injected key-value capability and the
// time-of-day palette. It has no storage dependencies so the browser client
// can link it; the server's sqlite store lives in package sqlitestore.
package visitor

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned by a FlagStore for a key that was never set.
var ErrNotFound = errors.New("flag not found")

// FlagStore is a read/write key-value capability. The server backs it with
// sqlite, the browser with localStorage, and tests with MemoryStore.
type FlagStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore is an in-memory FlagStore.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// VisitedKey is the flag key for a visitor id. The browser, which has one
// visitor per storage, uses VisitedKey("").
func VisitedKey(visitorID string) string {
	if visitorID == "" {
		return "visited"
	}
	return "visited:" + visitorID
}

// Greeting is the hero greeting for a visitor.
type Greeting struct {
	Returning bool      `json:"returning"`
	Message   string    `json:"message"`
	Since     time.Time `json:"since"`
}

// Greet looks up the visited flag, then sets it. The first call for a
// visitor returns a first-visit greeting; later calls welcome them back.
func Greet(ctx context.Context, store FlagStore, visitorID string, now time.Time) (Greeting, error) {
	key := VisitedKey(visitorID)
	v, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		if err := store.Set(ctx, key, now.UTC().Format(time.RFC3339)); err != nil {
			return Greeting{}, err
		}
		return Greeting{Message: "Welcome."}, nil
	case err != nil:
		return Greeting{}, err
	}

	g := Greeting{Returning: true, Message: "Welcome back."}
	if since, err := time.Parse(time.RFC3339, v); err == nil {
		g.Since = since
	}
	return g, nil
}

// Palette is the accent scheme for a time of day.
type Palette struct {
	Name   string `json:"name"`
	Accent string `json:"accent"`
	Warm   string `json:"warm"`
}

var (
	Dawn  = Palette{Name: "dawn", Accent: "#7dd3fc", Warm: "#fda4af"}
	Day   = Palette{Name: "day", Accent: "#38bdf8", Warm: "#fbbf24"}
	Dusk  = Palette{Name: "dusk", Accent: "#a78bfa", Warm: "#fb923c"}
	Night = Palette{Name: "night", Accent: "#22d3ee", Warm: "#f59e0b"}
)

// PaletteAt returns the palette for the local hour of t.
func PaletteAt(t time.Time) Palette {
	switch h := t.Hour(); {
	case h >= 5 && h < 8:
		return Dawn
	case h >= 8 && h < 17:
		return Day
	case h >= 17 && h < 20:
		return Dusk
	default:
		return Night
	}
}
