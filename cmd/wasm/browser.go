//go:build js && wasm

package main

import (
	"context"
	"fmt"
	"syscall/js"
	"time"

	"github.com/rezzedai/bourlier-site/internal/schedule"
	"github.com/rezzedai/bourlier-site/internal/scrollspy"
	"github.com/rezzedai/bourlier-site/internal/visitor"
)

// browserScheduler schedules on the page's event loop with setTimeout and
// requestAnimationFrame. Callbacks never overlap, like the server-side Loop.
type browserScheduler struct{}

func (browserScheduler) Now() time.Time { return time.Now() }

func (browserScheduler) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	return newJSTimer("setTimeout", "clearTimeout", func(js.Value) { fn() }, d.Milliseconds())
}

// RequestFrame passes time.Now rather than the frame timestamp so frame
// times share a clock with Now.
func (browserScheduler) RequestFrame(fn func(now time.Time)) schedule.Timer {
	return newJSTimer("requestAnimationFrame", "cancelAnimationFrame", func(js.Value) { fn(time.Now()) })
}

type jsTimer struct {
	id     js.Value
	cancel string
	cb     js.Func
	done   bool
}

func newJSTimer(start, cancel string, fn func(js.Value), args ...any) *jsTimer {
	t := &jsTimer{cancel: cancel}
	t.cb = js.FuncOf(func(_ js.Value, a []js.Value) any {
		if t.done {
			return nil
		}
		t.done = true
		t.cb.Release()
		var arg js.Value
		if len(a) > 0 {
			arg = a[0]
		}
		fn(arg)
		return nil
	})
	t.id = window().Call(start, append([]any{t.cb}, args...)...)
	return t
}

func (t *jsTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	window().Call(t.cancel, t.id)
	t.cb.Release()
	return true
}

// intersectionObserver reports band transitions with one IntersectionObserver
// per section, shrunk to the band by its root margin.
type intersectionObserver struct {
	rootMargin string
}

func newIntersectionObserver(band scrollspy.Band) intersectionObserver {
	return intersectionObserver{rootMargin: band.RootMargin()}
}

func (o intersectionObserver) Subscribe(s scrollspy.Section, fn func(scrollspy.Entry)) (func(), error) {
	el, ok := s.Element.(js.Value)
	if !ok {
		el = byID(s.ID)
	}
	if !exists(el) {
		return nil, fmt.Errorf("section %q: %w", s.ID, scrollspy.ErrNoElement)
	}
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			fn(scrollspy.Entry{ID: s.ID, Intersecting: entries.Index(i).Get("isIntersecting").Bool()})
		}
		return nil
	})
	io := window().Get("IntersectionObserver").New(cb, map[string]any{"rootMargin": o.rootMargin})
	io.Call("observe", el)
	return func() {
		io.Call("disconnect")
		cb.Release()
	}, nil
}

// localStore keeps visitor flags in window.localStorage.
type localStore struct {
	storage js.Value
}

func newLocalStore() localStore {
	return localStore{storage: window().Get("localStorage")}
}

func (s localStore) Get(_ context.Context, key string) (value string, err error) {
	defer recoverJS(&err)
	v := s.storage.Call("getItem", key)
	if !exists(v) {
		return "", visitor.ErrNotFound
	}
	return v.String(), nil
}

func (s localStore) Set(_ context.Context, key, value string) (err error) {
	defer recoverJS(&err)
	s.storage.Call("setItem", key, value)
	return nil
}

// recoverJS turns a thrown JavaScript exception, such as a full or disabled
// storage, into an error.
func recoverJS(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("localStorage: %w", jsErr)
			return
		}
		panic(r)
	}
}
