//go:build js && wasm

package main

import (
	"errors"
	"syscall/js"
)

func window() js.Value { return js.Global() }

func document() js.Value { return js.Global().Get("document") }

func byID(id string) js.Value { return document().Call("getElementById", id) }

func exists(v js.Value) bool { return !v.IsNull() && !v.IsUndefined() }

// queryAll returns the elements matching selector under root.
func queryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	out := make([]js.Value, list.Length())
	for i := range out {
		out[i] = list.Index(i)
	}
	return out
}

func setClass(el js.Value, class string, on bool) {
	el.Get("classList").Call("toggle", class, on)
}

// listen adds an event listener and returns a function that removes it.
func listen(target js.Value, event string, fn func(ev js.Value)) (remove func()) {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	opts := map[string]any{"passive": true}
	target.Call("addEventListener", event, cb, opts)
	return func() {
		target.Call("removeEventListener", event, cb, opts)
		cb.Release()
	}
}

// await blocks until the promise settles. It must not be called from inside
// a js.FuncOf callback.
func await(promise js.Value) (js.Value, error) {
	var (
		result js.Value
		err    error
		done   = make(chan struct{})
	)
	onOK := js.FuncOf(func(_ js.Value, args []js.Value) any {
		result = args[0]
		close(done)
		return nil
	})
	onErr := js.FuncOf(func(_ js.Value, args []js.Value) any {
		err = errors.New(args[0].Call("toString").String())
		close(done)
		return nil
	})
	defer onOK.Release()
	defer onErr.Release()

	promise.Call("then", onOK, onErr)
	<-done
	return result, err
}
