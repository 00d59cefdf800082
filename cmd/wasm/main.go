//go:build js && wasm

// Command wasm is the browser client. It binds the page widgets to the DOM
// rendered by the server: scroll-spy navigation and the small-screen menu,
// the testimonial carousel, metric count-up, the heading reveal, copy
// buttons and the returning-visitor greeting.
//
// Build with:
//
//	GOOS=js GOARCH=wasm go build -o static/main.wasm ./cmd/wasm
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/rezzedai/bourlier-site/internal/content"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "site", Level: log.InfoLevel})
	if debugEnabled() {
		logger.SetLevel(log.DebugLevel)
	}

	c, err := fetchContent("/api/content")
	if err != nil {
		logger.Error("loading content", "err", err)
		return
	}

	p := newPage(browserScheduler{}, logger)
	p.mount(c)
	logger.Debug("mounted", "sections", len(c.Sections), "metrics", len(c.Hero.Metrics))

	// Callbacks from the browser need the Go runtime alive.
	select {}
}

func fetchContent(url string) (*content.Content, error) {
	resp, err := await(window().Call("fetch", url))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if !resp.Get("ok").Bool() {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.Get("status").Int())
	}
	text, err := await(resp.Call("text"))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	var c content.Content
	if err := json.Unmarshal([]byte(text.String()), &c); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	return &c, nil
}

// debugEnabled reports whether the page was opened with ?debug.
func debugEnabled() bool {
	params := window().Get("URLSearchParams").New(window().Get("location").Get("search"))
	return params.Call("has", "debug").Bool()
}
