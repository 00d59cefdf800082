package scrollspy

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"
)

// Tracker keeps the active section in sync with observer callbacks.
//
// When several sections enter the band in the same frame, the last entry
// delivered wins. The band is narrow enough that this is rare and no further
// ordering is imposed.
type Tracker struct {
	observer   Observer
	store      *Store
	logger     *log.Logger
	registered map[string]struct{}
	unsubs     []func()
	mounted    bool
	closed     bool
}

// NewTracker returns a tracker over observer. A nil logger discards output.
func NewTracker(observer Observer, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tracker{
		observer:   observer,
		store:      newStore(),
		logger:     logger,
		registered: make(map[string]struct{}),
	}
}

// Store returns the read side of the active section state.
func (t *Tracker) Store() *Store { return t.store }

// Register subscribes to every section. It is meant to be called once at
// mount; later calls are ignored. Sections that cannot be located are
// skipped: a navigation link pointing at them is simply never highlighted.
func (t *Tracker) Register(sections []Section) {
	if t.mounted || t.closed {
		t.logger.Warn("scrollspy: register called twice, ignoring")
		return
	}
	t.mounted = true

	for _, s := range sections {
		if _, dup := t.registered[s.ID]; dup {
			continue
		}
		unsub, err := t.observer.Subscribe(s, t.observe)
		if err != nil {
			if errors.Is(err, ErrNoElement) {
				t.logger.Debug("scrollspy: section not rendered", "id", s.ID)
			} else {
				t.logger.Debug("scrollspy: observe failed", "id", s.ID, "err", err)
			}
			continue
		}
		t.registered[s.ID] = struct{}{}
		t.unsubs = append(t.unsubs, unsub)
	}
	t.logger.Debug("scrollspy: registered", "sections", len(t.registered), "requested", len(sections))
}

// Registered reports whether id is observed by the tracker.
func (t *Tracker) Registered(id string) bool {
	_, ok := t.registered[id]
	return ok
}

func (t *Tracker) observe(e Entry) {
	if t.closed || !e.Intersecting {
		return
	}
	if _, ok := t.registered[e.ID]; !ok {
		return
	}
	t.store.set(e.ID)
}

// Close releases every subscription and discards the active section.
func (t *Tracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	for _, unsub := range t.unsubs {
		unsub()
	}
	t.unsubs = nil
	t.store.clear()
}
