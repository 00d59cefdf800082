package scrollspy

// Store holds the active section id. Only the owning Tracker writes to it;
// everything else reads through Active and Subscribe.
type Store struct {
	active    string
	ok        bool
	listeners map[int]func(id string, ok bool)
	nextID    int
}

func newStore() *Store {
	return &Store{listeners: make(map[int]func(string, bool))}
}

// Active returns the active section id, if any.
func (s *Store) Active() (string, bool) {
	return s.active, s.ok
}

// Subscribe calls fn after every change of the active section.
func (s *Store) Subscribe(fn func(id string, ok bool)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) set(id string) {
	if s.ok && s.active == id {
		return
	}
	s.active, s.ok = id, true
	s.notify()
}

func (s *Store) clear() {
	if !s.ok {
		return
	}
	s.active, s.ok = "", false
	s.notify()
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn(s.active, s.ok)
	}
}
