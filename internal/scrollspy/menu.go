package scrollspy

import "time"

// MenuStagger separates the entrance of successive links in the open menu.
const MenuStagger = 100 * time.Millisecond

// MenuDelay is the entrance delay of the i-th menu link.
func MenuDelay(i int) time.Duration {
	return time.Duration(i) * MenuStagger
}

// Menu is the open state of the small-screen navigation overlay. While it is
// open the page behind it must not scroll.
type Menu struct {
	open      bool
	listeners map[int]func(open bool)
	nextID    int
}

func NewMenu() *Menu {
	return &Menu{listeners: make(map[int]func(bool))}
}

func (m *Menu) IsOpen() bool { return m.open }

func (m *Menu) Toggle() { m.set(!m.open) }

func (m *Menu) Open() { m.set(true) }

func (m *Menu) Close() { m.set(false) }

// Select follows a menu link: the menu closes and the section id the link
// targets is returned, if it points into the page.
func (m *Menu) Select(href string) (id string, ok bool) {
	m.Close()
	id = SectionID(href)
	return id, id != ""
}

// OnChange calls fn after the menu opens or closes.
func (m *Menu) OnChange(fn func(open bool)) (unsubscribe func()) {
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	return func() { delete(m.listeners, id) }
}

func (m *Menu) set(open bool) {
	if m.open == open {
		return
	}
	m.open = open
	for _, fn := range m.listeners {
		fn(open)
	}
}
