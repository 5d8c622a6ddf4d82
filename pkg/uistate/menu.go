// Package uistate models the page-level interaction state of the ordering
// site — the mobile navigation menu, active-section tracking and per-field
// form state — as plain components with injected handles and observer
// registration returning disposer callbacks, so any host (tests included)
// can drive them without a DOM.
package uistate

import "sync"

// NavMenu is the binary open/closed state of the mobile navigation menu.
// Page scroll is locked exactly while the menu is open.
type NavMenu struct {
	mu        sync.Mutex
	open      bool
	nextSub   int
	observers map[int]func(open bool)
}

func NewNavMenu() *NavMenu {
	return &NavMenu{observers: make(map[int]func(bool))}
}

// Subscribe registers an observer and returns its disposer.
func (m *NavMenu) Subscribe(fn func(open bool)) (dispose func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.observers[id] = fn

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.observers, id)
	}
}

func (m *NavMenu) Toggle() {
	m.set(!m.IsOpen())
}

// Navigate closes the menu, as clicking any navigation link does.
func (m *NavMenu) Navigate() {
	m.set(false)
}

// OutsideClick closes the menu when the click lands outside the menu region.
func (m *NavMenu) OutsideClick(insideMenu bool) {
	if !insideMenu {
		m.set(false)
	}
}

func (m *NavMenu) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.open
}

// ScrollLocked reports whether page scroll is locked; it tracks open state.
func (m *NavMenu) ScrollLocked() bool {
	return m.IsOpen()
}

func (m *NavMenu) set(open bool) {
	m.mu.Lock()

	if m.open == open {
		m.mu.Unlock()
		return
	}
	m.open = open

	observers := make([]func(bool), 0, len(m.observers))
	for _, fn := range m.observers {
		observers = append(observers, fn)
	}
	m.mu.Unlock()

	for _, fn := range observers {
		fn(open)
	}
}
