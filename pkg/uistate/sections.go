package uistate

import "sync"

// Section is one page region a navigation link points at, described by its
// vertical extent in document coordinates.
type Section struct {
	ID     string
	Top    float64
	Height float64
}

// SectionTracker marks the section containing the viewport's vertical
// midpoint as active. Before any viewport has been observed no section is
// active; afterwards exactly one link stays active, even between sections
// (the last active one is kept).
type SectionTracker struct {
	mu       sync.Mutex
	sections []Section
	active   string
	observed bool
}

func NewSectionTracker(sections ...Section) *SectionTracker {
	return &SectionTracker{sections: sections}
}

func (t *SectionTracker) AddSection(s Section) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.sections = append(t.sections, s)
}

// Observe processes a viewport position and returns the active section ID.
func (t *SectionTracker) Observe(scrollTop, viewportHeight float64) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	midpoint := scrollTop + viewportHeight/2

	for _, s := range t.sections {
		if midpoint >= s.Top && midpoint < s.Top+s.Height {
			t.active = s.ID
			t.observed = true
			break
		}
	}

	return t.active
}

// Active returns the current active section ID and whether any section has
// been observed yet.
func (t *SectionTracker) Active() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.active, t.observed
}
