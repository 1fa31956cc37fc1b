// Package scroll decides whether the viewport follows new timeline entries.
// Only chat entries ever move the viewport; presence and typing churn never
// do.
package scroll

import "sync"

// DefaultTolerance is the pixel slack under which the viewport still counts
// as "at bottom". Sub-pixel layout makes the exact bottom rarely reachable.
const DefaultTolerance = 24.0

// Stick implements the stickiness policy: a reader who is caught up stays
// caught up, a reader scrolled into history is never yanked down. New
// entries arriving while scrolled up surface a "new messages" affordance
// instead.
type Stick struct {
	mu        sync.Mutex
	tolerance float64
	atBottom  bool
	pending   int
}

func NewStick(tolerance float64) *Stick {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	// An empty viewport starts caught up.
	return &Stick{tolerance: tolerance, atBottom: true}
}

// Update records the viewport geometry after a user scroll. Reaching the
// bottom again clears the pending affordance.
func (s *Stick) Update(offset, viewportHeight, contentHeight float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.atBottom = contentHeight-(offset+viewportHeight) <= s.tolerance
	if s.atBottom {
		s.pending = 0
	}
}

// OnAppend is called when a new entry lands in the visible timeline.
// It reports whether the viewport should auto-advance, based on the
// position held immediately before the append.
func (s *Stick) OnAppend() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.atBottom {
		return true
	}
	s.pending++
	return false
}

// ShouldAutoScroll reports the current stickiness.
func (s *Stick) ShouldAutoScroll() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.atBottom
}

// PendingNew is the number of entries that arrived while scrolled up,
// shown by the "new messages" affordance.
func (s *Stick) PendingNew() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// JumpToBottom is the explicit user request from the affordance.
func (s *Stick) JumpToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.atBottom = true
	s.pending = 0
}
