package scan

import (
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/pkg/enums"
)

// Read-side accessors for whatever renders the session. Everything returns
// copies; the session keeps sole ownership of its fields.

// ID identifies the current logical session; it changes on every reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// State returns the current workflow state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Feedback returns the user-facing outcome message, if any.
func (s *Session) Feedback() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback
}

// Order returns a copy of the order under scan.
func (s *Session) Order() (orders.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.order == nil {
		return orders.Order{}, false
	}
	return s.order.Clone(), true
}

// Action returns the selected scan action, empty until chosen.
func (s *Session) Action() enums.ScanAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.action
}

// SelectedTruck returns the truck chosen in the current session.
func (s *Session) SelectedTruck() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.truckID
}

// ItemChecked reports whether manifest line i has been verified.
func (s *Session) ItemChecked(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.checked[i]
	return ok
}

// CheckedCount returns how many manifest lines are verified.
func (s *Session) CheckedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checked)
}

// ProofImages returns the captured proof references in capture order.
func (s *Session) ProofImages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.proof...)
}

// Signed reports whether a signature artifact has been captured.
func (s *Session) Signed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.signature != ""
}
