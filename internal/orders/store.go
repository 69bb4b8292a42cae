package orders

import (
	"fmt"
	"sync"

	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
)

// Store owns the session-lived order collection. The app itself is driven by
// a single operator, but every access still goes through the mutex so order
// updates and reads stay atomic if a concurrent host embeds the store.
type Store struct {
	mu     sync.RWMutex
	orders []Order
}

func NewStore(seed []Order) *Store {
	s := &Store{}
	for _, o := range seed {
		s.orders = append(s.orders, o.Clone())
	}
	return s
}

// Add appends a new order. The caller is responsible for validating fields;
// the store only refuses duplicate ids.
func (s *Store) Add(order Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.MatchesCode(order.ID) {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("order %s already exists", order.ID))
		}
	}
	s.orders = append(s.orders, order.Clone())
	return nil
}

// Remove deletes the order with the given id and reports whether anything was
// removed. Removing an unknown id is a no-op.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.orders {
		if existing.MatchesCode(id) {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			return true
		}
	}
	return false
}

// Get resolves a scanned or typed code to an order snapshot.
func (s *Store) Get(code string) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, existing := range s.orders {
		if existing.MatchesCode(code) {
			return existing.Clone(), true
		}
	}
	return Order{}, false
}

// List returns a snapshot of all orders in insertion order.
func (s *Store) List() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.orders))
	for _, existing := range s.orders {
		out = append(out, existing.Clone())
	}
	return out
}

// Len reports the number of orders held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// ApplyScanResult is the single mutation path for order status. A non-match
// leaves the store untouched. A match moves the status to the action's target
// and overwrites the last-scan metadata unconditionally.
func (s *Store) ApplyScanResult(id string, outcome ScanOutcome) error {
	if !outcome.IsMatch {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if !s.orders[i].MatchesCode(id) {
			continue
		}
		o := &s.orders[i]
		o.Status = outcome.Action.TargetStatus()
		o.LastAction = outcome.Action
		o.LastScannedAt = outcome.Timestamp
		o.LastScannedBy = outcome.ScannedBy
		o.ProofImages = append([]string(nil), outcome.ProofImages...)
		o.Signature = outcome.Signature
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
}
