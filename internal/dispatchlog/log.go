package dispatchlog

import (
	"strconv"
	"sync"
	"time"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
)

// Entry is one immutable audit record of a scan attempt, match or mismatch.
// Entries are never updated or deleted.
type Entry struct {
	ID          string           `json:"id"`
	Timestamp   time.Time        `json:"timestamp"`
	OrderID     string           `json:"order_id"`
	ScannedBy   string           `json:"scanned_by"`
	Action      enums.ScanAction `json:"action"`
	TruckID     string           `json:"truck_id,omitempty"` // only for LOAD
	GPSLocation string           `json:"gps_location,omitempty"`
	ProofImages []string         `json:"proof_images,omitempty"`
	Signature   string           `json:"signature,omitempty"`
	IsMatch     bool             `json:"is_match"`
	Notes       string           `json:"notes,omitempty"`
}

func (e Entry) clone() Entry {
	out := e
	if e.ProofImages != nil {
		out.ProofImages = append([]string(nil), e.ProofImages...)
	}
	return out
}

// Store is the append-only scan log. Newest entries sit at the head, so the
// sequence is reverse-chronological by construction.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	lastID  int64
}

func NewStore() *Store {
	return &Store{}
}

// Append prepends the entry and returns the stored copy. An empty ID is
// assigned from the entry timestamp; if two entries land on the same
// nanosecond the reading is bumped so ids stay unique.
func (s *Store) Append(entry Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ID == "" {
		id := entry.Timestamp.UnixNano()
		if id <= s.lastID {
			id = s.lastID + 1
		}
		s.lastID = id
		entry.ID = strconv.FormatInt(id, 10)
	}

	s.entries = append([]Entry{entry.clone()}, s.entries...)
	return entry
}

// All returns a snapshot of the full sequence, most recent first.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.clone())
	}
	return out
}

// ForOrder filters the sequence down to one order's history, preserving the
// most-recent-first ordering. Orders and log entries only associate through
// this id.
func (s *Store) ForOrder(orderID string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.OrderID == orderID {
			out = append(out, e.clone())
		}
	}
	return out
}

// Len reports how many entries have been recorded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
