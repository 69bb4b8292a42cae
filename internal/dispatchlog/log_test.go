package dispatchlog

import (
	"testing"
	"time"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
)

func TestAppendPrepends(t *testing.T) {
	store := NewStore()

	e1 := store.Append(Entry{OrderID: "JOB-KL-001", Action: enums.ScanActionPickup, IsMatch: true})
	e2 := store.Append(Entry{OrderID: "JOB-SJ-102", Action: enums.ScanActionLoad, IsMatch: false})

	all := store.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(all))
	}
	if all[0].ID != e2.ID || all[1].ID != e1.ID {
		t.Fatalf("expected most-recent-first ordering, got [%s %s]", all[0].ID, all[1].ID)
	}
}

func TestAppendAssignsUniqueIDsForSameTimestamp(t *testing.T) {
	store := NewStore()
	at := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

	e1 := store.Append(Entry{OrderID: "JOB-KL-001", Timestamp: at})
	e2 := store.Append(Entry{OrderID: "JOB-KL-001", Timestamp: at})

	if e1.ID == "" || e2.ID == "" {
		t.Fatal("expected ids to be assigned")
	}
	if e1.ID == e2.ID {
		t.Fatalf("same-nanosecond entries must not share an id, both got %s", e1.ID)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Append(Entry{OrderID: "JOB-KL-001", ProofImages: []string{"img://proof/1.jpg"}})

	all := store.All()
	all[0].ProofImages[0] = "tampered"
	all[0].OrderID = "tampered"

	again := store.All()
	if again[0].ProofImages[0] != "img://proof/1.jpg" || again[0].OrderID != "JOB-KL-001" {
		t.Fatal("mutating a snapshot must not affect the store")
	}
}

func TestForOrder(t *testing.T) {
	store := NewStore()
	store.Append(Entry{OrderID: "JOB-KL-001", Action: enums.ScanActionPickup})
	store.Append(Entry{OrderID: "JOB-SJ-102", Action: enums.ScanActionLoad})
	store.Append(Entry{OrderID: "JOB-KL-001", Action: enums.ScanActionLoad})

	history := store.ForOrder("JOB-KL-001")
	if len(history) != 2 {
		t.Fatalf("expected 2 entries for the order, got %d", len(history))
	}
	if history[0].Action != enums.ScanActionLoad || history[1].Action != enums.ScanActionPickup {
		t.Fatal("per-order history must stay most-recent-first")
	}
	if got := store.ForOrder("JOB-XX-999"); len(got) != 0 {
		t.Fatalf("expected no history for unknown order, got %d", len(got))
	}
}
