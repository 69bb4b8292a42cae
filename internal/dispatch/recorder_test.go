package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/hweiming/dispatch-tracker/internal/dispatchlog"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/pkg/enums"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

func newTestRecorder(t *testing.T, seed []orders.Order) (*Recorder, *orders.Store, *dispatchlog.Store) {
	t.Helper()

	store := orders.NewStore(seed)
	logStore := dispatchlog.NewStore()
	rec, err := NewRecorder(RecorderParams{
		Orders: store,
		Log:    logStore,
		Logger: logger.New(logger.Options{ServiceName: "dispatch-test"}),
		Clock:  func() time.Time { return time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	return rec, store, logStore
}

func seedOrder() orders.Order {
	return orders.Order{
		ID:              "JOB-KL-001",
		Destination:     "General Hospital KL",
		Status:          enums.OrderStatusCreated,
		ExpectedTruckID: "TRUCK-A",
		Items:           []orders.BoxItem{{Name: "Copper Pipes 15mm", Qty: 20}},
	}
}

func TestCommitMismatchOnlyLogs(t *testing.T) {
	rec, store, logStore := newTestRecorder(t, []orders.Order{seedOrder()})

	entry, err := rec.Commit(context.Background(), Outcome{
		OrderID: "JOB-KL-001",
		ScanOutcome: orders.ScanOutcome{
			Action:    enums.ScanActionLoad,
			IsMatch:   false,
			ScannedBy: "Ali (Driver)",
			TruckID:   "TRUCK-B",
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if entry.IsMatch || entry.TruckID != "TRUCK-B" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if logStore.Len() != 1 {
		t.Fatalf("expected one log entry, got %d", logStore.Len())
	}

	order, _ := store.Get("JOB-KL-001")
	if order.Status != enums.OrderStatusCreated || order.LastScannedBy != "" {
		t.Fatalf("mismatch commit must not touch the order: %+v", order)
	}
}

func TestCommitMatchUpdatesOrderAndLogAtomically(t *testing.T) {
	rec, store, logStore := newTestRecorder(t, []orders.Order{seedOrder()})

	entry, err := rec.Commit(context.Background(), Outcome{
		OrderID: "JOB-KL-001",
		ScanOutcome: orders.ScanOutcome{
			Action:      enums.ScanActionLoad,
			IsMatch:     true,
			ScannedBy:   "Ali (Driver)",
			TruckID:     "TRUCK-A",
			GPSLocation: "3.1390° N, 101.6869° E",
			ProofImages: []string{"img://proof/1.jpg"},
			Signature:   "signed",
		},
	})
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	want := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	if !entry.Timestamp.Equal(want) {
		t.Fatalf("expected clock-stamped commit, got %v", entry.Timestamp)
	}
	if logStore.Len() != 1 {
		t.Fatalf("expected one entry, got %d", logStore.Len())
	}

	order, _ := store.Get("JOB-KL-001")
	if order.Status != enums.OrderStatusLoaded {
		t.Fatalf("expected LOADED, got %s", order.Status)
	}
	if !order.LastScannedAt.Equal(want) || order.LastScannedBy != "Ali (Driver)" {
		t.Fatalf("last-scan metadata mismatch: %+v", order)
	}
}

func TestCommitMatchUnknownOrderStillLogsTheAttempt(t *testing.T) {
	rec, _, logStore := newTestRecorder(t, nil)

	_, err := rec.Commit(context.Background(), Outcome{
		OrderID:     "JOB-XX-999",
		ScanOutcome: orders.ScanOutcome{Action: enums.ScanActionPickup, IsMatch: true},
	})
	if err == nil {
		t.Fatal("expected an error for a vanished order")
	}
	if logStore.Len() != 1 {
		t.Fatalf("the attempt itself is still audit-logged, got %d entries", logStore.Len())
	}
}
