package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/hweiming/dispatch-tracker/internal/dispatchlog"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

// Outcome is one finished scan attempt against a known order.
type Outcome struct {
	OrderID string
	orders.ScanOutcome
}

// Recorder is the commit point of a scan: exactly one log entry per attempt,
// plus the order update when the attempt matched. The two writes happen under
// one mutex so a scan's effects appear atomic to readers.
type Recorder struct {
	mu     sync.Mutex
	orders *orders.Store
	log    *dispatchlog.Store
	logg   *logger.Logger
	clock  func() time.Time
}

// RecorderParams wires recorder dependencies.
type RecorderParams struct {
	Orders *orders.Store
	Log    *dispatchlog.Store
	Logger *logger.Logger

	// Clock overrides commit timestamps in tests; nil means time.Now.
	Clock func() time.Time
}

func NewRecorder(params RecorderParams) (*Recorder, error) {
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order store required")
	}
	if params.Log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "log store required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{orders: params.Orders, log: params.Log, logg: params.Logger, clock: clock}, nil
}

// Commit records the attempt and applies the order transition for matches.
// Mismatches only gain a log entry; the order is left untouched.
func (r *Recorder) Commit(ctx context.Context, outcome Outcome) (dispatchlog.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if outcome.Timestamp.IsZero() {
		outcome.Timestamp = r.clock().UTC()
	}

	entry := r.log.Append(dispatchlog.Entry{
		Timestamp:   outcome.Timestamp,
		OrderID:     outcome.OrderID,
		ScannedBy:   outcome.ScannedBy,
		Action:      outcome.Action,
		TruckID:     outcome.TruckID,
		GPSLocation: outcome.GPSLocation,
		ProofImages: outcome.ProofImages,
		Signature:   outcome.Signature,
		IsMatch:     outcome.IsMatch,
	})

	if err := r.orders.ApplyScanResult(outcome.OrderID, outcome.ScanOutcome); err != nil {
		return entry, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply scan result")
	}

	ctx = r.logg.WithFields(ctx, map[string]any{
		"order_id": outcome.OrderID,
		"action":   outcome.Action,
		"is_match": outcome.IsMatch,
	})
	r.logg.Info(ctx, "scan committed")
	return entry, nil
}
