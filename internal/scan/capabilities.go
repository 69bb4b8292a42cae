package scan

import (
	"context"

	"github.com/hweiming/dispatch-tracker/internal/dispatch"
	"github.com/hweiming/dispatch-tracker/internal/dispatchlog"
	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/internal/registry"
)

// The engine consumes host capabilities through these interfaces so real
// camera, signature and location providers can replace the stubs without
// touching the workflow.

// OrderSource resolves scanned or typed codes to orders.
type OrderSource interface {
	Get(code string) (orders.Order, bool)
}

// TruckSource resolves truck ids to fleet reference data.
type TruckSource interface {
	TruckByID(id string) (registry.Truck, bool)
}

// Camera yields one opaque proof-image reference per capture.
type Camera interface {
	Capture(ctx context.Context) (string, error)
}

// SignaturePad yields an opaque signature reference.
type SignaturePad interface {
	Sign(ctx context.Context) (string, error)
}

// Locator yields a GPS location string.
type Locator interface {
	Locate(ctx context.Context) (string, error)
}

// Recorder commits a finished attempt: one log entry, plus the order update
// when the attempt matched.
type Recorder interface {
	Commit(ctx context.Context, outcome dispatch.Outcome) (dispatchlog.Entry, error)
}
