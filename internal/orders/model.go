package orders

import (
	"strings"
	"time"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
)

// BoxItem is one line of an order's manifest. It is owned by its parent order
// and has no identity beyond its position in the item list.
type BoxItem struct {
	Name         string `json:"name"`
	Qty          int    `json:"qty"`
	SKU          string `json:"sku,omitempty"`
	UoM          string `json:"uom,omitempty"`
	Description  string `json:"description,omitempty"`
	BatchNumber  string `json:"batch_number,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// Order is a dispatch job: one delivery or pickup with a destination, a
// manifest, and a status that only moves via a matching scan.
type Order struct {
	ID              string              `json:"id"`
	Destination     string              `json:"destination"`
	Address         string              `json:"address,omitempty"`
	Priority        enums.OrderPriority `json:"priority,omitempty"`
	Status          enums.OrderStatus   `json:"status"`
	ExpectedTruckID string              `json:"expected_truck_id"`
	Items           []BoxItem           `json:"items"`
	Notes           string              `json:"notes,omitempty"`

	LastAction    enums.ScanAction `json:"last_action,omitempty"`
	LastScannedAt time.Time        `json:"last_scanned_at,omitzero"`
	LastScannedBy string           `json:"last_scanned_by,omitempty"`
	ProofImages   []string         `json:"proof_images,omitempty"`
	Signature     string           `json:"signature,omitempty"`
}

// Clone returns a deep copy so store reads never alias store-owned slices.
func (o Order) Clone() Order {
	out := o
	if o.Items != nil {
		out.Items = append([]BoxItem(nil), o.Items...)
	}
	if o.ProofImages != nil {
		out.ProofImages = append([]string(nil), o.ProofImages...)
	}
	return out
}

// MatchesCode reports whether a scanned or typed code identifies this order.
// Codes are matched case-insensitively after trimming, so hand-typed ids with
// stray whitespace or lowercase still resolve.
func (o Order) MatchesCode(code string) bool {
	return strings.EqualFold(strings.TrimSpace(o.ID), strings.TrimSpace(code))
}

// ScanOutcome is what a completed scan attempt reports back to the stores.
type ScanOutcome struct {
	Action      enums.ScanAction
	IsMatch     bool
	Timestamp   time.Time
	ScannedBy   string
	TruckID     string // set only for LOAD scans
	GPSLocation string
	ProofImages []string
	Signature   string
}
