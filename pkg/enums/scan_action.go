package enums

import "fmt"

// ScanAction is the operation a driver performs against an order code.
type ScanAction string

const (
	ScanActionPickup ScanAction = "PICKUP"
	ScanActionLoad   ScanAction = "LOAD"
)

var validScanActions = []ScanAction{
	ScanActionPickup,
	ScanActionLoad,
}

// String implements fmt.Stringer.
func (s ScanAction) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ScanAction.
func (s ScanAction) IsValid() bool {
	for _, candidate := range validScanActions {
		if candidate == s {
			return true
		}
	}
	return false
}

// TargetStatus returns the order status a matching scan with this action
// produces.
func (s ScanAction) TargetStatus() OrderStatus {
	if s == ScanActionPickup {
		return OrderStatusPickedUp
	}
	return OrderStatusLoaded
}

// ParseScanAction converts raw input into a ScanAction.
func ParseScanAction(value string) (ScanAction, error) {
	for _, candidate := range validScanActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid scan action %q", value)
}
