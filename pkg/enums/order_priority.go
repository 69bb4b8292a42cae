package enums

import "fmt"

// OrderPriority ranks how urgently a job should move.
type OrderPriority string

const (
	OrderPriorityUrgent   OrderPriority = "Urgent"
	OrderPriorityStandard OrderPriority = "Standard"
	OrderPriorityLow      OrderPriority = "Low"
)

var validOrderPriorities = []OrderPriority{
	OrderPriorityUrgent,
	OrderPriorityStandard,
	OrderPriorityLow,
}

// String implements fmt.Stringer.
func (o OrderPriority) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderPriority.
func (o OrderPriority) IsValid() bool {
	for _, candidate := range validOrderPriorities {
		if candidate == o {
			return true
		}
	}
	return false
}

// OrDefault returns the priority itself or Standard when unset.
func (o OrderPriority) OrDefault() OrderPriority {
	if o == "" {
		return OrderPriorityStandard
	}
	return o
}

// ParseOrderPriority converts raw input into an OrderPriority.
func ParseOrderPriority(value string) (OrderPriority, error) {
	for _, candidate := range validOrderPriorities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order priority %q", value)
}
