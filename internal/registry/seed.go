package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hweiming/dispatch-tracker/internal/orders"
	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"go.uber.org/multierr"
)

// LoadSeedOrders reads the startup order set. An empty path selects the
// built-in seed data.
func LoadSeedOrders(path string) ([]orders.Order, error) {
	if path == "" {
		return SeedOrders(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read seed file")
	}
	var seed []orders.Order
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse seed file")
	}
	if err := validateSeed(seed); err != nil {
		return nil, err
	}
	for i := range seed {
		if seed[i].Status == "" {
			seed[i].Status = enums.OrderStatusCreated
		}
		seed[i].Priority = seed[i].Priority.OrDefault()
	}
	return seed, nil
}

// validateSeed checks every seed order and reports all problems at once
// rather than stopping at the first.
func validateSeed(seed []orders.Order) error {
	var errs error
	seen := map[string]bool{}
	for i, o := range seed {
		if o.ID == "" {
			errs = multierr.Append(errs, fmt.Errorf("seed order %d: missing id", i))
			continue
		}
		if seen[o.ID] {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: duplicate id", o.ID))
		}
		seen[o.ID] = true
		if o.Destination == "" {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: missing destination", o.ID))
		}
		if len(o.Items) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: no items", o.ID))
		}
		for j, item := range o.Items {
			if item.Name == "" {
				errs = multierr.Append(errs, fmt.Errorf("seed order %s: item %d missing name", o.ID, j))
			}
			if item.Qty < 1 {
				errs = multierr.Append(errs, fmt.Errorf("seed order %s: item %d non-positive qty", o.ID, j))
			}
		}
		if o.Status != "" && !o.Status.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: invalid status %q", o.ID, o.Status))
		}
		if o.Priority != "" && !o.Priority.IsValid() {
			errs = multierr.Append(errs, fmt.Errorf("seed order %s: invalid priority %q", o.ID, o.Priority))
		}
	}
	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid seed data")
	}
	return nil
}

// SeedOrders returns the built-in demo jobs.
func SeedOrders() []orders.Order {
	return []orders.Order{
		{
			ID:              "JOB-KL-001",
			Destination:     "General Hospital KL - OT Room 3",
			Address:         "Jalan Pahang, 50586 Kuala Lumpur, Wilayah Persekutuan",
			Priority:        enums.OrderPriorityUrgent,
			Status:          enums.OrderStatusCreated,
			ExpectedTruckID: "TRUCK-A",
			Notes:           "Fragile items. Handle with care.",
			Items: []orders.BoxItem{
				{
					Name:        "Medical Gas Alarm Panel",
					Qty:         1,
					SKU:         "MG-ALM-001",
					UoM:         "Unit",
					Description: "Zone 3 Area Alarm",
					BatchNumber: "B-2023-99",
					ExpiryDate:  "N/A",
				},
				{
					Name:        "Copper Pipes 15mm",
					Qty:         20,
					SKU:         "CP-15MM-X",
					UoM:         "Length",
					Description: "Medical Grade Copper Type L",
					BatchNumber: "CP-99281",
				},
			},
		},
		{
			ID:              "JOB-SJ-102",
			Destination:     "Subang Jaya Med Center",
			Address:         "1, Jalan SS 12/1A, 47500 Subang Jaya, Selangor",
			Priority:        enums.OrderPriorityStandard,
			Status:          enums.OrderStatusCreated,
			ExpectedTruckID: "TRUCK-B",
			Items: []orders.BoxItem{
				{
					Name:         "Surgical Light Kit",
					Qty:          1,
					SKU:          "SL-KIT-LED",
					UoM:          "Set",
					Description:  "Dual Head LED Surgical Light",
					SerialNumber: "SN: 9982-1120-AA",
					ExpiryDate:   "2030-12-31",
				},
			},
		},
		{
			ID:              "JOB-KL-003",
			Destination:     "General Hospital KL - Ward 4",
			Address:         "Jalan Pahang, 50586 Kuala Lumpur, Wilayah Persekutuan",
			Priority:        enums.OrderPriorityStandard,
			Status:          enums.OrderStatusCreated,
			ExpectedTruckID: "TRUCK-A",
			Items: []orders.BoxItem{
				{Name: "HVAC Filters", Qty: 12, SKU: "FIL-HEPA-04", UoM: "Box", Description: "HEPA Filters 24x24"},
				{Name: "Duct Tape", Qty: 5, SKU: "MSC-TAPE", UoM: "Roll"},
			},
		},
		{
			ID:              "JOB-PN-104",
			Destination:     "Penang General",
			Address:         "Jalan Residensi, 10990 George Town, Pulau Pinang",
			Priority:        enums.OrderPriorityLow,
			Status:          enums.OrderStatusCreated,
			ExpectedTruckID: "TRUCK-C",
			Items: []orders.BoxItem{
				{Name: "Reception Desk Legs", Qty: 4, SKU: "FUR-DSK-LG", UoM: "Pcs"},
				{Name: "Table Top", Qty: 1, SKU: "FUR-DSK-TP", UoM: "Unit"},
			},
		},
	}
}
