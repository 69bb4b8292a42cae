package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"go.uber.org/multierr"
)

func TestTruckByID(t *testing.T) {
	reg := Default()

	truck, ok := reg.TruckByID("TRUCK-A")
	if !ok {
		t.Fatal("expected TRUCK-A in the default fleet")
	}
	if truck.Name != "Truck A (North)" {
		t.Fatalf("unexpected truck name %q", truck.Name)
	}

	if _, ok := reg.TruckByID("TRUCK-Z"); ok {
		t.Fatal("unknown truck must not resolve")
	}
}

func TestTruckNameFallsBackToID(t *testing.T) {
	reg := Default()
	if got := reg.TruckName("TRUCK-Z"); got != "TRUCK-Z" {
		t.Fatalf("expected id fallback, got %q", got)
	}
	if got := reg.TruckName("TRUCK-D"); got != "Express Van" {
		t.Fatalf("expected display name, got %q", got)
	}
}

func TestTrucksReturnsCopy(t *testing.T) {
	reg := Default()
	fleet := reg.Trucks()
	fleet[0].Name = "tampered"

	if got := reg.TruckName("TRUCK-A"); got != "Truck A (North)" {
		t.Fatal("mutating the returned fleet must not affect the registry")
	}
}

func TestLoadSeedOrdersBuiltIn(t *testing.T) {
	seed, err := LoadSeedOrders("")
	if err != nil {
		t.Fatalf("LoadSeedOrders: %v", err)
	}
	if len(seed) != 4 {
		t.Fatalf("expected 4 built-in orders, got %d", len(seed))
	}
	if seed[0].ID != "JOB-KL-001" || seed[0].ExpectedTruckID != "TRUCK-A" {
		t.Fatalf("unexpected first seed order %+v", seed[0])
	}
	for _, o := range seed {
		if o.Status != enums.OrderStatusCreated {
			t.Fatalf("seed orders start CREATED, %s is %s", o.ID, o.Status)
		}
	}
}

func TestLoadSeedOrdersFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `[
		{
			"id": "JOB-TST-001",
			"destination": "Ipoh Specialist Centre",
			"expected_truck_id": "TRUCK-D",
			"items": [{"name": "Ceiling Hoist", "qty": 2}]
		}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := LoadSeedOrders(path)
	if err != nil {
		t.Fatalf("LoadSeedOrders: %v", err)
	}
	if len(seed) != 1 {
		t.Fatalf("expected 1 order, got %d", len(seed))
	}
	if seed[0].Status != enums.OrderStatusCreated {
		t.Fatalf("missing status must default to CREATED, got %s", seed[0].Status)
	}
	if seed[0].Priority != enums.OrderPriorityStandard {
		t.Fatalf("missing priority must default to Standard, got %s", seed[0].Priority)
	}
}

func TestLoadSeedOrdersReportsAllProblems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload := `[
		{"id": "", "destination": "", "items": []},
		{"id": "JOB-TST-002", "destination": "Ipoh", "items": [{"name": "", "qty": 0}]}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	_, err := LoadSeedOrders(path)
	if err == nil {
		t.Fatal("expected validation failure")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected a validation error, got %v", err)
	}

	problems := multierr.Errors(typed.Unwrap())
	if len(problems) != 3 {
		t.Fatalf("expected all 3 seed problems reported together, got %d: %v", len(problems), problems)
	}
	joined := typed.Unwrap().Error()
	for _, want := range []string{"missing id", "missing name", "non-positive qty"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected aggregated error to mention %q, got %s", want, joined)
		}
	}
}
