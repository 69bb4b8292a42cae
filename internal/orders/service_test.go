package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

func newTestService(t *testing.T, store *Store, newID func() string) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Store:  store,
		Logger: logger.New(logger.Options{ServiceName: "orders-test"}),
		NewID:  newID,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateFiltersUnnamedItems(t *testing.T) {
	store := NewStore(nil)
	svc := newTestService(t, store, nil)

	order, err := svc.Create(context.Background(), CreateOrderInput{
		Destination:     "Penang General",
		ExpectedTruckID: "TRUCK-C",
		Items: []CreateItemInput{
			{Name: "Reception Desk Legs", Qty: 4},
			{Name: "   "},
			{Name: "Table Top"},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("expected blank-named items filtered, got %d items", len(order.Items))
	}
	if order.Items[1].Qty != 1 {
		t.Fatalf("expected qty to default to 1, got %d", order.Items[1].Qty)
	}
	if order.Status != enums.OrderStatusCreated {
		t.Fatalf("new orders start CREATED, got %s", order.Status)
	}
	if order.Priority != enums.OrderPriorityStandard {
		t.Fatalf("priority defaults to Standard, got %s", order.Priority)
	}
	if !strings.HasPrefix(order.ID, "JOB-") || len(order.ID) != len("JOB-0000") {
		t.Fatalf("unexpected job id %q", order.ID)
	}
	if store.Len() != 1 {
		t.Fatalf("expected exactly one new order in the store, got %d", store.Len())
	}
}

func TestCreateRequiresDestinationAndTruck(t *testing.T) {
	svc := newTestService(t, NewStore(nil), nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Items: []CreateItemInput{{Name: "Duct Tape"}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", pkgerrors.As(err).Details())
	}
	if details["destination"] == "" || details["expected_truck_id"] == "" {
		t.Fatalf("expected both missing fields reported, got %v", details)
	}
}

func TestCreateRequiresOneNamedItem(t *testing.T) {
	svc := newTestService(t, NewStore(nil), nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Destination:     "Penang General",
		ExpectedTruckID: "TRUCK-C",
		Items:           []CreateItemInput{{Name: "  "}, {Name: ""}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for all-blank items, got %v", err)
	}
}

func TestCreateRejectsUnknownPriority(t *testing.T) {
	svc := newTestService(t, NewStore(nil), nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Destination:     "Penang General",
		ExpectedTruckID: "TRUCK-C",
		Priority:        enums.OrderPriority("Whenever"),
		Items:           []CreateItemInput{{Name: "Duct Tape"}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateExhaustsIDSpace(t *testing.T) {
	store := NewStore(nil)
	svc := newTestService(t, store, func() string { return "JOB-1234" })

	if _, err := svc.Create(context.Background(), CreateOrderInput{
		Destination:     "Subang Jaya Med Center",
		ExpectedTruckID: "TRUCK-B",
		Items:           []CreateItemInput{{Name: "Surgical Light Kit"}},
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateOrderInput{
		Destination:     "Subang Jaya Med Center",
		ExpectedTruckID: "TRUCK-B",
		Items:           []CreateItemInput{{Name: "Surgical Light Kit"}},
	})
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict once the generator repeats ids, got %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("failed create must not leave partial orders, got %d", store.Len())
	}
}

func TestDelete(t *testing.T) {
	store := NewStore([]Order{testOrder("JOB-1000")})
	svc := newTestService(t, store, nil)

	if err := svc.Delete(context.Background(), "JOB-9999"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := svc.Delete(context.Background(), "JOB-1000"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}
