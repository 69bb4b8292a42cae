package orders

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/hweiming/dispatch-tracker/pkg/enums"
	pkgerrors "github.com/hweiming/dispatch-tracker/pkg/errors"
	"github.com/hweiming/dispatch-tracker/pkg/logger"
)

// maxIDAttempts bounds how often Create retries the 4-digit job id space
// before giving up with a conflict.
const maxIDAttempts = 10

// Service defines the order operations the dashboard exposes.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store *Store
	log   *logger.Logger
	newID func() string
}

// ServiceParams wires order service dependencies.
type ServiceParams struct {
	Store  *Store
	Logger *logger.Logger

	// NewID overrides job id generation; nil means the JOB-#### default.
	NewID func() string
}

func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order store required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	newID := params.NewID
	if newID == nil {
		newID = randomJobID
	}
	return &service{store: params.Store, log: params.Logger, newID: newID}, nil
}

// CreateItemInput is one manifest line of a new order.
type CreateItemInput struct {
	Name         string `json:"name"`
	Qty          int    `json:"qty" validate:"gte=0"`
	SKU          string `json:"sku"`
	UoM          string `json:"uom"`
	Description  string `json:"description"`
	BatchNumber  string `json:"batch_number"`
	ExpiryDate   string `json:"expiry_date"`
	SerialNumber string `json:"serial_number"`
}

// CreateOrderInput captures the dashboard's new-order form.
type CreateOrderInput struct {
	Destination     string              `json:"destination" validate:"required"`
	Address         string              `json:"address"`
	Priority        enums.OrderPriority `json:"priority"`
	ExpectedTruckID string              `json:"expected_truck_id" validate:"required"`
	Notes           string              `json:"notes"`
	Items           []CreateItemInput   `json:"items" validate:"required,dive"`
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if input.Priority != "" && !input.Priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid priority %q", input.Priority))
	}

	items := filterItems(input.Items)
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one named item required")
	}

	order := Order{
		Destination:     strings.TrimSpace(input.Destination),
		Address:         strings.TrimSpace(input.Address),
		Priority:        input.Priority.OrDefault(),
		Status:          enums.OrderStatusCreated,
		ExpectedTruckID: input.ExpectedTruckID,
		Items:           items,
		Notes:           strings.TrimSpace(input.Notes),
	}

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		order.ID = s.newID()
		if err = s.store.Add(order); err == nil {
			ctx = s.log.WithOrderID(ctx, order.ID)
			s.log.Info(ctx, "order created")
			return &order, nil
		}
		if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
			return nil, err
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "job id space exhausted")
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !s.store.Remove(id) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("order %s not found", id))
	}
	ctx = s.log.WithOrderID(ctx, id)
	s.log.Info(ctx, "order deleted")
	return nil
}

// filterItems drops lines whose name is blank after trimming and defaults the
// quantity of surviving lines to 1, matching the dashboard form behaviour.
func filterItems(inputs []CreateItemInput) []BoxItem {
	items := make([]BoxItem, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		qty := in.Qty
		if qty == 0 {
			qty = 1
		}
		items = append(items, BoxItem{
			Name:         name,
			Qty:          qty,
			SKU:          strings.TrimSpace(in.SKU),
			UoM:          strings.TrimSpace(in.UoM),
			Description:  strings.TrimSpace(in.Description),
			BatchNumber:  strings.TrimSpace(in.BatchNumber),
			ExpiryDate:   strings.TrimSpace(in.ExpiryDate),
			SerialNumber: strings.TrimSpace(in.SerialNumber),
		})
	}
	return items
}

// randomJobID mirrors the original JOB-#### format: four random digits, never
// starting with zero. Collisions are handled by the caller's retry loop.
func randomJobID() string {
	return fmt.Sprintf("JOB-%d", 1000+rand.Intn(9000))
}
