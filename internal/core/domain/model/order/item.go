package order

import (
	"errors"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
)

// Item is one order line. Weight is nil when the product has no known weight.
type Item struct {
	id            kernel.UUID
	orderID       kernel.UUID
	productID     kernel.UUID
	quantity      int
	weight        *kernel.Weight
	isShipEnabled bool
	attributesXML string
	rentalStart   *time.Time
	rentalEnd     *time.Time
}

// ItemParams carries the values of a new order line.
type ItemParams struct {
	ProductID     kernel.UUID
	Quantity      int
	Weight        *kernel.Weight
	IsShipEnabled bool
	AttributesXML string
	RentalStart   *time.Time
	RentalEnd     *time.Time
}

// NewItem validates params and assigns a fresh identifier.
// The owning order is set when the item is attached by NewOrder.
func NewItem(params ItemParams) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), kernel.UUID{}, params)
}

// RestoreItem rebuilds a persisted order line.
func RestoreItem(id, orderID kernel.UUID, params ItemParams) (*Item, error) {
	if err := errors.Join(id.Validate(), params.ProductID.Validate()); err != nil {
		return nil, err
	}
	if params.Quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", params.Quantity))
	}
	return &Item{
		id:            id,
		orderID:       orderID,
		productID:     params.ProductID,
		quantity:      params.Quantity,
		weight:        params.Weight,
		isShipEnabled: params.IsShipEnabled,
		attributesXML: params.AttributesXML,
		rentalStart:   params.RentalStart,
		rentalEnd:     params.RentalEnd,
	}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) OrderID() kernel.UUID { return i.orderID }
func (i *Item) ProductID() kernel.UUID { return i.productID }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) Weight() *kernel.Weight { return i.weight }
func (i *Item) IsShipEnabled() bool { return i.isShipEnabled }
func (i *Item) AttributesXML() string { return i.attributesXML }
func (i *Item) RentalStart() *time.Time { return i.rentalStart }
func (i *Item) RentalEnd() *time.Time { return i.rentalEnd }

// TotalWeight is weight × quantity; ok is false when the weight is unknown.
func (i *Item) TotalWeight() (kernel.Weight, bool) {
	if i.weight == nil {
		return kernel.Weight{}, false
	}
	return i.weight.Times(i.quantity), true
}
