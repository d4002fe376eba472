package shipment

import (
	"errors"
	"fmt"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
)

// Item is one shipped order line.
type Item struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	orderItemID kernel.UUID
	quantity    int
	warehouseID int
}

func NewItem(shipmentID, orderItemID kernel.UUID, quantity int) (*Item, error) {
	return RestoreItem(kernel.NewUUID(), shipmentID, orderItemID, quantity, 0)
}

func RestoreItem(id, shipmentID, orderItemID kernel.UUID, quantity, warehouseID int) (*Item, error) {
	if err := errors.Join(id.Validate(), shipmentID.Validate(), orderItemID.Validate()); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &Item{
		id:          id,
		shipmentID:  shipmentID,
		orderItemID: orderItemID,
		quantity:    quantity,
		warehouseID: warehouseID,
	}, nil
}

func (i *Item) ID() kernel.UUID { return i.id }
func (i *Item) ShipmentID() kernel.UUID { return i.shipmentID }
func (i *Item) OrderItemID() kernel.UUID { return i.orderItemID }
func (i *Item) Quantity() int { return i.quantity }
func (i *Item) WarehouseID() int { return i.warehouseID }
