package services

import (
	"fmt"

	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/pkg/errs"
)

// ShipmentBuilder fills a shipment with every ship-enabled line of an order.
//
// Business rules:
//   - the shipment must belong to the order
//   - lines that are not ship-enabled are skipped
//   - each line ships its full quantity from the default warehouse
//   - the shipment total weight is Σ(weight × quantity) over lines with a known weight
//   - a shipment with no lines is rejected with shipment.ErrNothingToShip
//
// Example usage:
//
//	builder := services.NewShipmentBuilder()
//	s, _ := shipment.NewShipment(o.ID(), trackingNumber, adminComment, now)
//
//	items, err := builder.Build(o, orderItems, s)
//	if errors.Is(err, shipment.ErrNothingToShip) {
//	    // the order has no physical goods
//	}
type ShipmentBuilder struct{}

// NewShipmentBuilder creates a new ShipmentBuilder instance.
func NewShipmentBuilder() ShipmentBuilder {
	return ShipmentBuilder{}
}

// Build adds one shipment item per ship-enabled order line and returns the created items.
//
// Parameters:
//   - o: the order being shipped (must be valid)
//   - lines: the order's lines, normally o.Items() or the ship-enabled subset loaded by the repository
//   - s: an empty shipment created for o
//
// Returns:
//   - []*shipment.Item: the items added to s, in line order
//   - error: shipment.ErrNothingToShip when no line is ship-enabled, or validation errors
func (b ShipmentBuilder) Build(o *order.Order, lines []*order.Item, s *shipment.Shipment) ([]*shipment.Item, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if !s.OrderID().IsEqual(o.ID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"shipment",
			fmt.Errorf("shipment %s belongs to order %s, not %s", s.ID(), s.OrderID(), o.ID()),
		)
	}

	items := make([]*shipment.Item, 0, len(lines))
	for _, line := range lines {
		if !line.IsShipEnabled() {
			continue
		}

		item, err := s.AddItem(line.ID(), line.Quantity(), line.Weight())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, shipment.ErrNothingToShip
	}

	return items, nil
}
