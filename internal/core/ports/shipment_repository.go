package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipments.
// Headers and items are written separately so a shipment can be built row by row
// inside one transaction.
type ShipmentRepository interface {
	// GetByOrderID returns every shipment of an order, oldest first.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error)

	// Add inserts the shipment header without items.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// AddItem inserts one shipment item.
	AddItem(ctx context.Context, item *shipment.Item) error

	// Update persists the header fields: total weight and the shipped and delivered dates.
	Update(ctx context.Context, aggregate *shipment.Shipment) error
}
