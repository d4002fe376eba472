// Package ports defines the repository and service interfaces the order workflows depend on.
// The adapters under internal/adapters/out implement them, so the core stays free of
// persistence and transport details.
package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// their lines and their notes.
type OrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order header. Items are not rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves a non-deleted order with its items.
	// Returns errs.ObjectNotFoundError when the order is missing or deleted.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByCustomOrderNumber retrieves a non-deleted order with its items by the
	// customer-facing order number.
	GetByCustomOrderNumber(ctx context.Context, customOrderNumber string) (*order.Order, error)

	// GetItems returns the lines of an order. A non-nil shipEnabled filters by
	// the line's ship-enabled flag.
	GetItems(ctx context.Context, orderID kernel.UUID, shipEnabled *bool) ([]*order.Item, error)

	// AddNote appends a note to an order.
	AddNote(ctx context.Context, note order.Note) error
}
