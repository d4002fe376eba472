package ports

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/kernel"
)

// CartRepository stores shopping cart entries.
type CartRepository interface {
	Add(ctx context.Context, entry cart.Entry) error
	Update(ctx context.Context, entry cart.Entry) error
	GetByCustomer(ctx context.Context, customerID kernel.UUID, storeID int, kind cart.Kind) ([]cart.Entry, error)

	// Clear removes the customer's shopping cart entries in the store.
	Clear(ctx context.Context, customerID kernel.UUID, storeID int) error

	// DeleteUpdatedBefore removes entries untouched since cutoff and reports how many were removed.
	DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
