package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
)

// CustomerRepository reads and updates customers, their addresses and their
// store-scoped generic attributes.
type CustomerRepository interface {
	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	Update(ctx context.Context, aggregate *customer.Customer) error
	GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error)

	// SaveAttribute stores value under key for the customer and store.
	// An empty value deletes the attribute.
	SaveAttribute(ctx context.Context, customerID kernel.UUID, key, value string, storeID int) error

	// GetAttribute returns "" when the attribute is not set.
	GetAttribute(ctx context.Context, customerID kernel.UUID, key string, storeID int) (string, error)
}
