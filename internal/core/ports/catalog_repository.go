package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/domain/model/kernel"
)

// ProductRepository looks up catalog products.
type ProductRepository interface {
	// Get returns errs.ObjectNotFoundError when the product does not exist.
	Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error)
}
