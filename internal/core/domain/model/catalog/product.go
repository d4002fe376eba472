// Package catalog holds the read model of products that orders reference.
package catalog

import (
	"ordersapi/internal/core/domain/model/kernel"
)

// Product is the subset of catalog data the ordering workflow needs.
// A zero OrderMaximumQuantity means no upper bound.
type Product struct {
	ID                   kernel.UUID
	Name                 string
	Published            bool
	IsShipEnabled        bool
	IsFreeShipping       bool
	IsRental             bool
	Weight               *kernel.Weight
	OrderMinimumQuantity int
	OrderMaximumQuantity int
}

// RequiresShipping reports whether an order line of this product incurs shipping charges.
func (p Product) RequiresShipping() bool {
	return p.IsShipEnabled && !p.IsFreeShipping
}
