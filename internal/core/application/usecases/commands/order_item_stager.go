package commands

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"
)

// StageResult is the outcome of staging requested lines into the cart.
type StageResult struct {
	// ShippingRequired is true when at least one staged product is ship-enabled.
	ShippingRequired bool

	// Entries are the customer's shopping cart entries for the store after staging.
	Entries []cart.Entry
}

// OrderItemStager validates requested order lines and adds them to the customer's cart.
// Every line is attempted; cart warnings of all failing lines are reported together
// under the "order" field.
type OrderItemStager struct {
	codec ports.AttributeCodec
	carts ports.CartService
}

func NewOrderItemStager(codec ports.AttributeCodec, carts ports.CartService) OrderItemStager {
	return OrderItemStager{codec: codec, carts: carts}
}

func (s OrderItemStager) Stage(
	ctx context.Context,
	uow ports.Repositories,
	items []OrderItemInput,
	c *customer.Customer,
	storeID int,
) (StageResult, error) {
	var result StageResult
	failures := errs.NewValidationError()
	now := time.Now()

	for _, item := range items {
		if item.ProductID == nil {
			continue
		}

		product, err := uow.ProductRepository().Get(ctx, *item.ProductID)
		if err != nil {
			return StageResult{}, err
		}

		rentalStart, rentalEnd := item.RentalStart, item.RentalEnd
		if !product.IsRental {
			rentalStart, rentalEnd = nil, nil
		}

		attributesXML, err := s.codec.Encode(item.Attributes)
		if err != nil {
			return StageResult{}, err
		}

		entry, err := cart.NewEntry(c.ID(), product.ID, storeID, item.Quantity, attributesXML, rentalStart, rentalEnd, now)
		if err != nil {
			failures.Add("order", err.Error())
			continue
		}

		warnings, err := s.carts.AddToCart(ctx, uow.CartRepository(), product, entry)
		if err != nil {
			return StageResult{}, err
		}
		if len(warnings) > 0 {
			failures.Add("order", warnings...)
			continue
		}

		result.ShippingRequired = result.ShippingRequired || product.IsShipEnabled
	}

	if failures.HasErrors() {
		return StageResult{}, failures
	}

	entries, err := uow.CartRepository().GetByCustomer(ctx, c.ID(), storeID, cart.ShoppingCart)
	if err != nil {
		return StageResult{}, err
	}
	result.Entries = entries

	return result, nil
}
