package commands

import (
	"context"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/activity"
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipping"
	"ordersapi/internal/core/ports"
)

// UpdateOrderCommandHandler applies a patch to an order. A new shipping method or
// rate provider is re-quoted against the order's own lines before it is accepted.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	resolver   ShippingOptionResolver
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, resolver ShippingOptionResolver) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
	}
}

// Handle returns the updated order.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	customers := uow.CustomerRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	c, err := customers.Get(ctx, o.CustomerID())
	if err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	var selection *shipping.Selection
	if patch.ShippingRateComputationMethodSystemName.IsSet() || patch.ShippingMethod.IsSet() {
		shippingRequired, entries, err := h.shippingEntries(ctx, uow, o)
		if err != nil {
			return nil, err
		}

		if shippingRequired {
			selection, err = h.resolver.Resolve(ctx, uow,
				patch.ShippingRateComputationMethodSystemName.OrElse(o.ShippingRateComputationMethodSystemName()),
				patch.ShippingMethod.OrElse(o.ShippingMethod()),
				o.StoreID(), c, entries,
			)
			if err != nil {
				return nil, err
			}
		}
	}

	if err = o.Apply(patch); err != nil {
		return nil, err
	}
	if selection != nil {
		o.SetShippingMethod(selection.Name)
	}

	billingID, shippingID := patch.AddressIDs()
	if billingID != nil || shippingID != nil {
		c.SetAddresses(billingID, shippingID)
		if err = customers.Update(ctx, c); err != nil {
			return nil, err
		}
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	entry := activity.NewEntry(
		activity.UpdateOrder,
		fmt.Sprintf("Edited an order (ID = %s)", o.CustomOrderNumber()),
		o.ID(), "Order", time.Now(),
	)
	if err = uow.ActivityLogRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

// shippingEntries builds rate-query entries from the order lines. Shipping is
// required when any line's product does not ship for free.
func (h UpdateOrderCommandHandler) shippingEntries(
	ctx context.Context,
	uow ports.Repositories,
	o *order.Order,
) (bool, []cart.Entry, error) {
	required := false
	entries := make([]cart.Entry, 0, len(o.Items()))
	now := time.Now()

	for _, item := range o.Items() {
		product, err := uow.ProductRepository().Get(ctx, item.ProductID())
		if err != nil {
			return false, nil, err
		}
		if !product.IsFreeShipping {
			required = true
		}

		entry, err := cart.NewEntry(o.CustomerID(), item.ProductID(), o.StoreID(), item.Quantity(),
			item.AttributesXML(), item.RentalStart(), item.RentalEnd(), now)
		if err != nil {
			return false, nil, err
		}
		entries = append(entries, entry)
	}

	return required, entries, nil
}
