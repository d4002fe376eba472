package commands

import (
	"errors"
	"fmt"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"
	"ordersapi/internal/pkg/optional"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new order for a customer.
// The order fields that are present in the request overlay the defaults of a fresh draft.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, optional.Value[int]{}, items, order.Patch{
//	    PaymentMethodSystemName:                 optional.Of("Payments.CheckMoneyOrder"),
//	    ShippingMethod:                          optional.Of("Ground"),
//	    ShippingRateComputationMethodSystemName: optional.Of("Shipping.FixedRate"),
//	})
//	if err != nil {
//	    return err
//	}
//	placed, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.UUID
	storeID    optional.Value[int]
	items      []OrderItemInput
	patch      order.Patch

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	customerID kernel.UUID,
	storeID optional.Value[int],
	items []OrderItemInput,
	patch order.Patch,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setStoreID(storeID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) CustomerID() kernel.UUID { return c.customerID }

// StoreID is unset when the request names no store.
func (c CreateOrderCommand) StoreID() optional.Value[int] { return c.storeID }

func (c CreateOrderCommand) Items() []OrderItemInput { return c.items }
func (c CreateOrderCommand) Patch() order.Patch { return c.patch }

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if customerID.IsZero() {
		return errs.NewFieldError("customer_id", "invalid customer_id")
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID optional.Value[int]) error {
	if id, ok := storeID.Get(); ok && id <= 0 {
		return errs.NewFieldError("store_id", fmt.Sprintf("invalid store_id %d", id))
	}

	c.storeID = storeID
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemInput) error {
	invalid := errs.NewValidationError()
	for i, item := range items {
		if item.ProductID != nil && item.Quantity < 1 {
			invalid.Add("order_items", fmt.Sprintf("item %d: quantity must be greater than 0", i))
		}
	}
	if invalid.HasErrors() {
		return invalid
	}

	c.items = items
	return nil
}
