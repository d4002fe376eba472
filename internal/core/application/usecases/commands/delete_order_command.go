package commands

import (
	"errors"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"
)

var ErrDeleteOrderCommandIsNotConstructed = errors.New(
	"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
)

// DeleteOrderCommand soft-deletes an order.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(orderID kernel.UUID) (DeleteOrderCommand, error) {
	cmd := DeleteOrderCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setOrderID(orderID); err != nil {
		return DeleteOrderCommand{}, err
	}
	return cmd, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c *DeleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if orderID.IsZero() {
		return errs.NewFieldError("id", "invalid id")
	}
	c.orderID = orderID
	return nil
}
