package commands

import (
	"context"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/activity"
	"ordersapi/internal/core/ports"
)

// DeleteOrderCommandHandler hides an order through the order processor and audits the deletion.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	processing ports.OrderProcessing
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, processing ports.OrderProcessing) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		processing: processing,
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.processing.DeleteOrder(ctx, uow, o); err != nil {
		return err
	}

	entry := activity.NewEntry(
		activity.DeleteOrder,
		fmt.Sprintf("Deleted an order (ID = %s)", o.CustomOrderNumber()),
		o.ID(), "Order", time.Now(),
	)
	if err = uow.ActivityLogRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
