package commands

import (
	"context"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/activity"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"
)

// CreateOrderCommandHandler places a new order from the requested lines.
//
// The whole flow runs in one unit of work: cart staging, the shipping selection,
// the customer's default addresses and the placed order are committed together,
// and a rejected placement leaves none of them behind.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, stager, resolver, processing, settings)
//	placed, err := handler.Handle(ctx, cmd)
//	var perr *errs.ProcessingError
//	if errors.As(err, &perr) {
//	    // perr.Messages holds every message of the order processor
//	}
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	stager     OrderItemStager
	resolver   ShippingOptionResolver
	processing ports.OrderProcessing
	settings   OrderSettings
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	stager OrderItemStager,
	resolver ShippingOptionResolver,
	processing ports.OrderProcessing,
	settings OrderSettings,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		stager:     stager,
		resolver:   resolver,
		processing: processing,
		settings:   settings,
	}
}

// Handle stages the lines, resolves shipping when any staged product needs it, and
// places the order through the order processor. The placed order is returned.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	customers := uow.CustomerRepository()
	c, err := customers.Get(ctx, cmd.CustomerID())
	if err != nil {
		return nil, err
	}

	storeID := cmd.StoreID().OrElse(h.settings.DefaultStoreID)

	staged, err := h.stager.Stage(ctx, uow, cmd.Items(), c, storeID)
	if err != nil {
		return nil, err
	}

	// Rates are quoted for the addresses named in the request.
	patch := cmd.Patch()
	c.SetAddresses(patch.AddressIDs())

	if staged.ShippingRequired {
		_, err = h.resolver.Resolve(ctx, uow,
			patch.ShippingRateComputationMethodSystemName.OrElse(""),
			patch.ShippingMethod.OrElse(""),
			storeID, c, staged.Entries,
		)
		if err != nil {
			return nil, err
		}
	}

	draft := order.NewDraft(c.ID(), storeID)
	patch.ApplyToDetails(&draft)
	draft.CustomerID = c.ID()
	draft.StoreID = storeID

	if err = customers.Update(ctx, c); err != nil {
		return nil, err
	}

	result, err := h.processing.PlaceOrder(ctx, uow, ports.PaymentRequest{
		StoreID:                 storeID,
		CustomerID:              c.ID(),
		PaymentMethodSystemName: draft.PaymentMethodSystemName,
		Draft:                   draft,
	})
	if err != nil {
		return nil, err
	}
	if !result.Success() {
		return nil, errs.NewProcessingError(result.Errors...)
	}

	placed := result.PlacedOrder
	entry := activity.NewEntry(
		activity.AddNewOrder,
		fmt.Sprintf("Added a new order (ID = %s)", placed.CustomOrderNumber()),
		placed.ID(), "Order", time.Now(),
	)
	if err = uow.ActivityLogRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return placed, nil
}
