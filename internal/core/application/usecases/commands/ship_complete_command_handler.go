package commands

import (
	"context"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/core/domain/services"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"
)

const shipCompleteNote = "A shipment has been added and order set Complete via API"

// ShipCompleteCommandHandler records a single complete shipment for an order.
//
// Workflow:
//   - locate the order by its custom order number
//   - reject orders that already have a shipment, and cancelled orders
//   - insert the shipment and one item per ship-enabled line
//   - mark the shipment shipped, add an order note and complete the order
//
// Everything happens in one unit of work. An order with nothing to ship is
// rejected with shipment.ErrNothingToShip and leaves no shipment behind.
type ShipCompleteCommandHandler struct {
	uowFactory UoWFactory
	processing ports.OrderProcessing
	builder    services.ShipmentBuilder
}

func NewShipCompleteCommandHandler(uowFactory UoWFactory, processing ports.OrderProcessing) ShipCompleteCommandHandler {
	return ShipCompleteCommandHandler{
		uowFactory: uowFactory,
		processing: processing,
		builder:    services.NewShipmentBuilder(),
	}
}

// Handle returns the id of the new shipment.
func (h ShipCompleteCommandHandler) Handle(ctx context.Context, cmd ShipCompleteCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	shipments := uow.ShipmentRepository()

	o, err := orders.GetByCustomOrderNumber(ctx, cmd.CustomOrderNumber())
	if err != nil {
		return kernel.UUID{}, err
	}

	existing, err := shipments.GetByOrderID(ctx, o.ID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if len(existing) > 0 {
		return kernel.UUID{}, errs.NewConflictError("shipment", "Order already has shipments")
	}
	if o.Status() == order.Cancelled {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(
			"order_id", fmt.Errorf("order %s is cancelled", o.CustomOrderNumber()),
		)
	}

	now := time.Now()
	s, err := shipment.NewShipment(o.ID(), cmd.TrackingNumber(), cmd.AdminComment(), now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = shipments.Add(ctx, s); err != nil {
		return kernel.UUID{}, err
	}

	shipEnabled := true
	lines, err := orders.GetItems(ctx, o.ID(), &shipEnabled)
	if err != nil {
		return kernel.UUID{}, err
	}

	items, err := h.builder.Build(o, lines, s)
	if err != nil {
		return kernel.UUID{}, err
	}
	for _, item := range items {
		if err = shipments.AddItem(ctx, item); err != nil {
			return kernel.UUID{}, err
		}
	}

	if err = shipments.Update(ctx, s); err != nil {
		return kernel.UUID{}, err
	}

	if err = h.processing.MarkShipped(ctx, uow, s, cmd.NotifyCustomer()); err != nil {
		return kernel.UUID{}, err
	}

	note, err := order.NewNote(o.ID(), shipCompleteNote, false, now)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = orders.AddNote(ctx, note); err != nil {
		return kernel.UUID{}, err
	}

	if err = o.Complete(); err != nil {
		return kernel.UUID{}, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return s.ID(), nil
}
