package commands_test

import (
	"errors"
	"testing"
	"time"

	"ordersapi/internal/core/application/usecases/commands"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func orderLine(t *testing.T, quantity int, weight string, shipEnabled bool) *order.Item {
	t.Helper()
	var w *kernel.Weight
	if weight != "" {
		parsed := kernel.MustWeight(weight)
		w = &parsed
	}
	item, err := order.NewItem(order.ItemParams{
		ProductID:     kernel.NewUUID(),
		Quantity:      quantity,
		Weight:        w,
		IsShipEnabled: shipEnabled,
	})
	require.NoError(t, err)
	return item
}

func pendingOrder(t *testing.T, number string, lines ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), number, order.NewDraft(kernel.NewUUID(), 1), lines, time.Now())
	require.NoError(t, err)
	return o
}

func shipEnabledOnly(shipEnabled *bool) bool {
	return shipEnabled != nil && *shipEnabled
}

func TestShipCompleteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-100", orderLine(t, 1, "2.0", true), orderLine(t, 2, "3.5", true))
	cmd, err := commands.NewShipCompleteCommand("A-100", "TRACK-1", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	var inserted *shipment.Shipment
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-100").Return(o, nil).Once()
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return([]*shipment.Shipment{}, nil).Once()
	uow.shipments.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*shipment.Shipment) }).
		Return(nil).Once()
	uow.orders.On("GetItems", mock.Anything, o.ID(), mock.MatchedBy(shipEnabledOnly)).Return(o.Items(), nil).Once()
	uow.shipments.On("AddItem", mock.Anything, mock.AnythingOfType("*shipment.Item")).Return(nil).Twice()
	uow.shipments.On("Update", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	uow.orders.On("AddNote", mock.Anything, mock.MatchedBy(func(n order.Note) bool {
		return n.Text == "A shipment has been added and order set Complete via API" && n.OrderID.IsEqual(o.ID())
	})).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	processing := new(MockOrderProcessing)
	processing.On("MarkShipped", mock.Anything, mock.Anything, mock.AnythingOfType("*shipment.Shipment"), true).Return(nil).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	shipmentID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.True(t, shipmentID.IsEqual(inserted.ID()))
	assert.Len(t, inserted.Items(), 2)
	require.NotNil(t, inserted.TotalWeight())
	assert.True(t, inserted.TotalWeight().IsEqual(kernel.MustWeight("9.0")))
	assert.Equal(t, "TRACK-1", inserted.TrackingNumber())
	assert.Equal(t, order.Complete, o.Status())
	uow.AssertExpectations(t)
	uow.orders.AssertExpectations(t)
	uow.shipments.AssertExpectations(t)
	processing.AssertExpectations(t)
}

func TestShipCompleteCommandHandler_Handle_OrderAlreadyComplete(t *testing.T) {
	ctx := t.Context()
	o, err := order.RestoreOrder(kernel.NewUUID(), "A-102", order.NewDraft(kernel.NewUUID(), 1),
		order.Complete, false, time.Now(), []*order.Item{orderLine(t, 1, "1.5", true)})
	require.NoError(t, err)
	cmd, err := commands.NewShipCompleteCommand("A-102", "TRACK-2", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.On("Commit", mock.Anything).Return(nil).Once()

	var inserted *shipment.Shipment
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-102").Return(o, nil).Once()
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return([]*shipment.Shipment{}, nil).Once()
	uow.shipments.On("Add", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).
		Run(func(args mock.Arguments) { inserted = args.Get(1).(*shipment.Shipment) }).
		Return(nil).Once()
	uow.orders.On("GetItems", mock.Anything, o.ID(), mock.MatchedBy(shipEnabledOnly)).Return(o.Items(), nil).Once()
	uow.shipments.On("AddItem", mock.Anything, mock.AnythingOfType("*shipment.Item")).Return(nil).Once()
	uow.shipments.On("Update", mock.Anything, mock.AnythingOfType("*shipment.Shipment")).Return(nil).Once()
	uow.orders.On("AddNote", mock.Anything, mock.Anything).Return(nil).Once()
	uow.orders.On("Update", mock.Anything, o).Return(nil).Once()

	processing := new(MockOrderProcessing)
	processing.On("MarkShipped", mock.Anything, mock.Anything, mock.Anything, true).Return(nil).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	shipmentID, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.True(t, shipmentID.IsEqual(inserted.ID()))
	assert.Equal(t, order.Complete, o.Status())
	uow.AssertExpectations(t)
	uow.orders.AssertExpectations(t)
	uow.shipments.AssertExpectations(t)
}

func TestShipCompleteCommandHandler_Handle_PassesNotifyFlag(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-101", orderLine(t, 1, "", true))
	cmd, err := commands.NewShipCompleteCommand("A-101", "", "", false)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.On("Commit", mock.Anything).Return(nil).Once()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-101").Return(o, nil)
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return(nil, nil)
	uow.shipments.On("Add", mock.Anything, mock.Anything).Return(nil)
	uow.orders.On("GetItems", mock.Anything, o.ID(), mock.Anything).Return(o.Items(), nil)
	uow.shipments.On("AddItem", mock.Anything, mock.Anything).Return(nil)
	uow.shipments.On("Update", mock.Anything, mock.Anything).Return(nil)
	uow.orders.On("AddNote", mock.Anything, mock.Anything).Return(nil)
	uow.orders.On("Update", mock.Anything, o).Return(nil)

	processing := new(MockOrderProcessing)
	processing.On("MarkShipped", mock.Anything, mock.Anything, mock.Anything, false).Return(nil).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	_, err = h.Handle(ctx, cmd)

	require.NoError(t, err)
	processing.AssertExpectations(t)
}

func TestShipCompleteCommandHandler_Handle_ExistingShipmentConflicts(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-102", orderLine(t, 1, "1", true))
	existing, err := shipment.NewShipment(o.ID(), "", "", time.Now())
	require.NoError(t, err)
	cmd, err := commands.NewShipCompleteCommand("A-102", "", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-102").Return(o, nil).Once()
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return([]*shipment.Shipment{existing}, nil).Once()

	processing := new(MockOrderProcessing)
	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Contains(t, err.Error(), "Order already has shipments")
	uow.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	processing.AssertNotCalled(t, "MarkShipped", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, order.Pending, o.Status())
}

func TestShipCompleteCommandHandler_Handle_NothingToShipRollsBack(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-103", orderLine(t, 1, "1", false))
	cmd, err := commands.NewShipCompleteCommand("A-103", "", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-103").Return(o, nil).Once()
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return(nil, nil).Once()
	uow.shipments.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	uow.orders.On("GetItems", mock.Anything, o.ID(), mock.Anything).Return([]*order.Item{}, nil).Once()

	processing := new(MockOrderProcessing)
	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, shipment.ErrNothingToShip)
	assert.Equal(t, order.Pending, o.Status())
	uow.AssertCalled(t, "Rollback", mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	uow.orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.orders.AssertNotCalled(t, "AddNote", mock.Anything, mock.Anything)
	uow.shipments.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestShipCompleteCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewShipCompleteCommand("missing", "", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "missing").
		Return(nil, errs.NewObjectNotFoundError("order", "missing")).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), new(MockOrderProcessing))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestShipCompleteCommandHandler_Handle_CancelledOrder(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-104", orderLine(t, 1, "1", true))
	require.NoError(t, o.Cancel())
	cmd, err := commands.NewShipCompleteCommand("A-104", "", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-104").Return(o, nil).Once()
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return(nil, nil).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), new(MockOrderProcessing))
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.shipments.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestShipCompleteCommandHandler_Handle_MarkShippedError(t *testing.T) {
	ctx := t.Context()
	o := pendingOrder(t, "A-105", orderLine(t, 1, "1", true))
	cmd, err := commands.NewShipCompleteCommand("A-105", "", "", true)
	require.NoError(t, err)

	uow := newMockUoW()
	uow.expectTransaction()
	uow.orders.On("GetByCustomOrderNumber", mock.Anything, "A-105").Return(o, nil)
	uow.shipments.On("GetByOrderID", mock.Anything, o.ID()).Return(nil, nil)
	uow.shipments.On("Add", mock.Anything, mock.Anything).Return(nil)
	uow.orders.On("GetItems", mock.Anything, o.ID(), mock.Anything).Return(o.Items(), nil)
	uow.shipments.On("AddItem", mock.Anything, mock.Anything).Return(nil)
	uow.shipments.On("Update", mock.Anything, mock.Anything).Return(nil)

	processing := new(MockOrderProcessing)
	processing.On("MarkShipped", mock.Anything, mock.Anything, mock.Anything, true).Return(errors.New("smtp down")).Once()

	h := commands.NewShipCompleteCommandHandler(factoryFor(uow), processing)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	assert.Equal(t, order.Pending, o.Status())
}

func TestShipCompleteCommandHandler_Handle_InvalidCommand(t *testing.T) {
	h := commands.NewShipCompleteCommandHandler(new(MockUoWFactory), new(MockOrderProcessing))

	_, err := h.Handle(t.Context(), commands.ShipCompleteCommand{})

	require.ErrorIs(t, err, commands.ErrShipCompleteCommandIsNotConstructed)
}
