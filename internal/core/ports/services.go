package ports

import (
	"context"

	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/core/domain/model/shipping"
)

// AttributeValue is one product attribute choice supplied with an order line.
type AttributeValue struct {
	ID    int
	Value string
}

// AttributeCodec turns product attribute choices into the serialized form stored on cart entries and order lines.
type AttributeCodec interface {
	Encode(values []AttributeValue) (string, error)
	Decode(encoded string) ([]AttributeValue, error)
}

// CartService adds entries to a customer's cart, merging with an identical existing line.
// Warnings are business-rule failures reported to the client; err is reserved for infrastructure failures.
type CartService interface {
	AddToCart(ctx context.Context, carts CartRepository, product *catalog.Product, entry cart.Entry) (warnings []string, err error)
}

// ShippingRateProvider quotes shipping options for cart contents.
type ShippingRateProvider interface {
	GetOptions(ctx context.Context, request shipping.Request) (shipping.Response, error)
}

// PaymentRequest asks the order processor to place the customer's cart as an order.
type PaymentRequest struct {
	StoreID                 int
	CustomerID              kernel.UUID
	PaymentMethodSystemName string
	Draft                   order.Details
}

// PlaceOrderResult reports the outcome of a placement. PlacedOrder is set iff Errors is empty.
type PlaceOrderResult struct {
	PlacedOrder *order.Order
	Errors      []string
}

func (r PlaceOrderResult) Success() bool {
	return len(r.Errors) == 0 && r.PlacedOrder != nil
}

// OrderProcessing places, ships and deletes orders inside the caller's unit of work.
type OrderProcessing interface {
	PlaceOrder(ctx context.Context, uow UnitOfWork, request PaymentRequest) (PlaceOrderResult, error)

	// MarkShipped stamps the shipped date. When notifyCustomer is set the customer
	// is notified after the unit of work commits.
	MarkShipped(ctx context.Context, uow UnitOfWork, s *shipment.Shipment, notifyCustomer bool) error

	// DeleteOrder soft-deletes the order.
	DeleteOrder(ctx context.Context, uow UnitOfWork, o *order.Order) error
}

// ShipmentNotification is the content of a "your order has shipped" message.
type ShipmentNotification struct {
	CustomerEmail     string
	CustomOrderNumber string
	ShipmentID        kernel.UUID
	TrackingNumber    string
}

// Notifier delivers customer notifications.
type Notifier interface {
	NotifyShipped(ctx context.Context, notification ShipmentNotification) error
}
