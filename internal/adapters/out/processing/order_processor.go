// Package processing implements the order processing subsystem: placing the customer's cart
// as an order, stamping shipments and soft-deleting orders.
package processing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/core/domain/model/shipping"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// OrderProcessor places orders locally. Business-rule failures are returned as result errors.
type OrderProcessor struct {
	paymentMethods map[string]struct{}
	notifier       ports.Notifier
	logger         *zap.Logger
	now            func() time.Time
	newNumber      func() string
}

// NewOrderProcessor accepts the system names of the enabled payment methods.
func NewOrderProcessor(paymentMethods []string, notifier ports.Notifier, logger *zap.Logger) *OrderProcessor {
	enabled := make(map[string]struct{}, len(paymentMethods))
	for _, name := range paymentMethods {
		if name = strings.TrimSpace(name); name != "" {
			enabled[strings.ToLower(name)] = struct{}{}
		}
	}
	return &OrderProcessor{
		paymentMethods: enabled,
		notifier:       notifier,
		logger:         logger,
		now:            time.Now,
		newNumber:      func() string { return ulid.Make().String() },
	}
}

// PlaceOrder turns the customer's shopping cart for the store into a Pending order and empties the cart.
func (p *OrderProcessor) PlaceOrder(ctx context.Context, uow ports.UnitOfWork, request ports.PaymentRequest) (ports.PlaceOrderResult, error) {
	var problems []string
	if request.PaymentMethodSystemName == "" {
		problems = append(problems, "Payment method is not selected")
	} else if _, ok := p.paymentMethods[strings.ToLower(request.PaymentMethodSystemName)]; !ok {
		problems = append(problems, fmt.Sprintf("Payment method %q couldn't be loaded", request.PaymentMethodSystemName))
	}

	entries, err := uow.CartRepository().GetByCustomer(ctx, request.CustomerID, request.StoreID, cart.ShoppingCart)
	if err != nil {
		return ports.PlaceOrderResult{}, err
	}
	if len(entries) == 0 {
		problems = append(problems, "Cart is empty")
	}

	items, shippingRequired, err := p.buildItems(ctx, uow, entries)
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		if !errors.As(err, &notFound) {
			return ports.PlaceOrderResult{}, err
		}
		problems = append(problems, "Product not found: "+fmt.Sprint(notFound.ID))
	}
	if shippingRequired && request.Draft.ShippingAddressID == nil {
		problems = append(problems, "Shipping address is not provided")
	}

	if len(problems) > 0 {
		return ports.PlaceOrderResult{Errors: problems}, nil
	}

	details := request.Draft
	details.CustomerID = request.CustomerID
	details.StoreID = request.StoreID
	if shippingRequired {
		if err = applySelectedShipping(ctx, uow, &details); err != nil {
			return ports.PlaceOrderResult{}, err
		}
	}

	placed, err := order.NewOrder(kernel.NewUUID(), p.newNumber(), details, items, p.now())
	if err != nil {
		return ports.PlaceOrderResult{}, err
	}
	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return ports.PlaceOrderResult{}, err
	}
	if err = uow.CartRepository().Clear(ctx, request.CustomerID, request.StoreID); err != nil {
		return ports.PlaceOrderResult{}, err
	}

	p.logger.Info("order placed",
		zap.String("custom_order_number", placed.CustomOrderNumber()),
		zap.Stringer("customer_id", request.CustomerID),
		zap.Int("items", len(items)),
	)
	return ports.PlaceOrderResult{PlacedOrder: placed}, nil
}

func (p *OrderProcessor) buildItems(ctx context.Context, uow ports.UnitOfWork, entries []cart.Entry) ([]*order.Item, bool, error) {
	products := uow.ProductRepository()
	items := make([]*order.Item, 0, len(entries))
	shippingRequired := false
	for _, entry := range entries {
		product, err := products.Get(ctx, entry.ProductID)
		if err != nil {
			return nil, false, err
		}
		shippingRequired = shippingRequired || product.IsShipEnabled

		item, err := order.NewItem(order.ItemParams{
			ProductID:     product.ID,
			Quantity:      entry.Quantity,
			Weight:        product.Weight,
			IsShipEnabled: product.IsShipEnabled,
			AttributesXML: entry.AttributesXML,
			RentalStart:   entry.RentalStart,
			RentalEnd:     entry.RentalEnd,
		})
		if err != nil {
			return nil, false, err
		}
		items = append(items, item)
	}
	return items, shippingRequired, nil
}

// applySelectedShipping takes the shipping method and provider from the customer's
// SelectedShippingOption for the store, when one was recorded.
func applySelectedShipping(ctx context.Context, uow ports.UnitOfWork, details *order.Details) error {
	raw, err := uow.CustomerRepository().GetAttribute(ctx, details.CustomerID, customer.SelectedShippingOptionAttribute, details.StoreID)
	if err != nil || raw == "" {
		return err
	}

	var selection shipping.Selection
	if err = json.Unmarshal([]byte(raw), &selection); err != nil {
		return fmt.Errorf("decode selected shipping option: %w", err)
	}
	details.ShippingMethod = selection.Name
	details.ShippingRateComputationMethodSystemName = selection.ProviderSystemName
	return nil
}

// MarkShipped stamps and persists the shipped date. The notification is queued for after commit.
func (p *OrderProcessor) MarkShipped(ctx context.Context, uow ports.UnitOfWork, s *shipment.Shipment, notifyCustomer bool) error {
	if err := s.MarkShipped(p.now()); err != nil {
		return err
	}
	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
		return err
	}
	if !notifyCustomer {
		return nil
	}

	o, err := uow.OrderRepository().Get(ctx, s.OrderID())
	if err != nil {
		return err
	}
	c, err := uow.CustomerRepository().Get(ctx, o.CustomerID())
	if err != nil {
		return err
	}

	notification := ports.ShipmentNotification{
		CustomerEmail:     c.Email(),
		CustomOrderNumber: o.CustomOrderNumber(),
		ShipmentID:        s.ID(),
		TrackingNumber:    s.TrackingNumber(),
	}
	uow.AfterCommit(func(ctx context.Context) {
		if notifyErr := p.notifier.NotifyShipped(ctx, notification); notifyErr != nil {
			p.logger.Error("shipment notification failed",
				zap.Stringer("shipment_id", notification.ShipmentID),
				zap.Error(notifyErr),
			)
		}
	})
	return nil
}

// DeleteOrder soft-deletes the order.
func (p *OrderProcessor) DeleteOrder(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	o.MarkDeleted()
	return uow.OrderRepository().Update(ctx, o)
}
