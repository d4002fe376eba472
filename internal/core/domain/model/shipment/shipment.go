package shipment

import (
	"errors"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
)

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

	// ErrNothingToShip is returned when an order has no ship-enabled lines.
	ErrNothingToShip = errors.New("No Products Selected To Ship")
)

// Shipment records one dispatch of an order's items.
type Shipment struct {
	id             kernel.UUID
	orderID        kernel.UUID
	trackingNumber string
	adminComment   string
	totalWeight    *kernel.Weight
	shippedAt      *time.Time
	deliveredAt    *time.Time
	createdAt      time.Time
	items          []*Item

	isConstructed bool
}

// NewShipment starts an empty shipment for orderID.
func NewShipment(orderID kernel.UUID, trackingNumber, adminComment string, now time.Time) (*Shipment, error) {
	return RestoreShipment(kernel.NewUUID(), orderID, trackingNumber, adminComment, nil, nil, nil, now, nil)
}

func RestoreShipment(
	id, orderID kernel.UUID,
	trackingNumber, adminComment string,
	totalWeight *kernel.Weight,
	shippedAt, deliveredAt *time.Time,
	createdAt time.Time,
	items []*Item,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}
	return &Shipment{
		id:             id,
		orderID:        orderID,
		trackingNumber: trackingNumber,
		adminComment:   adminComment,
		totalWeight:    totalWeight,
		shippedAt:      shippedAt,
		deliveredAt:    deliveredAt,
		createdAt:      createdAt.UTC(),
		items:          items,
		isConstructed:  true,
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

func (s *Shipment) ID() kernel.UUID { return s.id }
func (s *Shipment) OrderID() kernel.UUID { return s.orderID }
func (s *Shipment) TrackingNumber() string { return s.trackingNumber }
func (s *Shipment) AdminComment() string { return s.adminComment }
func (s *Shipment) TotalWeight() *kernel.Weight { return s.totalWeight }
func (s *Shipment) ShippedAt() *time.Time { return s.shippedAt }
func (s *Shipment) DeliveredAt() *time.Time { return s.deliveredAt }
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }
func (s *Shipment) Items() []*Item { return s.items }

// AddItem ships quantity units of an order line. When weight is known the
// line total is added to the shipment total weight.
func (s *Shipment) AddItem(orderItemID kernel.UUID, quantity int, weight *kernel.Weight) (*Item, error) {
	item, err := NewItem(s.id, orderItemID, quantity)
	if err != nil {
		return nil, err
	}
	if weight != nil {
		total := kernel.ZeroWeight
		if s.totalWeight != nil {
			total = *s.totalWeight
		}
		total = total.Add(weight.Times(quantity))
		s.totalWeight = &total
	}
	s.items = append(s.items, item)
	return item, nil
}

// MarkShipped stamps the shipped date once.
func (s *Shipment) MarkShipped(now time.Time) error {
	if s.shippedAt != nil {
		return errs.NewValueIsInvalidErrorWithCause("shipped_at", fmt.Errorf("shipment %s is already shipped", s.id))
	}
	shipped := now.UTC()
	s.shippedAt = &shipped
	return nil
}
