package order

import (
	"errors"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrCustomOrderNumberIsRequired = errors.New("custom order number is required")
)

// Details are the client-editable attributes of an order. They form the draft
// that the create flow builds from defaults and the request before placement.
type Details struct {
	StoreID                                 int
	CustomerID                              kernel.UUID
	BillingAddressID                        *kernel.UUID
	ShippingAddressID                       *kernel.UUID
	PaymentMethodSystemName                 string
	ShippingMethod                          string
	ShippingRateComputationMethodSystemName string
}

// NewDraft returns the default details for a new order of customerID in storeID.
func NewDraft(customerID kernel.UUID, storeID int) Details {
	return Details{
		StoreID:    storeID,
		CustomerID: customerID,
	}
}

func (d Details) validate() error {
	var storeErr error
	if d.StoreID <= 0 {
		storeErr = errs.NewValueIsOutOfRangeError("store_id", d.StoreID, 1, "unbounded")
	}
	return errors.Join(d.CustomerID.Validate(), storeErr)
}

// Order is the aggregate root for a placed order and its lines.
//
// Invariants:
//   - valid id, customer and store
//   - a non-empty custom order number, the reference customers and integrations use
//   - status changes only along the transitions allowed by Status
type Order struct {
	id                kernel.UUID
	customOrderNumber string
	details           Details
	status            Status
	deleted           bool
	createdAt         time.Time
	items             []*Item

	isConstructed bool
}

// NewOrder places a Pending order with the given lines. Every item is re-parented to the order.
func NewOrder(id kernel.UUID, customOrderNumber string, details Details, items []*Item, createdAt time.Time) (*Order, error) {
	o, err := RestoreOrder(id, customOrderNumber, details, Pending, false, createdAt, nil)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.orderID = id
	}
	o.items = items
	return o, nil
}

// RestoreOrder rebuilds a persisted order. Items may be nil when the caller did not load them.
func RestoreOrder(
	id kernel.UUID,
	customOrderNumber string,
	details Details,
	status Status,
	deleted bool,
	createdAt time.Time,
	items []*Item,
) (*Order, error) {
	var numberErr error
	if customOrderNumber == "" {
		numberErr = ErrCustomOrderNumberIsRequired
	}
	if err := errors.Join(id.Validate(), numberErr, details.validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Order{
		id:                id,
		customOrderNumber: customOrderNumber,
		details:           details,
		status:            status,
		deleted:           deleted,
		createdAt:         createdAt.UTC(),
		items:             items,
		isConstructed:     true,
	}, nil
}

// Validate rejects orders that bypassed the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomOrderNumber() string { return o.customOrderNumber }
func (o *Order) Details() Details { return o.details }
func (o *Order) CustomerID() kernel.UUID { return o.details.CustomerID }
func (o *Order) StoreID() int { return o.details.StoreID }
func (o *Order) Status() Status { return o.status }
func (o *Order) IsDeleted() bool { return o.deleted }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) ShippingMethod() string { return o.details.ShippingMethod }
func (o *Order) PaymentMethodSystemName() string {
	return o.details.PaymentMethodSystemName
}
func (o *Order) ShippingRateComputationMethodSystemName() string {
	return o.details.ShippingRateComputationMethodSystemName
}

// Items returns the loaded order lines.
func (o *Order) Items() []*Item {
	return o.items
}

// ShippableItems returns the lines that need physical shipping.
func (o *Order) ShippableItems() []*Item {
	shippable := make([]*Item, 0, len(o.items))
	for _, item := range o.items {
		if item.IsShipEnabled() {
			shippable = append(shippable, item)
		}
	}
	return shippable
}

// SetAddresses copies the supplied address ids onto the order. Nil ids leave the current value.
func (o *Order) SetAddresses(billingAddressID, shippingAddressID *kernel.UUID) {
	if billingAddressID != nil {
		id := *billingAddressID
		o.details.BillingAddressID = &id
	}
	if shippingAddressID != nil {
		id := *shippingAddressID
		o.details.ShippingAddressID = &id
	}
}

func (o *Order) SetShippingMethod(name string) {
	o.details.ShippingMethod = name
}

// Apply overlays patch onto the order. Status changes are checked against the state machine
// and customer reassignment is rejected.
func (o *Order) Apply(patch Patch) error {
	details := o.details
	patch.ApplyToDetails(&details)

	if !details.CustomerID.IsEqual(o.details.CustomerID) {
		return errs.NewValueIsInvalidErrorWithCause("customer_id", errors.New("an order cannot change customer"))
	}
	if err := details.validate(); err != nil {
		return err
	}

	status := o.status
	if next, ok := patch.Status.Get(); ok && next != o.status {
		var err error
		if status, err = o.status.TransitionTo(next); err != nil {
			return err
		}
	}

	o.details = details
	o.status = status
	return nil
}

// Complete moves the order to the final Complete status. Completing an order
// that is already Complete changes nothing; a Cancelled order is rejected.
func (o *Order) Complete() error {
	if o.status == Complete {
		return nil
	}
	next, err := o.status.TransitionTo(Complete)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Cancel moves the order to the final Cancelled status.
func (o *Order) Cancel() error {
	next, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// MarkDeleted hides the order from queries; the row is kept.
func (o *Order) MarkDeleted() {
	o.deleted = true
}

func (o *Order) String() string {
	return fmt.Sprintf("order %s (%s)", o.customOrderNumber, o.id)
}
