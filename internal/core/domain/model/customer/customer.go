// Package customer models the ordering customer and their saved addresses.
package customer

import (
	"errors"

	"ordersapi/internal/core/domain/model/kernel"
)

// SelectedShippingOptionAttribute is the generic attribute key holding the
// customer's chosen shipping option for a store.
const SelectedShippingOptionAttribute = "SelectedShippingOption"

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via RestoreCustomer constructor")

type Customer struct {
	id                kernel.UUID
	email             string
	billingAddressID  *kernel.UUID
	shippingAddressID *kernel.UUID

	isConstructed bool
}

func RestoreCustomer(id kernel.UUID, email string, billingAddressID, shippingAddressID *kernel.UUID) (*Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Customer{
		id:                id,
		email:             email,
		billingAddressID:  billingAddressID,
		shippingAddressID: shippingAddressID,
		isConstructed:     true,
	}, nil
}

func (c *Customer) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCustomerIsNotConstructed
	}
	return nil
}

func (c *Customer) ID() kernel.UUID { return c.id }
func (c *Customer) Email() string { return c.email }
func (c *Customer) BillingAddressID() *kernel.UUID { return c.billingAddressID }
func (c *Customer) ShippingAddressID() *kernel.UUID { return c.shippingAddressID }

// SetAddresses replaces the default addresses. Nil arguments keep the current value.
func (c *Customer) SetAddresses(billingAddressID, shippingAddressID *kernel.UUID) {
	if billingAddressID != nil {
		id := *billingAddressID
		c.billingAddressID = &id
	}
	if shippingAddressID != nil {
		id := *shippingAddressID
		c.shippingAddressID = &id
	}
}
