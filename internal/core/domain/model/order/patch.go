package order

import (
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/optional"
)

// Patch is a partial update of an order. Only fields that are set are applied.
type Patch struct {
	StoreID                                 optional.Value[int]
	CustomerID                              optional.Value[kernel.UUID]
	BillingAddressID                        optional.Value[kernel.UUID]
	ShippingAddressID                       optional.Value[kernel.UUID]
	PaymentMethodSystemName                 optional.Value[string]
	ShippingMethod                          optional.Value[string]
	ShippingRateComputationMethodSystemName optional.Value[string]
	Status                                  optional.Value[Status]
}

// ApplyToDetails overlays the set fields onto d.
func (p Patch) ApplyToDetails(d *Details) {
	p.StoreID.ApplyTo(&d.StoreID)
	p.CustomerID.ApplyTo(&d.CustomerID)
	p.PaymentMethodSystemName.ApplyTo(&d.PaymentMethodSystemName)
	p.ShippingMethod.ApplyTo(&d.ShippingMethod)
	p.ShippingRateComputationMethodSystemName.ApplyTo(&d.ShippingRateComputationMethodSystemName)

	if id, ok := p.BillingAddressID.Get(); ok {
		d.BillingAddressID = &id
	}
	if id, ok := p.ShippingAddressID.Get(); ok {
		d.ShippingAddressID = &id
	}
}

// AddressIDs returns pointers to the supplied address ids, nil when absent.
func (p Patch) AddressIDs() (billing, shipping *kernel.UUID) {
	if id, ok := p.BillingAddressID.Get(); ok {
		billing = &id
	}
	if id, ok := p.ShippingAddressID.Get(); ok {
		shipping = &id
	}
	return billing, shipping
}
