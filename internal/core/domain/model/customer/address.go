package customer

import "ordersapi/internal/core/domain/model/kernel"

// Address is a postal address used for billing and shipping rate lookups.
type Address struct {
	ID            kernel.UUID
	CountryCode   string
	StateProvince string
	City          string
	ZipPostalCode string
	Address1      string
}
