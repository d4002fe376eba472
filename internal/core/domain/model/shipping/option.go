// Package shipping models rate-provider options and the customer's selection.
package shipping

import (
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/customer"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Option is a shipping method quoted by a rate provider.
type Option struct {
	Name               string
	Description        string
	Rate               decimal.Decimal
	ProviderSystemName string
}

// Selection is the option a customer chose for a store. It is stored as the
// customer's SelectedShippingOption attribute.
type Selection struct {
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Rate               decimal.Decimal `json:"rate"`
	ProviderSystemName string          `json:"shipping_rate_computation_method_system_name"`
	StoreID            int             `json:"store_id"`
}

func NewSelection(option Option, storeID int) Selection {
	return Selection{
		Name:               option.Name,
		Description:        option.Description,
		Rate:               option.Rate,
		ProviderSystemName: option.ProviderSystemName,
		StoreID:            storeID,
	}
}

// Request is a rate query for the given cart contents.
type Request struct {
	Entries            []cart.Entry
	ShippingAddress    *customer.Address
	Customer           *customer.Customer
	ProviderSystemName string
	StoreID            int
}

// Response carries the quoted options, or the provider's error messages.
type Response struct {
	Options []Option
	Errors  []string
}

func (r Response) Success() bool {
	return len(r.Errors) == 0
}

// MatchOption finds the option whose name equals name under Unicode full case
// folding. Options without a name never match.
func MatchOption(options []Option, name string) (Option, bool) {
	if name == "" {
		return Option{}, false
	}
	want := cases.Fold().String(name)
	for _, option := range options {
		if option.Name == "" {
			continue
		}
		if cases.Fold().String(option.Name) == want {
			return option, true
		}
	}
	return Option{}, false
}
