// Package shipping provides the fixed-rate shipping rate provider.
package shipping

import (
	"context"
	"fmt"
	"strings"

	"ordersapi/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
)

// FixedRateSystemName is the provider system name served by default.
const FixedRateSystemName = "Shipping.FixedByWeightByTotal"

// FixedRateProvider quotes a configured list of options per provider system name.
// Rates do not depend on the cart contents.
type FixedRateProvider struct {
	methods map[string][]shipping.Option
}

func NewFixedRateProvider() *FixedRateProvider {
	return &FixedRateProvider{methods: make(map[string][]shipping.Option)}
}

// Register sets the options quoted for systemName.
func (p *FixedRateProvider) Register(systemName string, options ...shipping.Option) *FixedRateProvider {
	registered := make([]shipping.Option, 0, len(options))
	for _, option := range options {
		option.ProviderSystemName = systemName
		registered = append(registered, option)
	}
	p.methods[strings.ToLower(systemName)] = registered
	return p
}

// GetOptions reports request problems as response errors, never as a Go error.
func (p *FixedRateProvider) GetOptions(_ context.Context, request shipping.Request) (shipping.Response, error) {
	options, ok := p.methods[strings.ToLower(request.ProviderSystemName)]
	if !ok {
		return shipping.Response{
			Errors: []string{fmt.Sprintf("Shipping rate computation method %q could not be loaded", request.ProviderSystemName)},
		}, nil
	}

	var problems []string
	if len(request.Entries) == 0 {
		problems = append(problems, "Shopping cart is empty")
	}
	if request.ShippingAddress == nil {
		problems = append(problems, "Shipping address is not set")
	}
	if len(problems) > 0 {
		return shipping.Response{Errors: problems}, nil
	}

	return shipping.Response{Options: append([]shipping.Option(nil), options...)}, nil
}

// ParseRates reads "Name:rate" pairs separated by commas, e.g. "Ground:5.00,Next Day Air:20".
func ParseRates(spec string) ([]shipping.Option, error) {
	var options []shipping.Option
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		idx := strings.LastIndex(pair, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("shipping rate %q: expected name:rate", pair)
		}
		rate, err := decimal.NewFromString(strings.TrimSpace(pair[idx+1:]))
		if err != nil {
			return nil, fmt.Errorf("shipping rate %q: %w", pair, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("shipping rate %q: rate is negative", pair)
		}
		name := strings.TrimSpace(pair[:idx])
		options = append(options, shipping.Option{Name: name, Description: name, Rate: rate})
	}
	return options, nil
}
