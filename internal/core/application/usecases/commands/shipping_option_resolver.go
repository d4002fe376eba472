package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/shipping"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"

	"go.uber.org/zap"
)

const (
	fieldShippingProvider = "shipping_rate_computation_method_system_name"
	fieldShippingOption   = "shipping_option_name"
	fieldShippingQuote    = "shipping_option"
)

// ShippingOptionResolver asks a rate provider for options and records the one the
// customer named as their selection for the store.
type ShippingOptionResolver struct {
	provider        ports.ShippingRateProvider
	rejectUnmatched bool
	logger          *zap.Logger
}

func NewShippingOptionResolver(provider ports.ShippingRateProvider, settings OrderSettings, logger *zap.Logger) ShippingOptionResolver {
	return ShippingOptionResolver{
		provider:        provider,
		rejectUnmatched: settings.RejectUnmatchedShippingOption,
		logger:          logger,
	}
}

// Resolve stores the matching option as the customer's SelectedShippingOption attribute
// and returns it. When no option matches the attribute is cleared and nil is returned,
// unless unmatched options are configured to be rejected.
func (r ShippingOptionResolver) Resolve(
	ctx context.Context,
	uow ports.Repositories,
	providerSystemName string,
	optionName string,
	storeID int,
	c *customer.Customer,
	entries []cart.Entry,
) (*shipping.Selection, error) {
	missing := errs.NewValidationError()
	if providerSystemName == "" {
		missing.Add(fieldShippingProvider, "Please provide "+fieldShippingProvider)
	}
	if optionName == "" {
		missing.Add(fieldShippingOption, "Please provide "+fieldShippingOption)
	}
	if missing.HasErrors() {
		return nil, missing
	}

	customers := uow.CustomerRepository()

	var address *customer.Address
	if id := c.ShippingAddressID(); id != nil {
		var err error
		if address, err = customers.GetAddress(ctx, *id); err != nil {
			return nil, err
		}
	}

	response, err := r.provider.GetOptions(ctx, shipping.Request{
		Entries:            entries,
		ShippingAddress:    address,
		Customer:           c,
		ProviderSystemName: providerSystemName,
		StoreID:            storeID,
	})
	if err != nil {
		return nil, err
	}
	if !response.Success() {
		return nil, errs.NewValidationError().Add(fieldShippingQuote, response.Errors...)
	}

	option, ok := shipping.MatchOption(response.Options, optionName)
	if !ok {
		if err = customers.SaveAttribute(ctx, c.ID(), customer.SelectedShippingOptionAttribute, "", storeID); err != nil {
			return nil, err
		}

		r.logger.Warn("shipping option not offered by provider",
			zap.String("option", optionName),
			zap.String("provider", providerSystemName),
			zap.Int("store_id", storeID),
			zap.Stringer("customer_id", c.ID()),
		)

		if r.rejectUnmatched {
			return nil, errs.NewFieldError(fieldShippingOption,
				fmt.Sprintf("shipping option %q is not available", optionName))
		}
		return nil, nil
	}

	selection := shipping.NewSelection(option, storeID)
	encoded, err := json.Marshal(selection)
	if err != nil {
		return nil, err
	}
	if err = customers.SaveAttribute(ctx, c.ID(), customer.SelectedShippingOptionAttribute, string(encoded), storeID); err != nil {
		return nil, err
	}

	return &selection, nil
}
