package http

import (
	"fmt"
	"strings"
	"time"

	"ordersapi/internal/core/application/usecases/commands"
	"ordersapi/internal/core/application/usecases/queries"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/optional"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// orderRequest is the body of POST /api/orders and PUT /api/orders/{id}.
type orderRequest struct {
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	CustomerID                              optional.Value[string] `json:"customer_id"`
	StoreID                                 optional.Value[int]    `json:"store_id"`
	BillingAddressID                        optional.Value[string] `json:"billing_address_id"`
	ShippingAddressID                       optional.Value[string] `json:"shipping_address_id"`
	PaymentMethodSystemName                 optional.Value[string] `json:"payment_method_system_name"`
	ShippingMethod                          optional.Value[string] `json:"shipping_method"`
	ShippingRateComputationMethodSystemName optional.Value[string] `json:"shipping_rate_computation_method_system_name"`
	OrderStatus                             optional.Value[string] `json:"order_status"`
	OrderItems                              []orderItemPayload     `json:"order_items"`
}

type orderItemPayload struct {
	ProductID          *string            `json:"product_id"`
	Quantity           *int               `json:"quantity"`
	RentalStartDateUTC *time.Time         `json:"rental_start_date_utc"`
	RentalEndDateUTC   *time.Time         `json:"rental_end_date_utc"`
	Attributes         []attributePayload `json:"product_attributes"`
}

type attributePayload struct {
	ID    int    `json:"id"`
	Value string `json:"value"`
}

// shipCompleteRequest is the body of POST /api/orders/shipcomplete.
type shipCompleteRequest struct {
	OrderID        string               `json:"order_id"`
	TrackingNumber string               `json:"tracking_number"`
	AdminComment   string               `json:"admin_comment"`
	NotifyCustomer optional.Value[bool] `json:"notify_customer"`
}

// patch converts the scalar order fields. Unparsable ids and statuses are
// reported together under their JSON names.
func (p orderPayload) patch() (order.Patch, error) {
	invalid := errs.NewValidationError()
	patch := order.Patch{
		StoreID:                                 p.StoreID,
		PaymentMethodSystemName:                 p.PaymentMethodSystemName,
		ShippingMethod:                          p.ShippingMethod,
		ShippingRateComputationMethodSystemName: p.ShippingRateComputationMethodSystemName,
	}

	if raw, ok := p.CustomerID.Get(); ok {
		id, err := parseID(raw)
		if err != nil {
			invalid.Add("customer_id", "invalid customer_id")
		} else {
			patch.CustomerID = optional.Of(id)
		}
	}
	if raw, ok := p.BillingAddressID.Get(); ok {
		id, err := parseID(raw)
		if err != nil {
			invalid.Add("billing_address_id", "invalid billing_address_id")
		} else {
			patch.BillingAddressID = optional.Of(id)
		}
	}
	if raw, ok := p.ShippingAddressID.Get(); ok {
		id, err := parseID(raw)
		if err != nil {
			invalid.Add("shipping_address_id", "invalid shipping_address_id")
		} else {
			patch.ShippingAddressID = optional.Of(id)
		}
	}
	if raw, ok := p.OrderStatus.Get(); ok {
		status, err := order.ParseStatus(raw)
		if err != nil {
			invalid.Add("order_status", fmt.Sprintf("invalid order_status %q", raw))
		} else {
			patch.Status = optional.Of(status)
		}
	}

	if err := invalid.OrNil(); err != nil {
		return order.Patch{}, err
	}
	return patch, nil
}

func (p orderPayload) items() ([]commands.OrderItemInput, error) {
	invalid := errs.NewValidationError()
	inputs := make([]commands.OrderItemInput, 0, len(p.OrderItems))

	for i, item := range p.OrderItems {
		input := commands.OrderItemInput{
			Quantity:    1,
			RentalStart: item.RentalStartDateUTC,
			RentalEnd:   item.RentalEndDateUTC,
		}
		if item.Quantity != nil {
			input.Quantity = *item.Quantity
		}
		if item.ProductID != nil && *item.ProductID != "" {
			id, err := parseID(*item.ProductID)
			if err != nil {
				invalid.Add("order_items", fmt.Sprintf("item %d: invalid product_id", i))
				continue
			}
			input.ProductID = &id
		}
		for _, attribute := range item.Attributes {
			input.Attributes = append(input.Attributes, ports.AttributeValue{ID: attribute.ID, Value: attribute.Value})
		}
		inputs = append(inputs, input)
	}

	if err := invalid.OrNil(); err != nil {
		return nil, err
	}
	return inputs, nil
}

func (r orderRequest) toCreateCommand() (commands.CreateOrderCommand, error) {
	customerRaw, ok := r.Order.CustomerID.Get()
	if !ok || strings.TrimSpace(customerRaw) == "" {
		return commands.CreateOrderCommand{}, errs.NewFieldError("customer_id", "customer_id is required")
	}

	patch, patchErr := r.Order.patch()
	items, itemsErr := r.Order.items()
	if patchErr != nil || itemsErr != nil {
		return commands.CreateOrderCommand{}, mergeValidation(patchErr, itemsErr)
	}

	customerID, _ := patch.CustomerID.Get()
	return commands.NewCreateOrderCommand(customerID, r.Order.StoreID, items, patch)
}

func (r orderRequest) toUpdateCommand(orderID kernel.UUID) (commands.UpdateOrderCommand, error) {
	patch, err := r.Order.patch()
	if err != nil {
		return commands.UpdateOrderCommand{}, err
	}
	return commands.NewUpdateOrderCommand(orderID, patch)
}

func (r shipCompleteRequest) toCommand() (commands.ShipCompleteCommand, error) {
	return commands.NewShipCompleteCommand(
		strings.TrimSpace(r.OrderID),
		r.TrackingNumber,
		r.AdminComment,
		r.NotifyCustomer.OrElse(true),
	)
}

// orderFilter reads the listing filters shared by GET /api/orders and GET /api/orders/count.
func orderFilter(c echo.Context, storeID int) (queries.OrderFilter, error) {
	invalid := errs.NewValidationError()
	filter := queries.OrderFilter{StoreID: storeID}

	var ids []string
	if err := runtime.BindQueryParameter("form", false, false, "ids", c.QueryParams(), &ids); err != nil {
		invalid.Add("ids", "invalid ids")
	} else {
		for _, part := range ids {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				invalid.Add("ids", fmt.Sprintf("invalid id %q", part))
				continue
			}
			filter.IDs = append(filter.IDs, id)
		}
	}
	if raw := c.QueryParam("since_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			invalid.Add("since_id", "invalid since_id")
		} else {
			filter.SinceID = &id
		}
	}
	if raw := c.QueryParam("customer_id"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			invalid.Add("customer_id", "invalid customer_id")
		} else {
			filter.CustomerID = &id
		}
	}
	if raw := c.QueryParam("status"); raw != "" {
		status, err := order.ParseStatus(raw)
		if err != nil {
			invalid.Add("status", fmt.Sprintf("invalid status %q", raw))
		} else {
			filter.Status = &status
		}
	}
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{
		{"created_at_min", &filter.CreatedAtMin},
		{"created_at_max", &filter.CreatedAtMax},
	} {
		raw := c.QueryParam(bound.name)
		if raw == "" {
			continue
		}
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			invalid.Add(bound.name, fmt.Sprintf("invalid %s, expected RFC 3339", bound.name))
			continue
		}
		*bound.dst = &at
	}

	if err := invalid.OrNil(); err != nil {
		return queries.OrderFilter{}, err
	}
	return filter, nil
}

// paging reads limit and page; absent values are left to the query defaults.
func paging(c echo.Context) (limit, page int, err error) {
	invalid := errs.NewValidationError()
	params := c.QueryParams()
	if bindErr := runtime.BindQueryParameter("form", true, false, "limit", params, &limit); bindErr != nil {
		invalid.Add("limit", fmt.Sprintf("Invalid limit parameter, must be between 1 and %d", queries.MaxLimit))
	}
	if bindErr := runtime.BindQueryParameter("form", true, false, "page", params, &page); bindErr != nil {
		invalid.Add("page", "Invalid page parameter")
	}
	if invalid.HasErrors() {
		return 0, 0, invalid
	}
	return limit, page, nil
}

func parseID(raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
	if err != nil {
		return kernel.UUID{}, err
	}
	if id.IsZero() {
		return kernel.UUID{}, errs.NewValueIsInvalidError("id")
	}
	return id, nil
}

func mergeValidation(errList ...error) error {
	merged := errs.NewValidationError()
	for _, err := range errList {
		if v, ok := err.(*errs.ValidationError); ok {
			merged.Merge(v)
		}
	}
	return merged.OrNil()
}
