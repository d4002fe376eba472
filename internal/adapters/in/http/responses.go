package http

import (
	"time"

	"ordersapi/internal/core/application/usecases/queries"
	"ordersapi/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

type ordersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

type shipmentResponse struct {
	Shipment shipmentBody `json:"shipment"`
}

type shipmentBody struct {
	ShipmentID string `json:"shipment_id"`
}

type orderResponse struct {
	ID                                      string              `json:"id"`
	CustomOrderNumber                       string              `json:"custom_order_number"`
	CustomerID                              string              `json:"customer_id"`
	StoreID                                 int                 `json:"store_id"`
	BillingAddressID                        *string             `json:"billing_address_id"`
	ShippingAddressID                       *string             `json:"shipping_address_id"`
	PaymentMethodSystemName                 string              `json:"payment_method_system_name"`
	ShippingMethod                          string              `json:"shipping_method"`
	ShippingRateComputationMethodSystemName string              `json:"shipping_rate_computation_method_system_name"`
	OrderStatus                             string              `json:"order_status"`
	CreatedOnUTC                            time.Time           `json:"created_on_utc"`
	OrderItems                              []orderItemResponse `json:"order_items"`
}

type orderItemResponse struct {
	ID            string           `json:"id"`
	ProductID     string           `json:"product_id"`
	Quantity      int              `json:"quantity"`
	ItemWeight    *decimal.Decimal `json:"item_weight"`
	IsShipEnabled bool             `json:"is_ship_enabled"`
}

func fromView(view queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:                                      view.ID.String(),
		CustomOrderNumber:                       view.CustomOrderNumber,
		CustomerID:                              view.CustomerID.String(),
		StoreID:                                 view.StoreID,
		PaymentMethodSystemName:                 view.PaymentMethodSystemName,
		ShippingMethod:                          view.ShippingMethod,
		ShippingRateComputationMethodSystemName: view.ShippingRateComputationMethodSystemName,
		OrderStatus:                             view.Status.String(),
		CreatedOnUTC:                            view.CreatedAt,
		OrderItems:                              make([]orderItemResponse, 0, len(view.Items)),
	}
	if view.BillingAddressID != nil {
		id := view.BillingAddressID.String()
		resp.BillingAddressID = &id
	}
	if view.ShippingAddressID != nil {
		id := view.ShippingAddressID.String()
		resp.ShippingAddressID = &id
	}
	for _, item := range view.Items {
		line := orderItemResponse{
			ID:            item.ID.String(),
			ProductID:     item.ProductID.String(),
			Quantity:      item.Quantity,
			IsShipEnabled: item.IsShipEnabled,
		}
		if item.Weight.Valid {
			weight := item.Weight.Decimal
			line.ItemWeight = &weight
		}
		resp.OrderItems = append(resp.OrderItems, line)
	}
	return resp
}

func fromViews(views []queries.OrderView) ordersResponse {
	resp := ordersResponse{Orders: make([]orderResponse, 0, len(views))}
	for _, view := range views {
		resp.Orders = append(resp.Orders, fromView(view))
	}
	return resp
}

func fromOrder(o *order.Order) orderResponse {
	details := o.Details()
	resp := orderResponse{
		ID:                                      o.ID().String(),
		CustomOrderNumber:                       o.CustomOrderNumber(),
		CustomerID:                              o.CustomerID().String(),
		StoreID:                                 o.StoreID(),
		PaymentMethodSystemName:                 o.PaymentMethodSystemName(),
		ShippingMethod:                          o.ShippingMethod(),
		ShippingRateComputationMethodSystemName: o.ShippingRateComputationMethodSystemName(),
		OrderStatus:                             o.Status().String(),
		CreatedOnUTC:                            o.CreatedAt().UTC(),
		OrderItems:                              make([]orderItemResponse, 0, len(o.Items())),
	}
	if details.BillingAddressID != nil {
		id := details.BillingAddressID.String()
		resp.BillingAddressID = &id
	}
	if details.ShippingAddressID != nil {
		id := details.ShippingAddressID.String()
		resp.ShippingAddressID = &id
	}
	for _, item := range o.Items() {
		line := orderItemResponse{
			ID:            item.ID().String(),
			ProductID:     item.ProductID().String(),
			Quantity:      item.Quantity(),
			IsShipEnabled: item.IsShipEnabled(),
		}
		if w := item.Weight(); w != nil {
			weight := w.Decimal()
			line.ItemWeight = &weight
		}
		resp.OrderItems = append(resp.OrderItems, line)
	}
	return resp
}
