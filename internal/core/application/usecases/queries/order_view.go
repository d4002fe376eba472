// Package queries contains read operations over orders.
// Query handlers read straight from the database and return flat views,
// bypassing the aggregates used by the command side.
package queries

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderView is the read model of an order returned by every order query.
type OrderView struct {
	ID                                      kernel.UUID
	CustomOrderNumber                       string
	CustomerID                              kernel.UUID
	StoreID                                 int
	BillingAddressID                        *kernel.UUID
	ShippingAddressID                       *kernel.UUID
	PaymentMethodSystemName                 string
	ShippingMethod                          string
	ShippingRateComputationMethodSystemName string
	Status                                  order.Status
	CreatedAt                               time.Time
	Items                                   []OrderItemView
}

type OrderItemView struct {
	ID            kernel.UUID
	ProductID     kernel.UUID
	Quantity      int
	Weight        decimal.NullDecimal
	IsShipEnabled bool
}

type orderRow struct {
	ID                                      uuid.UUID
	CustomOrderNumber                       string
	CustomerID                              uuid.UUID
	StoreID                                 int
	BillingAddressID                        uuid.NullUUID
	ShippingAddressID                       uuid.NullUUID
	PaymentMethodSystemName                 string
	ShippingMethod                          string
	ShippingRateComputationMethodSystemName string
	Status                                  int
	CreatedAt                               time.Time
}

type orderItemRow struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
	Weight        decimal.NullDecimal
	IsShipEnabled bool
}

const orderColumns = `id, custom_order_number, customer_id, store_id, billing_address_id, shipping_address_id,
	payment_method_system_name, shipping_method, shipping_rate_computation_method_system_name, status, created_at`

// loadViews converts rows into views and attaches their items with a single query.
func loadViews(ctx context.Context, db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	views := make([]OrderView, 0, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(rows))
	index := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		view, err := row.toView()
		if err != nil {
			return nil, err
		}
		index[row.ID] = len(views)
		views = append(views, view)
		ids = append(ids, row.ID.String())
	}

	var items []orderItemRow
	err := db.WithContext(ctx).Raw(`
		SELECT id, order_id, product_id, quantity, weight, is_ship_enabled
		FROM order_items
		WHERE order_id = ANY(?::uuid[])
		ORDER BY order_id, id
	`, pq.Array(ids)).Scan(&items).Error
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		id, err := kernel.UUIDFromBytes(item.ID[:])
		if err != nil {
			return nil, err
		}
		productID, err := kernel.UUIDFromBytes(item.ProductID[:])
		if err != nil {
			return nil, err
		}

		i := index[item.OrderID]
		views[i].Items = append(views[i].Items, OrderItemView{
			ID:            id,
			ProductID:     productID,
			Quantity:      item.Quantity,
			Weight:        item.Weight,
			IsShipEnabled: item.IsShipEnabled,
		})
	}

	return views, nil
}

func (r orderRow) toView() (OrderView, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return OrderView{}, err
	}
	customerID, err := kernel.UUIDFromBytes(r.CustomerID[:])
	if err != nil {
		return OrderView{}, err
	}
	billing, err := nullableID(r.BillingAddressID)
	if err != nil {
		return OrderView{}, err
	}
	shipping, err := nullableID(r.ShippingAddressID)
	if err != nil {
		return OrderView{}, err
	}

	return OrderView{
		ID:                                      id,
		CustomOrderNumber:                       r.CustomOrderNumber,
		CustomerID:                              customerID,
		StoreID:                                 r.StoreID,
		BillingAddressID:                        billing,
		ShippingAddressID:                       shipping,
		PaymentMethodSystemName:                 r.PaymentMethodSystemName,
		ShippingMethod:                          r.ShippingMethod,
		ShippingRateComputationMethodSystemName: r.ShippingRateComputationMethodSystemName,
		Status:                                  order.Status(r.Status),
		CreatedAt:                               r.CreatedAt.UTC(),
		Items:                                   []OrderItemView{},
	}, nil
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
