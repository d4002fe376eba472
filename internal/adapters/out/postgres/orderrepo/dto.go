// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// It stores the order aggregate in the orders, order_items and order_notes tables.
package orderrepo

import (
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID                                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomOrderNumber                       string     `gorm:"uniqueIndex;not null"`
	CustomerID                              uuid.UUID  `gorm:"type:uuid;index;not null"`
	StoreID                                 int        `gorm:"index;not null"`
	BillingAddressID                        *uuid.UUID `gorm:"type:uuid"`
	ShippingAddressID                       *uuid.UUID `gorm:"type:uuid"`
	PaymentMethodSystemName                 string
	ShippingMethod                          string
	ShippingRateComputationMethodSystemName string
	Status                                  int  `gorm:"index"`
	Deleted                                 bool `gorm:"index;not null;default:false"`
	CreatedAt                               time.Time
	Items                                   []OrderItemDTO `gorm:"foreignKey:OrderID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Weight is NULL when the product weight is unknown.
type OrderItemDTO struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID           `gorm:"type:uuid;index;not null"`
	ProductID     uuid.UUID           `gorm:"type:uuid;not null"`
	Quantity      int                 `gorm:"not null"`
	Weight        decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	IsShipEnabled bool                `gorm:"not null"`
	AttributesXML string
	RentalStart   *time.Time
	RentalEnd     *time.Time
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type OrderNoteDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index;not null"`
	Note              string    `gorm:"not null"`
	DisplayToCustomer bool
	CreatedAt         time.Time
}

func (OrderNoteDTO) TableName() string {
	return "order_notes"
}

func fromDomain(o *order.Order) OrderDTO {
	details := o.Details()
	items := make([]OrderItemDTO, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, itemFromDomain(item))
	}

	return OrderDTO{
		ID:                                      o.ID().Bytes(),
		CustomOrderNumber:                       o.CustomOrderNumber(),
		CustomerID:                              details.CustomerID.Bytes(),
		StoreID:                                 details.StoreID,
		BillingAddressID:                        rawID(details.BillingAddressID),
		ShippingAddressID:                       rawID(details.ShippingAddressID),
		PaymentMethodSystemName:                 details.PaymentMethodSystemName,
		ShippingMethod:                          details.ShippingMethod,
		ShippingRateComputationMethodSystemName: details.ShippingRateComputationMethodSystemName,
		Status:                                  int(o.Status()),
		Deleted:                                 o.IsDeleted(),
		CreatedAt:                               o.CreatedAt(),
		Items:                                   items,
	}
}

func itemFromDomain(item *order.Item) OrderItemDTO {
	var weight decimal.NullDecimal
	if w := item.Weight(); w != nil {
		weight = decimal.NewNullDecimal(w.Decimal())
	}

	return OrderItemDTO{
		ID:            item.ID().Bytes(),
		OrderID:       item.OrderID().Bytes(),
		ProductID:     item.ProductID().Bytes(),
		Quantity:      item.Quantity(),
		Weight:        weight,
		IsShipEnabled: item.IsShipEnabled(),
		AttributesXML: item.AttributesXML(),
		RentalStart:   item.RentalStart(),
		RentalEnd:     item.RentalEnd(),
	}
}

func noteFromDomain(note order.Note) OrderNoteDTO {
	return OrderNoteDTO{
		ID:                note.ID.Bytes(),
		OrderID:           note.OrderID.Bytes(),
		Note:              note.Text,
		DisplayToCustomer: note.DisplayToCustomer,
		CreatedAt:         note.CreatedAt,
	}
}

// toDomain reconstructs the aggregate using RestoreOrder. Items are restored when preloaded.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	billing, err := domainID(dto.BillingAddressID)
	if err != nil {
		return nil, err
	}
	shipping, err := domainID(dto.ShippingAddressID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	details := order.Details{
		StoreID:                                 dto.StoreID,
		CustomerID:                              customerID,
		BillingAddressID:                        billing,
		ShippingAddressID:                       shipping,
		PaymentMethodSystemName:                 dto.PaymentMethodSystemName,
		ShippingMethod:                          dto.ShippingMethod,
		ShippingRateComputationMethodSystemName: dto.ShippingRateComputationMethodSystemName,
	}

	return order.RestoreOrder(id, dto.CustomOrderNumber, details, order.Status(dto.Status), dto.Deleted, dto.CreatedAt, items)
}

func itemToDomain(dto OrderItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var weight *kernel.Weight
	if dto.Weight.Valid {
		w, weightErr := kernel.NewWeight(dto.Weight.Decimal)
		if weightErr != nil {
			return nil, weightErr
		}
		weight = &w
	}

	return order.RestoreItem(id, orderID, order.ItemParams{
		ProductID:     productID,
		Quantity:      dto.Quantity,
		Weight:        weight,
		IsShipEnabled: dto.IsShipEnabled,
		AttributesXML: dto.AttributesXML,
		RentalStart:   dto.RentalStart,
		RentalEnd:     dto.RentalEnd,
	})
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
