// Package shipmentrepo persists shipments and shipment items.
package shipmentrepo

import (
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShipmentDTO struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID           `gorm:"type:uuid;index;not null"`
	TrackingNumber string              `gorm:"not null;default:''"`
	AdminComment   string              `gorm:"not null;default:''"`
	TotalWeight    decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	ShippedAt      *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	Items          []ShipmentItemDTO `gorm:"foreignKey:ShipmentID"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type ShipmentItemDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID `gorm:"type:uuid;index;not null"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"not null"`
	WarehouseID int       `gorm:"not null;default:0"`
}

func (ShipmentItemDTO) TableName() string {
	return "shipment_items"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	var weight decimal.NullDecimal
	if w := s.TotalWeight(); w != nil {
		weight = decimal.NewNullDecimal(w.Decimal())
	}
	return ShipmentDTO{
		ID:             s.ID().Bytes(),
		OrderID:        s.OrderID().Bytes(),
		TrackingNumber: s.TrackingNumber(),
		AdminComment:   s.AdminComment(),
		TotalWeight:    weight,
		ShippedAt:      s.ShippedAt(),
		DeliveredAt:    s.DeliveredAt(),
		CreatedAt:      s.CreatedAt(),
	}
}

func itemFromDomain(item *shipment.Item) ShipmentItemDTO {
	return ShipmentItemDTO{
		ID:          item.ID().Bytes(),
		ShipmentID:  item.ShipmentID().Bytes(),
		OrderItemID: item.OrderItemID().Bytes(),
		Quantity:    item.Quantity(),
		WarehouseID: item.WarehouseID(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var weight *kernel.Weight
	if dto.TotalWeight.Valid {
		w, weightErr := kernel.NewWeight(dto.TotalWeight.Decimal)
		if weightErr != nil {
			return nil, weightErr
		}
		weight = &w
	}

	items := make([]*shipment.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return shipment.RestoreShipment(id, orderID, dto.TrackingNumber, dto.AdminComment, weight,
		dto.ShippedAt, dto.DeliveredAt, dto.CreatedAt, items)
}

func itemToDomain(dto ShipmentItemDTO) (*shipment.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}
	orderItemID, err := kernel.UUIDFromBytes(dto.OrderItemID[:])
	if err != nil {
		return nil, err
	}
	return shipment.RestoreItem(id, shipmentID, orderItemID, dto.Quantity, dto.WarehouseID)
}
