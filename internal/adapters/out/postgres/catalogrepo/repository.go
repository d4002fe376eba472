// Package catalogrepo reads products from the catalog tables.
package catalogrepo

import (
	"context"
	"errors"

	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductDTO struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name                 string              `gorm:"not null"`
	Published            bool                `gorm:"not null"`
	IsShipEnabled        bool                `gorm:"not null"`
	IsFreeShipping       bool                `gorm:"not null"`
	IsRental             bool                `gorm:"not null"`
	Weight               decimal.NullDecimal `gorm:"type:numeric(18,4)"`
	OrderMinimumQuantity int                 `gorm:"not null"`
	OrderMaximumQuantity int                 `gorm:"not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

func toDomain(dto ProductDTO) (*catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
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

	return &catalog.Product{
		ID:                   id,
		Name:                 dto.Name,
		Published:            dto.Published,
		IsShipEnabled:        dto.IsShipEnabled,
		IsFreeShipping:       dto.IsFreeShipping,
		IsRental:             dto.IsRental,
		Weight:               weight,
		OrderMinimumQuantity: dto.OrderMinimumQuantity,
		OrderMaximumQuantity: dto.OrderMaximumQuantity,
	}, nil
}
