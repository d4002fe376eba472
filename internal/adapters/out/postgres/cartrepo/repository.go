// Package cartrepo persists shopping cart and wishlist entries.
package cartrepo

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index:idx_cart_owner"`
	StoreID       int       `gorm:"not null;index:idx_cart_owner"`
	Kind          int       `gorm:"not null;index:idx_cart_owner"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"`
	Quantity      int       `gorm:"not null"`
	AttributesXML string
	RentalStart   *time.Time
	RentalEnd     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time `gorm:"index;autoUpdateTime:false"`
}

func (EntryDTO) TableName() string {
	return "cart_entries"
}

// GormCartRepository implements ports.CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func (r *GormCartRepository) Add(ctx context.Context, entry cart.Entry) error {
	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormCartRepository) Update(ctx context.Context, entry cart.Entry) error {
	dto := fromDomain(entry)
	result := r.db.WithContext(ctx).
		Model(&EntryDTO{}).
		Where("id = ?", dto.ID).
		Select("Quantity", "AttributesXML", "RentalStart", "RentalEnd", "UpdatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cart_entry", entry.ID)
	}
	return nil
}

func (r *GormCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID, storeID int, kind cart.Kind) ([]cart.Entry, error) {
	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND store_id = ? AND kind = ?", customerID.Bytes(), storeID, int(kind)).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]cart.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *GormCartRepository) Clear(ctx context.Context, customerID kernel.UUID, storeID int) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND store_id = ? AND kind = ?", customerID.Bytes(), storeID, int(cart.ShoppingCart)).
		Delete(&EntryDTO{}).Error
}

func (r *GormCartRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", cutoff).Delete(&EntryDTO{})
	return result.RowsAffected, result.Error
}

func fromDomain(entry cart.Entry) EntryDTO {
	return EntryDTO{
		ID:            entry.ID.Bytes(),
		CustomerID:    entry.CustomerID.Bytes(),
		StoreID:       entry.StoreID,
		Kind:          int(entry.Kind),
		ProductID:     entry.ProductID.Bytes(),
		Quantity:      entry.Quantity,
		AttributesXML: entry.AttributesXML,
		RentalStart:   entry.RentalStart,
		RentalEnd:     entry.RentalEnd,
		CreatedAt:     entry.CreatedAt,
		UpdatedAt:     entry.UpdatedAt,
	}
}

func toDomain(dto EntryDTO) (cart.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return cart.Entry{}, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return cart.Entry{}, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return cart.Entry{}, err
	}
	return cart.Entry{
		ID:            id,
		CustomerID:    customerID,
		ProductID:     productID,
		StoreID:       dto.StoreID,
		Kind:          cart.Kind(dto.Kind),
		Quantity:      dto.Quantity,
		AttributesXML: dto.AttributesXML,
		RentalStart:   dto.RentalStart,
		RentalEnd:     dto.RentalEnd,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
	}, nil
}
