package customerrepo

import (
	"context"
	"errors"

	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormCustomerRepository(db *gorm.DB, tracker aggregateTracker) *GormCustomerRepository {
	return &GormCustomerRepository{db: db, tracker: tracker}
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", id)
		}
		return nil, err
	}
	return toDomain(dto)
}

// Update writes the customer's address references.
func (r *GormCustomerRepository) Update(ctx context.Context, aggregate *customer.Customer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID).
		Select("Email", "BillingAddressID", "ShippingAddressID").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCustomerRepository) GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error) {
	var dto AddressDTO
	if err := r.db.WithContext(ctx).Where("id = ?", id.Bytes()).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("address", id)
		}
		return nil, err
	}
	return addressToDomain(dto)
}

// SaveAttribute upserts the attribute. An empty value deletes the row.
func (r *GormCustomerRepository) SaveAttribute(ctx context.Context, customerID kernel.UUID, key, value string, storeID int) error {
	tx := r.db.WithContext(ctx)
	if value == "" {
		return tx.
			Where("customer_id = ? AND key = ? AND store_id = ?", customerID.Bytes(), key, storeID).
			Delete(&AttributeDTO{}).Error
	}

	dto := AttributeDTO{
		CustomerID: customerID.Bytes(),
		Key:        key,
		StoreID:    storeID,
		Value:      value,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "key"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&dto).Error
}

func (r *GormCustomerRepository) GetAttribute(ctx context.Context, customerID kernel.UUID, key string, storeID int) (string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Model(&AttributeDTO{}).
		Where("customer_id = ? AND key = ? AND store_id = ?", customerID.Bytes(), key, storeID).
		Limit(1).
		Pluck("value", &values).Error
	if err != nil || len(values) == 0 {
		return "", err
	}
	return values[0], nil
}
