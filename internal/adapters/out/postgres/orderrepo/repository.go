package orderrepo

import (
	"context"
	"errors"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the order header, including zero values. Items are left untouched.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("ID", "CreatedAt", "Items").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a non-deleted order with its items.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "order", id, "id = ?", id.Bytes())
}

// GetByCustomOrderNumber retrieves a non-deleted order with its items by its public number.
func (r *GormOrderRepository) GetByCustomOrderNumber(ctx context.Context, customOrderNumber string) (*order.Order, error) {
	return r.first(ctx, "order", customOrderNumber, "custom_order_number = ?", customOrderNumber)
}

func (r *GormOrderRepository) first(ctx context.Context, param string, id any, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("deleted = ?", false).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetItems returns the order lines, optionally filtered by the ship-enabled flag.
func (r *GormOrderRepository) GetItems(ctx context.Context, orderID kernel.UUID, shipEnabled *bool) ([]*order.Item, error) {
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes())
	if shipEnabled != nil {
		tx = tx.Where("is_ship_enabled = ?", *shipEnabled)
	}

	var dtos []OrderItemDTO
	if err := tx.Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := itemToDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *GormOrderRepository) AddNote(ctx context.Context, note order.Note) error {
	dto := noteFromDomain(note)
	return r.db.WithContext(ctx).Create(&dto).Error
}
