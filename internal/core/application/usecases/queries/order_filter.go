package queries

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Zero fields do not filter.
// Deleted orders are always excluded.
type OrderFilter struct {
	IDs          []kernel.UUID
	CreatedAtMin *time.Time
	CreatedAtMax *time.Time
	SinceID      *kernel.UUID
	Status       *order.Status
	CustomerID   *kernel.UUID
	StoreID      int
}

func (f OrderFilter) apply(ctx context.Context, db *gorm.DB) *gorm.DB {
	tx := db.WithContext(ctx).Table("orders").Where("deleted = ?", false)

	if len(f.IDs) > 0 {
		ids := make([]string, 0, len(f.IDs))
		for _, id := range f.IDs {
			ids = append(ids, id.String())
		}
		tx = tx.Where("id = ANY(?::uuid[])", pq.Array(ids))
	}
	if f.CreatedAtMin != nil {
		tx = tx.Where("created_at >= ?", f.CreatedAtMin.UTC())
	}
	if f.CreatedAtMax != nil {
		tx = tx.Where("created_at <= ?", f.CreatedAtMax.UTC())
	}
	if f.SinceID != nil {
		tx = tx.Where("created_at > (SELECT created_at FROM orders WHERE id = ?)", f.SinceID.Bytes())
	}
	if f.Status != nil {
		tx = tx.Where("status = ?", int(*f.Status))
	}
	if f.CustomerID != nil {
		tx = tx.Where("customer_id = ?", f.CustomerID.Bytes())
	}
	if f.StoreID > 0 {
		tx = tx.Where("store_id = ?", f.StoreID)
	}

	return tx
}
