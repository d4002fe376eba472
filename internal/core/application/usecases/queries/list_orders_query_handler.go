package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler reads a page of order views.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := query.Filter().apply(ctx, h.db).
		Select(orderColumns).
		Order("created_at, id").
		Limit(query.Limit()).
		Offset((query.Page() - 1) * query.Limit()).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return loadViews(ctx, h.db, rows)
}
