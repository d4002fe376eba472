package queries

import (
	"context"
	"errors"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one non-deleted order by id.
type GetOrderQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id kernel.UUID) (GetOrderQuery, error) {
	if id.IsZero() {
		return GetOrderQuery{}, errs.NewFieldError("id", "invalid id")
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist or is deleted.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	var rows []orderRow
	err := OrderFilter{IDs: []kernel.UUID{query.id}}.apply(ctx, h.db).
		Select(orderColumns).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return OrderView{}, err
	}
	if len(rows) == 0 {
		return OrderView{}, errs.NewObjectNotFoundError("order", query.id)
	}

	views, err := loadViews(ctx, h.db, rows)
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}
