package queries

import (
	"context"
	"errors"

	"ordersapi/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrCountOrdersQueryIsNotConstructed = errors.New(
	"CountOrdersQuery must be created via NewCountOrdersQuery constructor",
)

// CountOrdersQuery counts orders matching a filter.
type CountOrdersQuery struct {
	filter OrderFilter

	guard guard.ConstructorGuard
}

func NewCountOrdersQuery(filter OrderFilter) CountOrdersQuery {
	return CountOrdersQuery{filter: filter, guard: guard.NewConstructorGuard()}
}

func (q CountOrdersQuery) Validate() error {
	return q.guard.Validate(ErrCountOrdersQueryIsNotConstructed)
}

type CountOrdersQueryHandler struct {
	db *gorm.DB
}

func NewCountOrdersQueryHandler(db *gorm.DB) CountOrdersQueryHandler {
	return CountOrdersQueryHandler{db: db}
}

func (h CountOrdersQueryHandler) Handle(ctx context.Context, query CountOrdersQuery) (int64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := query.filter.apply(ctx, h.db).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
