package queries

import (
	"context"
	"errors"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"

	"gorm.io/gorm"
)

var ErrGetCustomerOrdersQueryIsNotConstructed = errors.New(
	"GetCustomerOrdersQuery must be created via NewGetCustomerOrdersQuery constructor",
)

// GetCustomerOrdersQuery reads every non-deleted order of a customer in a store.
type GetCustomerOrdersQuery struct {
	customerID kernel.UUID
	storeID    int

	guard guard.ConstructorGuard
}

func NewGetCustomerOrdersQuery(customerID kernel.UUID, storeID int) (GetCustomerOrdersQuery, error) {
	if customerID.IsZero() {
		return GetCustomerOrdersQuery{}, errs.NewFieldError("customer_id", "invalid customer_id")
	}
	return GetCustomerOrdersQuery{
		customerID: customerID,
		storeID:    storeID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerOrdersQueryIsNotConstructed)
}

type GetCustomerOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetCustomerOrdersQueryHandler(db *gorm.DB) GetCustomerOrdersQueryHandler {
	return GetCustomerOrdersQueryHandler{db: db}
}

func (h GetCustomerOrdersQueryHandler) Handle(ctx context.Context, query GetCustomerOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []orderRow
	err := OrderFilter{CustomerID: &query.customerID, StoreID: query.storeID}.apply(ctx, h.db).
		Select(orderColumns).
		Order("created_at DESC, id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return loadViews(ctx, h.db, rows)
}
