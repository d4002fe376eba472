package queries

import (
	"errors"
	"fmt"

	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"
)

const (
	DefaultLimit = 50
	MaxLimit     = 250
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery pages through orders matching a filter, oldest first.
//
// Example:
//
//	status := order.Pending
//	query, err := NewListOrdersQuery(OrderFilter{Status: &status}, 0, 1)
//	if err != nil {
//	    return err
//	}
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	filter OrderFilter
	limit  int
	page   int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates paging. A zero limit means DefaultLimit and a zero page means the first page.
func NewListOrdersQuery(filter OrderFilter, limit, page int) (ListOrdersQuery, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if page == 0 {
		page = 1
	}

	invalid := errs.NewValidationError()
	if limit < 1 || limit > MaxLimit {
		invalid.Add("limit", fmt.Sprintf("Invalid limit parameter, must be between 1 and %d", MaxLimit))
	}
	if page < 1 {
		invalid.Add("page", "Invalid page parameter")
	}
	if invalid.HasErrors() {
		return ListOrdersQuery{}, invalid
	}

	return ListOrdersQuery{
		filter: filter,
		limit:  limit,
		page:   page,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }
func (q ListOrdersQuery) Limit() int { return q.limit }
func (q ListOrdersQuery) Page() int { return q.page }
