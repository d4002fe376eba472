// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"ordersapi/internal/core/ports"
)

// UoWFactory creates the unit of work a command handler runs in.
//
// Example:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, id)
//	// ... perform operations
//
//	err = uow.Commit(ctx)
type UoWFactory interface {
	Create() ports.UnitOfWork
}

// OrderSettings are the store-level rules the order commands apply.
type OrderSettings struct {
	// DefaultStoreID is used when a request names no store.
	DefaultStoreID int

	// RejectUnmatchedShippingOption turns an unknown shipping option name into a
	// validation error instead of clearing the customer's selection.
	RejectUnmatchedShippingOption bool
}
