package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// Repositories gives access to repositories bound to the current transaction.
// Collaborators that take part in a command's transaction receive this view.
type Repositories interface {
	OrderRepository() OrderRepository
	ShipmentRepository() ShipmentRepository
	CustomerRepository() CustomerRepository
	ProductRepository() ProductRepository
	CartRepository() CartRepository
	ActivityLogRepository() ActivityLogRepository
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then runs the AfterCommit callbacks.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and discards the AfterCommit callbacks.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// AfterCommit registers fn to run once the transaction has been committed.
	AfterCommit(fn func(ctx context.Context))

	Repositories
}
