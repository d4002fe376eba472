// Package postgres provides the GORM-based Unit of Work that binds every
// repository of a business operation to one database transaction.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	uow.AfterCommit(func(ctx context.Context) { notify(ctx, o) })
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a no-op that returns gorm.ErrInvalidTransaction,
// which is why handlers can defer it unconditionally.
package postgres

import (
	"context"

	"ordersapi/internal/adapters/out/postgres/activityrepo"
	"ordersapi/internal/adapters/out/postgres/cartrepo"
	"ordersapi/internal/adapters/out/postgres/catalogrepo"
	"ordersapi/internal/adapters/out/postgres/customerrepo"
	"ordersapi/internal/adapters/out/postgres/orderrepo"
	"ordersapi/internal/adapters/out/postgres/shipmentrepo"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/ports"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewGormUnitOfWorkFactory(db *gorm.DB, logger *zap.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

// Create produces a fresh unit of work. Instances must not be shared between goroutines.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction, tracks the aggregates
// written through its repositories and runs post-commit callbacks.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	logger            *zap.Logger
	trackedAggregates []trackedAggregate
	afterCommit       []func(ctx context.Context)
}

// Begin starts a transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and then runs the registered callbacks in order.
// Callbacks are not run when the commit fails.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	callbacks := uow.afterCommit
	tracked := uow.trackedAggregates
	uow.reset()
	if err != nil {
		return err
	}

	for _, t := range tracked {
		uow.logger.Debug("aggregate committed", zap.Stringer("id", t.ID))
	}
	for _, fn := range callbacks {
		fn(ctx)
	}

	return nil
}

// Rollback discards the transaction together with tracked aggregates and pending callbacks.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.reset()
	return err
}

func (uow *GormUnitOfWork) AfterCommit(fn func(ctx context.Context)) {
	uow.afterCommit = append(uow.afterCommit, fn)
}

// TrackAggregate is called by repositories whenever an aggregate is added or updated.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) reset() {
	uow.afterCommit = nil
	uow.trackedAggregates = make([]trackedAggregate, 0)
}

// conn returns the open transaction, or the pool when no transaction is active.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) CustomerRepository() ports.CustomerRepository {
	return customerrepo.NewGormCustomerRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ProductRepository() ports.ProductRepository {
	return catalogrepo.NewGormProductRepository(uow.conn())
}

func (uow *GormUnitOfWork) CartRepository() ports.CartRepository {
	return cartrepo.NewGormCartRepository(uow.conn())
}

func (uow *GormUnitOfWork) ActivityLogRepository() ports.ActivityLogRepository {
	return activityrepo.NewGormActivityLogRepository(uow.conn())
}
