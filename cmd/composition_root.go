package cmd

import (
	"fmt"

	httpin "ordersapi/internal/adapters/in/http"
	"ordersapi/internal/adapters/out/attributes"
	"ordersapi/internal/adapters/out/cartsvc"
	"ordersapi/internal/adapters/out/mail"
	"ordersapi/internal/adapters/out/postgres"
	"ordersapi/internal/adapters/out/processing"
	"ordersapi/internal/adapters/out/shipping"
	"ordersapi/internal/core/application/usecases/commands"
	"ordersapi/internal/core/application/usecases/queries"
	"ordersapi/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	logger     *zap.Logger
	uowFactory *postgres.GormUnitOfWorkFactory
	processor  *processing.OrderProcessor
	rates      *shipping.FixedRateProvider
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *zap.Logger) (CompositionRoot, error) {
	options, err := shipping.ParseRates(config.ShippingRates)
	if err != nil {
		return CompositionRoot{}, fmt.Errorf("invalid shipping rates: %w", err)
	}

	notifier := mail.NewSendGridNotifier(config.SendGridAPIKey, config.MailFromAddress, config.MailFromName, logger)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		logger:     logger,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		processor:  processing.NewOrderProcessor(config.PaymentMethods, notifier, logger),
		rates:      shipping.NewFixedRateProvider().Register(config.ShippingProviderSystemName, options...),
	}, nil
}

func (c *CompositionRoot) OrderSettings() commands.OrderSettings {
	return commands.OrderSettings{
		DefaultStoreID:                c.config.DefaultStoreID,
		RejectUnmatchedShippingOption: c.config.RejectUnmatchedShippingOption,
	}
}

func (c *CompositionRoot) CreateShippingOptionResolver() commands.ShippingOptionResolver {
	return commands.NewShippingOptionResolver(c.rates, c.OrderSettings(), c.logger.Named("shipping"))
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	codec := attributes.NewXMLCodec()
	stager := commands.NewOrderItemStager(codec, cartsvc.NewService(codec))
	return commands.NewCreateOrderCommandHandler(
		c.uowFactory,
		stager,
		c.CreateShippingOptionResolver(),
		c.processor,
		c.OrderSettings(),
	)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.uowFactory, c.CreateShippingOptionResolver())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.uowFactory, c.processor)
}

func (c *CompositionRoot) CreateShipCompleteCommandHandler() commands.ShipCompleteCommandHandler {
	return commands.NewShipCompleteCommandHandler(c.uowFactory, c.processor)
}

func (c *CompositionRoot) CreatePurgeStaleCartsCommandHandler() commands.PurgeStaleCartsCommandHandler {
	return commands.NewPurgeStaleCartsCommandHandler(c.uowFactory)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCountOrdersQueryHandler() queries.CountOrdersQueryHandler {
	return queries.NewCountOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		UpdateOrder:       c.CreateUpdateOrderCommandHandler(),
		DeleteOrder:       c.CreateDeleteOrderCommandHandler(),
		ShipComplete:      c.CreateShipCompleteCommandHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		CountOrders:       c.CreateCountOrdersQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetCustomerOrders: c.CreateGetCustomerOrdersQueryHandler(),
	}, c.config.DefaultStoreID, c.logger.Named("http"))
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreatePurgeStaleCartsCommandHandler(),
		c.config.CartCleanupSchedule,
		c.config.CartTTL,
		c.logger.Named("jobs"),
	)
}
