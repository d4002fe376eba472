package queries_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "ordersapi/internal/adapters/out/postgres"
	"ordersapi/internal/core/application/usecases/queries"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type OrderQueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory

	customerID kernel.UUID
	base       time.Time
}

func (suite *OrderQueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, zap.NewNop())
}

func (suite *OrderQueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	suite.customerID = kernel.NewUUID()
	suite.base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderQueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

// seed stores an order created minutesLater after the suite's base time.
func (suite *OrderQueriesIntegrationTestSuite) seed(customerID kernel.UUID, minutesLater int) *order.Order {
	weight := kernel.MustWeight("1.5")
	item, err := order.NewItem(order.ItemParams{ProductID: kernel.NewUUID(), Quantity: 2, Weight: &weight, IsShipEnabled: true})
	suite.Require().NoError(err)

	id := kernel.NewUUID()
	o, err := order.NewOrder(id, id.String(), order.NewDraft(customerID, 1), []*order.Item{item},
		suite.base.Add(time.Duration(minutesLater)*time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *OrderQueriesIntegrationTestSuite) TestListOrders_PagesOldestFirst() {
	ctx := context.Background()
	first := suite.seed(suite.customerID, 0)
	second := suite.seed(suite.customerID, 1)
	third := suite.seed(suite.customerID, 2)

	query, err := queries.NewListOrdersQuery(queries.OrderFilter{}, 2, 1)
	suite.Require().NoError(err)
	page1, err := queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	query, err = queries.NewListOrdersQuery(queries.OrderFilter{}, 2, 2)
	suite.Require().NoError(err)
	page2, err := queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(page1, 2)
	suite.True(page1[0].ID.IsEqual(first.ID()))
	suite.True(page1[1].ID.IsEqual(second.ID()))
	suite.Require().Len(page2, 1)
	suite.True(page2[0].ID.IsEqual(third.ID()))
	suite.Require().Len(page1[0].Items, 1)
	suite.Equal(2, page1[0].Items[0].Quantity)
	suite.True(page1[0].Items[0].Weight.Valid)
}

func (suite *OrderQueriesIntegrationTestSuite) TestListOrders_Filters() {
	ctx := context.Background()
	first := suite.seed(suite.customerID, 0)
	second := suite.seed(suite.customerID, 10)
	other := suite.seed(kernel.NewUUID(), 20)

	deleted := suite.seed(suite.customerID, 30)
	deleted.MarkDeleted()
	suite.Require().NoError(suite.factory.Create().OrderRepository().Update(ctx, deleted))

	list := func(filter queries.OrderFilter) []queries.OrderView {
		query, err := queries.NewListOrdersQuery(filter, 0, 0)
		suite.Require().NoError(err)
		views, err := queries.NewListOrdersQueryHandler(suite.db).Handle(ctx, query)
		suite.Require().NoError(err)
		return views
	}

	suite.Len(list(queries.OrderFilter{}), 3, "Deleted orders are excluded")
	suite.Len(list(queries.OrderFilter{CustomerID: &suite.customerID}), 2)

	byIDs := list(queries.OrderFilter{IDs: []kernel.UUID{second.ID(), other.ID()}})
	suite.Len(byIDs, 2)

	firstID := first.ID()
	since := list(queries.OrderFilter{SinceID: &firstID})
	suite.Len(since, 2)

	minCreated := suite.base.Add(5 * time.Minute)
	maxCreated := suite.base.Add(15 * time.Minute)
	window := list(queries.OrderFilter{CreatedAtMin: &minCreated, CreatedAtMax: &maxCreated})
	suite.Require().Len(window, 1)
	suite.True(window[0].ID.IsEqual(second.ID()))

	complete := order.Complete
	suite.Empty(list(queries.OrderFilter{Status: &complete}))
}

func (suite *OrderQueriesIntegrationTestSuite) TestCountOrders() {
	suite.seed(suite.customerID, 0)
	suite.seed(suite.customerID, 1)
	suite.seed(kernel.NewUUID(), 2)

	count, err := queries.NewCountOrdersQueryHandler(suite.db).
		Handle(context.Background(), queries.NewCountOrdersQuery(queries.OrderFilter{CustomerID: &suite.customerID}))

	suite.Require().NoError(err)
	suite.Equal(int64(2), count)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetOrder() {
	ctx := context.Background()
	o := suite.seed(suite.customerID, 0)

	query, err := queries.NewGetOrderQuery(o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(o.CustomOrderNumber(), view.CustomOrderNumber)
	suite.Equal(order.Pending, view.Status)
	suite.True(view.CustomerID.IsEqual(suite.customerID))
	suite.Nil(view.ShippingAddressID)

	query, err = queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = queries.NewGetOrderQueryHandler(suite.db).Handle(ctx, query)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderQueriesIntegrationTestSuite) TestGetCustomerOrders_NewestFirst() {
	older := suite.seed(suite.customerID, 0)
	newer := suite.seed(suite.customerID, 5)
	suite.seed(kernel.NewUUID(), 10)

	query, err := queries.NewGetCustomerOrdersQuery(suite.customerID, 1)
	suite.Require().NoError(err)
	views, err := queries.NewGetCustomerOrdersQueryHandler(suite.db).Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(views, 2)
	suite.True(views[0].ID.IsEqual(newer.ID()))
	suite.True(views[1].ID.IsEqual(older.ID()))
}

func TestOrderQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderQueriesIntegrationTestSuite))
}
