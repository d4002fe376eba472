package customerrepo_test

import (
	"context"
	"testing"
	"time"

	"ordersapi/internal/adapters/out/postgres/customerrepo"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CustomerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *customerrepo.GormCustomerRepository
	tracker    *MockAggregateTracker
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&customerrepo.CustomerDTO{}, &customerrepo.AddressDTO{}, &customerrepo.AttributeDTO{}))
}

func (suite *CustomerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE customers, addresses, customer_attributes").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = customerrepo.NewGormCustomerRepository(suite.db, suite.tracker)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CustomerRepositoryIntegrationTestSuite) seedCustomer() kernel.UUID {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&customerrepo.CustomerDTO{ID: id.Bytes(), Email: "jane@example.com"}).Error)
	return id
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGetAndUpdateAddresses() {
	ctx := context.Background()
	id := suite.seedCustomer()

	c, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Equal("jane@example.com", c.Email())
	suite.Nil(c.ShippingAddressID())

	shipping := kernel.NewUUID()
	c.SetAddresses(nil, &shipping)
	suite.tracker.On("TrackAggregate", id, c).Once()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	reloaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)
	suite.Nil(reloaded.BillingAddressID())
	suite.Require().NotNil(reloaded.ShippingAddressID())
	suite.True(reloaded.ShippingAddressID().IsEqual(shipping))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGet_Missing() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	var notFound *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFound)
	suite.Equal("customer", notFound.ParamName)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestGetAddress() {
	id := kernel.NewUUID()
	suite.Require().NoError(suite.db.Create(&customerrepo.AddressDTO{
		ID:          id.Bytes(),
		CountryCode: "US",
		City:        "Seattle",
	}).Error)

	address, err := suite.repository.GetAddress(context.Background(), id)

	suite.Require().NoError(err)
	suite.Equal("US", address.CountryCode)
	suite.Equal("Seattle", address.City)
}

func (suite *CustomerRepositoryIntegrationTestSuite) TestSaveAttribute_UpsertsAndClears() {
	ctx := context.Background()
	id := suite.seedCustomer()

	suite.Require().NoError(suite.repository.SaveAttribute(ctx, id, customer.SelectedShippingOptionAttribute, `{"name":"Ground"}`, 1))
	suite.Require().NoError(suite.repository.SaveAttribute(ctx, id, customer.SelectedShippingOptionAttribute, `{"name":"Air"}`, 1))
	suite.Require().NoError(suite.repository.SaveAttribute(ctx, id, customer.SelectedShippingOptionAttribute, `{"name":"Other store"}`, 2))

	value, err := suite.repository.GetAttribute(ctx, id, customer.SelectedShippingOptionAttribute, 1)
	suite.Require().NoError(err)
	suite.JSONEq(`{"name":"Air"}`, value)

	suite.Require().NoError(suite.repository.SaveAttribute(ctx, id, customer.SelectedShippingOptionAttribute, "", 1))

	value, err = suite.repository.GetAttribute(ctx, id, customer.SelectedShippingOptionAttribute, 1)
	suite.Require().NoError(err)
	suite.Empty(value)

	value, err = suite.repository.GetAttribute(ctx, id, customer.SelectedShippingOptionAttribute, 2)
	suite.Require().NoError(err)
	suite.NotEmpty(value)
}

func TestCustomerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryIntegrationTestSuite))
}
