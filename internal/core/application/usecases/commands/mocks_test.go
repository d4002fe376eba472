package commands_test

import (
	"context"
	"time"

	"ordersapi/internal/core/domain/model/activity"
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/domain/model/customer"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/domain/model/order"
	"ordersapi/internal/core/domain/model/shipment"
	"ordersapi/internal/core/domain/model/shipping"
	"ordersapi/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetByCustomOrderNumber(ctx context.Context, number string) (*order.Order, error) {
	args := m.Called(ctx, number)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetItems(ctx context.Context, orderID kernel.UUID, shipEnabled *bool) ([]*order.Item, error) {
	args := m.Called(ctx, orderID, shipEnabled)
	items, _ := args.Get(0).([]*order.Item)
	return items, args.Error(1)
}
func (m *MockOrderRepository) AddNote(ctx context.Context, note order.Note) error {
	return m.Called(ctx, note).Error(0)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) ([]*shipment.Shipment, error) {
	args := m.Called(ctx, orderID)
	shipments, _ := args.Get(0).([]*shipment.Shipment)
	return shipments, args.Error(1)
}
func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockShipmentRepository) AddItem(ctx context.Context, item *shipment.Item) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	return m.Called(ctx, s).Error(0)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}
func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCustomerRepository) GetAddress(ctx context.Context, id kernel.UUID) (*customer.Address, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*customer.Address)
	return a, args.Error(1)
}
func (m *MockCustomerRepository) SaveAttribute(ctx context.Context, customerID kernel.UUID, key, value string, storeID int) error {
	return m.Called(ctx, customerID, key, value, storeID).Error(0)
}
func (m *MockCustomerRepository) GetAttribute(ctx context.Context, customerID kernel.UUID, key string, storeID int) (string, error) {
	args := m.Called(ctx, customerID, key, storeID)
	return args.String(0), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*catalog.Product)
	return p, args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, entry cart.Entry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockCartRepository) Update(ctx context.Context, entry cart.Entry) error {
	return m.Called(ctx, entry).Error(0)
}
func (m *MockCartRepository) GetByCustomer(ctx context.Context, customerID kernel.UUID, storeID int, kind cart.Kind) ([]cart.Entry, error) {
	args := m.Called(ctx, customerID, storeID, kind)
	entries, _ := args.Get(0).([]cart.Entry)
	return entries, args.Error(1)
}
func (m *MockCartRepository) Clear(ctx context.Context, customerID kernel.UUID, storeID int) error {
	return m.Called(ctx, customerID, storeID).Error(0)
}
func (m *MockCartRepository) DeleteUpdatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockActivityLogRepository struct{ mock.Mock }

func (m *MockActivityLogRepository) Add(ctx context.Context, entry activity.Entry) error {
	return m.Called(ctx, entry).Error(0)
}

// MockUoW returns its repositories directly; only the transaction calls are recorded.
type MockUoW struct {
	mock.Mock

	orders     *MockOrderRepository
	shipments  *MockShipmentRepository
	customers  *MockCustomerRepository
	products   *MockProductRepository
	carts      *MockCartRepository
	activities *MockActivityLogRepository

	afterCommit []func(ctx context.Context)
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:     new(MockOrderRepository),
		shipments:  new(MockShipmentRepository),
		customers:  new(MockCustomerRepository),
		products:   new(MockProductRepository),
		carts:      new(MockCartRepository),
		activities: new(MockActivityLogRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Commit(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockUoW) Rollback(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *MockUoW) AfterCommit(fn func(ctx context.Context)) {
	m.afterCommit = append(m.afterCommit, fn)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository { return m.shipments }
func (m *MockUoW) CustomerRepository() ports.CustomerRepository { return m.customers }
func (m *MockUoW) ProductRepository() ports.ProductRepository { return m.products }
func (m *MockUoW) CartRepository() ports.CartRepository { return m.carts }
func (m *MockUoW) ActivityLogRepository() ports.ActivityLogRepository { return m.activities }

// expectTransaction allows Begin and the deferred Rollback; Commit is set up per test.
func (m *MockUoW) expectTransaction() {
	m.On("Begin", mock.Anything).Return(nil).Once()
	m.On("Rollback", mock.Anything).Return(nil).Once()
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	return m.Called().Get(0).(ports.UnitOfWork)
}

func factoryFor(uow *MockUoW) *MockUoWFactory {
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory
}

type MockAttributeCodec struct{ mock.Mock }

func (m *MockAttributeCodec) Encode(values []ports.AttributeValue) (string, error) {
	args := m.Called(values)
	return args.String(0), args.Error(1)
}
func (m *MockAttributeCodec) Decode(encoded string) ([]ports.AttributeValue, error) {
	args := m.Called(encoded)
	values, _ := args.Get(0).([]ports.AttributeValue)
	return values, args.Error(1)
}

type MockCartService struct{ mock.Mock }

func (m *MockCartService) AddToCart(ctx context.Context, carts ports.CartRepository, product *catalog.Product, entry cart.Entry) ([]string, error) {
	args := m.Called(ctx, carts, product, entry)
	warnings, _ := args.Get(0).([]string)
	return warnings, args.Error(1)
}

type MockRateProvider struct{ mock.Mock }

func (m *MockRateProvider) GetOptions(ctx context.Context, request shipping.Request) (shipping.Response, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(shipping.Response), args.Error(1)
}

type MockOrderProcessing struct{ mock.Mock }

func (m *MockOrderProcessing) PlaceOrder(ctx context.Context, uow ports.UnitOfWork, request ports.PaymentRequest) (ports.PlaceOrderResult, error) {
	args := m.Called(ctx, uow, request)
	return args.Get(0).(ports.PlaceOrderResult), args.Error(1)
}
func (m *MockOrderProcessing) MarkShipped(ctx context.Context, uow ports.UnitOfWork, s *shipment.Shipment, notify bool) error {
	return m.Called(ctx, uow, s, notify).Error(0)
}
func (m *MockOrderProcessing) DeleteOrder(ctx context.Context, uow ports.UnitOfWork, o *order.Order) error {
	return m.Called(ctx, uow, o).Error(0)
}
