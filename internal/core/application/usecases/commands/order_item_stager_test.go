package commands_test

import (
	"testing"
	"time"

	"ordersapi/internal/core/application/usecases/commands"
	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/ports"
	"ordersapi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func product(shipEnabled, rental bool) *catalog.Product {
	return &catalog.Product{
		ID:            kernel.NewUUID(),
		Name:          "Widget",
		Published:     true,
		IsShipEnabled: shipEnabled,
		IsRental:      rental,
	}
}

func itemFor(p *catalog.Product, quantity int) commands.OrderItemInput {
	id := p.ID
	return commands.OrderItemInput{ProductID: &id, Quantity: quantity}
}

func TestOrderItemStager_Stage_ShippingRequired(t *testing.T) {
	tests := []struct {
		name     string
		products []*catalog.Product
		want     bool
	}{
		{"no ship-enabled product", []*catalog.Product{product(false, false), product(false, false)}, false},
		{"one ship-enabled product", []*catalog.Product{product(false, false), product(true, false)}, true},
		{"all ship-enabled", []*catalog.Product{product(true, false)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCustomer(t, nil)
			uow := newMockUoW()
			codec := new(MockAttributeCodec)
			codec.On("Encode", mock.Anything).Return("", nil)
			carts := new(MockCartService)
			carts.On("AddToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)

			items := make([]commands.OrderItemInput, 0, len(tt.products))
			for _, p := range tt.products {
				uow.products.On("Get", mock.Anything, p.ID).Return(p, nil).Once()
				items = append(items, itemFor(p, 1))
			}
			staged := []cart.Entry{{ID: kernel.NewUUID()}}
			uow.carts.On("GetByCustomer", mock.Anything, c.ID(), 1, cart.ShoppingCart).Return(staged, nil).Once()

			result, err := commands.NewOrderItemStager(codec, carts).Stage(t.Context(), uow, items, c, 1)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.ShippingRequired)
			assert.Equal(t, staged, result.Entries)
			carts.AssertNumberOfCalls(t, "AddToCart", len(tt.products))
		})
	}
}

func TestOrderItemStager_Stage_CollectsEveryWarning(t *testing.T) {
	c := newCustomer(t, nil)
	first, second := product(true, false), product(true, false)
	uow := newMockUoW()
	uow.products.On("Get", mock.Anything, first.ID).Return(first, nil).Once()
	uow.products.On("Get", mock.Anything, second.ID).Return(second, nil).Once()
	codec := new(MockAttributeCodec)
	codec.On("Encode", mock.Anything).Return("", nil)
	carts := new(MockCartService)
	carts.On("AddToCart", mock.Anything, mock.Anything, first, mock.Anything).Return([]string{"The product is out of stock"}, nil).Once()
	carts.On("AddToCart", mock.Anything, mock.Anything, second, mock.Anything).Return([]string{"The minimum quantity allowed is 2"}, nil).Once()

	_, err := commands.NewOrderItemStager(codec, carts).Stage(t.Context(), uow, []commands.OrderItemInput{itemFor(first, 1), itemFor(second, 1)}, c, 1)

	var verr *errs.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"The product is out of stock", "The minimum quantity allowed is 2"}, verr.Fields["order"])
	carts.AssertExpectations(t)
	uow.carts.AssertNotCalled(t, "GetByCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderItemStager_Stage_ProductNotFound(t *testing.T) {
	c := newCustomer(t, nil)
	id := kernel.NewUUID()
	uow := newMockUoW()
	uow.products.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("product", id)).Once()

	_, err := commands.NewOrderItemStager(new(MockAttributeCodec), new(MockCartService)).
		Stage(t.Context(), uow, []commands.OrderItemInput{{ProductID: &id, Quantity: 1}}, c, 1)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderItemStager_Stage_EntryShape(t *testing.T) {
	c := newCustomer(t, nil)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	attrs := []ports.AttributeValue{{ID: 7, Value: "Red"}}

	plain := product(true, false)
	rental := product(true, true)
	uow := newMockUoW()
	uow.products.On("Get", mock.Anything, plain.ID).Return(plain, nil)
	uow.products.On("Get", mock.Anything, rental.ID).Return(rental, nil)
	uow.carts.On("GetByCustomer", mock.Anything, c.ID(), 2, cart.ShoppingCart).Return([]cart.Entry{}, nil)
	codec := new(MockAttributeCodec)
	codec.On("Encode", attrs).Return("<Attributes/>", nil)

	var added []cart.Entry
	carts := new(MockCartService)
	carts.On("AddToCart", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { added = append(added, args.Get(3).(cart.Entry)) }).
		Return(nil, nil)

	items := []commands.OrderItemInput{
		{ProductID: nil, Quantity: 1},
		{ProductID: &plain.ID, Quantity: 3, RentalStart: &start, RentalEnd: &end, Attributes: attrs},
		{ProductID: &rental.ID, Quantity: 1, RentalStart: &start, RentalEnd: &end, Attributes: attrs},
	}
	_, err := commands.NewOrderItemStager(codec, carts).Stage(t.Context(), uow, items, c, 2)

	require.NoError(t, err)
	require.Len(t, added, 2)
	assert.Nil(t, added[0].RentalStart)
	assert.Nil(t, added[0].RentalEnd)
	assert.Equal(t, 3, added[0].Quantity)
	assert.Equal(t, "<Attributes/>", added[0].AttributesXML)
	assert.Equal(t, 2, added[0].StoreID)
	require.NotNil(t, added[1].RentalStart)
	assert.Equal(t, start, *added[1].RentalStart)
}
