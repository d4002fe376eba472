// Package cart models shopping cart entries staged before an order is placed.
package cart

import (
	"errors"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/pkg/errs"
)

// Kind distinguishes the shopping cart from the wishlist.
type Kind int

const (
	ShoppingCart Kind = 1
	Wishlist     Kind = 2
)

// Entry is one product line in a customer's cart for a store.
type Entry struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	ProductID     kernel.UUID
	StoreID       int
	Kind          Kind
	Quantity      int
	AttributesXML string
	RentalStart   *time.Time
	RentalEnd     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewEntry builds a shopping cart entry. Rental dates are kept as given; callers clear them for non-rental products.
func NewEntry(customerID, productID kernel.UUID, storeID, quantity int, attributesXML string, rentalStart, rentalEnd *time.Time, now time.Time) (Entry, error) {
	if err := errors.Join(customerID.Validate(), productID.Validate()); err != nil {
		return Entry{}, err
	}
	if quantity < 1 {
		return Entry{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Entry{
		ID:            kernel.NewUUID(),
		CustomerID:    customerID,
		ProductID:     productID,
		StoreID:       storeID,
		Kind:          ShoppingCart,
		Quantity:      quantity,
		AttributesXML: attributesXML,
		RentalStart:   rentalStart,
		RentalEnd:     rentalEnd,
		CreatedAt:     now.UTC(),
		UpdatedAt:     now.UTC(),
	}, nil
}

// SameLine reports whether e and other would merge into a single cart line.
func (e Entry) SameLine(other Entry) bool {
	return e.CustomerID.IsEqual(other.CustomerID) &&
		e.ProductID.IsEqual(other.ProductID) &&
		e.StoreID == other.StoreID &&
		e.Kind == other.Kind &&
		e.AttributesXML == other.AttributesXML &&
		sameTime(e.RentalStart, other.RentalStart) &&
		sameTime(e.RentalEnd, other.RentalEnd)
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
