// Package cartsvc implements the cart service on top of the cart repository.
package cartsvc

import (
	"context"
	"fmt"
	"time"

	"ordersapi/internal/core/domain/model/cart"
	"ordersapi/internal/core/domain/model/catalog"
	"ordersapi/internal/core/ports"
)

// Service validates product rules and merges identical lines before writing to the cart.
// Lines carrying the same attribute choices merge even when their encoded form differs.
type Service struct {
	codec ports.AttributeCodec
	now   func() time.Time
}

func NewService(codec ports.AttributeCodec) *Service {
	return &Service{codec: codec, now: time.Now}
}

// AddToCart returns business-rule warnings instead of an error; nothing is written when any warning is reported.
func (s *Service) AddToCart(ctx context.Context, carts ports.CartRepository, product *catalog.Product, entry cart.Entry) ([]string, error) {
	existing, err := carts.GetByCustomer(ctx, entry.CustomerID, entry.StoreID, entry.Kind)
	if err != nil {
		return nil, err
	}

	var current *cart.Entry
	for i := range existing {
		same, err := s.sameLine(existing[i], entry)
		if err != nil {
			return nil, err
		}
		if same {
			current = &existing[i]
			break
		}
	}

	quantity := entry.Quantity
	if current != nil {
		quantity += current.Quantity
	}

	if warnings := validate(product, entry, quantity); len(warnings) > 0 {
		return warnings, nil
	}

	if current == nil {
		return nil, carts.Add(ctx, entry)
	}

	current.Quantity = quantity
	current.UpdatedAt = s.now().UTC()
	return nil, carts.Update(ctx, *current)
}

func (s *Service) sameLine(existing, entry cart.Entry) (bool, error) {
	stored := existing.AttributesXML
	existing.AttributesXML = entry.AttributesXML
	if !existing.SameLine(entry) {
		return false, nil
	}
	if stored == entry.AttributesXML {
		return true, nil
	}
	return s.sameAttributes(stored, entry.AttributesXML)
}

// sameAttributes compares two encoded selections as multisets.
func (s *Service) sameAttributes(a, b string) (bool, error) {
	left, err := s.codec.Decode(a)
	if err != nil {
		return false, fmt.Errorf("cart line attributes: %w", err)
	}
	right, err := s.codec.Decode(b)
	if err != nil {
		return false, fmt.Errorf("cart line attributes: %w", err)
	}
	if len(left) != len(right) {
		return false, nil
	}

	counts := make(map[ports.AttributeValue]int, len(left))
	for _, v := range left {
		counts[v]++
	}
	for _, v := range right {
		if counts[v] == 0 {
			return false, nil
		}
		counts[v]--
	}
	return true, nil
}

func validate(product *catalog.Product, entry cart.Entry, quantity int) []string {
	var warnings []string
	if !product.Published {
		warnings = append(warnings, fmt.Sprintf("Product %s is not published", product.Name))
	}
	if product.OrderMinimumQuantity > 0 && quantity < product.OrderMinimumQuantity {
		warnings = append(warnings, fmt.Sprintf("The minimum quantity allowed for purchase is %d.", product.OrderMinimumQuantity))
	}
	if product.OrderMaximumQuantity > 0 && quantity > product.OrderMaximumQuantity {
		warnings = append(warnings, fmt.Sprintf("The maximum quantity allowed for purchase is %d.", product.OrderMaximumQuantity))
	}
	if product.IsRental {
		switch {
		case entry.RentalStart == nil:
			warnings = append(warnings, "Rental start date should be specified")
		case entry.RentalEnd == nil:
			warnings = append(warnings, "Rental end date should be specified")
		case entry.RentalEnd.Before(*entry.RentalStart):
			warnings = append(warnings, "Rental end date should be after the start date")
		}
	}
	return warnings
}
