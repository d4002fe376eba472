package commands

import (
	"time"

	"ordersapi/internal/core/domain/model/kernel"
	"ordersapi/internal/core/ports"
)

// OrderItemInput is one requested order line. Lines without a product are ignored.
type OrderItemInput struct {
	ProductID   *kernel.UUID
	Quantity    int
	RentalStart *time.Time
	RentalEnd   *time.Time
	Attributes  []ports.AttributeValue
}
