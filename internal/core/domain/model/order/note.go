package order

import (
	"errors"
	"time"

	"ordersapi/internal/core/domain/model/kernel"
)

var ErrNoteIsEmpty = errors.New("order note text is required")

// Note is a timestamped remark on an order, optionally visible to the customer.
type Note struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	Text              string
	DisplayToCustomer bool
	CreatedAt         time.Time
}

func NewNote(orderID kernel.UUID, text string, displayToCustomer bool, now time.Time) (Note, error) {
	if err := orderID.Validate(); err != nil {
		return Note{}, err
	}
	if text == "" {
		return Note{}, ErrNoteIsEmpty
	}
	return Note{
		ID:                kernel.NewUUID(),
		OrderID:           orderID,
		Text:              text,
		DisplayToCustomer: displayToCustomer,
		CreatedAt:         now.UTC(),
	}, nil
}
