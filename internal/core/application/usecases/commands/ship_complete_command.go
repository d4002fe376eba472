package commands

import (
	"errors"
	"strings"

	"ordersapi/internal/pkg/errs"
	"ordersapi/internal/pkg/guard"
)

var ErrShipCompleteCommandIsNotConstructed = errors.New(
	"ShipCompleteCommand must be created via NewShipCompleteCommand constructor",
)

// ShipCompleteCommand ships every ship-enabled line of an order in one shipment
// and completes the order.
//
// Example:
//
//	cmd, err := NewShipCompleteCommand("01HQ7Z...", "1Z999AA10123456784", "", true)
//	if err != nil {
//	    return err
//	}
//	shipmentID, err := handler.Handle(ctx, cmd)
type ShipCompleteCommand struct { //nolint:recvcheck //using for validation
	customOrderNumber string
	trackingNumber    string
	adminComment      string
	notifyCustomer    bool

	guard guard.ConstructorGuard
}

// NewShipCompleteCommand builds the command. customOrderNumber is the customer-facing
// order reference, not the internal id.
func NewShipCompleteCommand(customOrderNumber, trackingNumber, adminComment string, notifyCustomer bool) (ShipCompleteCommand, error) {
	cmd := ShipCompleteCommand{
		trackingNumber: trackingNumber,
		adminComment:   adminComment,
		notifyCustomer: notifyCustomer,
		guard:          guard.NewConstructorGuard(),
	}

	if err := cmd.setCustomOrderNumber(customOrderNumber); err != nil {
		return ShipCompleteCommand{}, err
	}

	return cmd, nil
}

func (c ShipCompleteCommand) Validate() error {
	return c.guard.Validate(ErrShipCompleteCommandIsNotConstructed)
}

func (c ShipCompleteCommand) CustomOrderNumber() string { return c.customOrderNumber }
func (c ShipCompleteCommand) TrackingNumber() string { return c.trackingNumber }
func (c ShipCompleteCommand) AdminComment() string { return c.adminComment }
func (c ShipCompleteCommand) NotifyCustomer() bool { return c.notifyCustomer }

func (c *ShipCompleteCommand) setCustomOrderNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewFieldError("order_id", "invalid order_id")
	}

	c.customOrderNumber = number
	return nil
}
