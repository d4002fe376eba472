// Package mail sends customer notifications through SendGrid.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"

	"ordersapi/internal/core/ports"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

var ErrRecipientMissing = errors.New("recipient address is empty")

type sender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridNotifier implements ports.Notifier. Without an API key every notification is skipped.
type SendGridNotifier struct {
	client   sender
	from     *mail.Email
	logger   *zap.Logger
	disabled bool
}

func NewSendGridNotifier(apiKey, fromAddress, fromName string, logger *zap.Logger) *SendGridNotifier {
	n := &SendGridNotifier{
		from:     mail.NewEmail(fromName, fromAddress),
		logger:   logger,
		disabled: apiKey == "",
	}
	if !n.disabled {
		n.client = sendgrid.NewSendClient(apiKey)
	}
	return n
}

func (n *SendGridNotifier) NotifyShipped(ctx context.Context, notification ports.ShipmentNotification) error {
	if n.disabled {
		n.logger.Debug("sendgrid disabled, skipping shipment notification",
			zap.String("custom_order_number", notification.CustomOrderNumber))
		return nil
	}
	if notification.CustomerEmail == "" {
		return ErrRecipientMissing
	}

	subject := fmt.Sprintf("Your order %s has shipped", notification.CustomOrderNumber)
	body := fmt.Sprintf("Your order %s is on its way.", notification.CustomOrderNumber)
	if notification.TrackingNumber != "" {
		body += fmt.Sprintf("\nTracking number: %s", notification.TrackingNumber)
	}

	message := mail.NewSingleEmail(
		n.from,
		subject,
		mail.NewEmail("", notification.CustomerEmail),
		body,
		fmt.Sprintf("<pre>%s</pre>", html.EscapeString(body)),
	)

	response, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	n.logger.Info("shipment notification sent",
		zap.String("custom_order_number", notification.CustomOrderNumber),
		zap.Int("status", response.StatusCode),
	)
	return nil
}
