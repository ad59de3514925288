package notify

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"agencydesk/internal/pkg/httpclient"
)

// Notifier posts operational alerts to a staff Telegram channel. All methods
// are no-ops when the notifier is nil or unconfigured, so callers never have
// to guard alert sites.
type Notifier struct {
	client *httpclient.Client
	token  string
	chatID string
	logger *zap.Logger
}

func New(token, chatID string, logger *zap.Logger) *Notifier {
	return &Notifier{
		client: httpclient.New().WithTimeout(10 * time.Second),
		token:  token,
		chatID: chatID,
		logger: logger,
	}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.token != "" && n.chatID != ""
}

// Send posts a raw message to the staff channel.
func (n *Notifier) Send(text string) {
	if !n.enabled() {
		return
	}
	url := "https://api.telegram.org/bot" + n.token + "/sendMessage"
	_, err := n.client.Post(url, map[string]interface{}{
		"chat_id":    n.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	if err != nil && n.logger != nil {
		n.logger.Warn("Failed to send ops alert", zap.Error(err))
	}
}

// PaymentReceived reports a verified gateway notification.
func (n *Notifier) PaymentReceived(orderID, amount, currency string, status string) {
	n.Send(fmt.Sprintf(
		"💵 Payment update\nOrder: %s\nAmount: %s %s\nStatus: %s",
		orderID, amount, currency, status,
	))
}

// SignatureMismatch reports a rejected callback for manual investigation.
func (n *Notifier) SignatureMismatch(orderID string) {
	n.Send(fmt.Sprintf(
		"⚠️ Rejected payment notification\nOrder: %s\nReason: signature mismatch",
		orderID,
	))
}

// ConfigurationError reports that the payment path is down entirely.
func (n *Notifier) ConfigurationError() {
	n.Send("🚨 Payment gateway credentials missing. All payment processing is down.")
}

// StalePayment reports an order stuck awaiting gateway confirmation.
func (n *Notifier) StalePayment(orderID string, since time.Time) {
	n.Send(fmt.Sprintf(
		"⏳ Order %s has been in Verification Pending since %s. Manual reconciliation may be needed.",
		orderID, since.Format(time.RFC3339),
	))
}
