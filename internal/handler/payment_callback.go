package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agencydesk/internal/models"
	"agencydesk/internal/notify"
	"agencydesk/internal/payhere"
)

// OrderStore is the slice of order persistence the payment handlers need.
// *repository.OrderRepository satisfies it.
type OrderStore interface {
	FindByID(id uint) (*models.Order, error)
	FindByFormattedID(formattedID string) (*models.Order, error)
	RecordPaymentOutcome(id uint, status models.PaymentStatus, gatewayDetails string) error
}

// PaymentHandler owns the gateway-facing endpoints: the checkout field
// builder consumed by the client page and the asynchronous notify callback.
type PaymentHandler struct {
	orders   OrderStore
	gateway  *payhere.Gateway
	notifier *notify.Notifier
	logger   *zap.Logger
}

func NewPaymentHandler(orders OrderStore, gateway *payhere.Gateway, notifier *notify.Notifier, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

// Notify handles the server-to-server payment notification from PayHere.
// POST /payment/payhere/notify (form-encoded)
//
// Order of operations is strict and short-circuits: verify signature, locate
// order, map status code, persist. Nothing is written on any rejection, and
// the response status is what the gateway keys redelivery on: 200 accepted,
// 400 bad signature, 404 unknown order, 500 configuration/storage failure.
func (h *PaymentHandler) Notify(c echo.Context) error {
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.String(http.StatusBadRequest, "unreadable body")
	}

	n, err := payhere.ParseNotification(string(rawBody))
	if err != nil {
		h.logger.Warn("Malformed payment notification", zap.Error(err))
		return c.String(http.StatusBadRequest, "malformed body")
	}

	if err := h.gateway.VerifyNotification(n); err != nil {
		switch {
		case errors.Is(err, payhere.ErrNotConfigured):
			h.logger.Error("Payment notification received but merchant credentials are not configured")
			h.notifier.ConfigurationError()
			return c.String(http.StatusInternalServerError, "gateway not configured")
		case errors.Is(err, payhere.ErrSignatureMismatch):
			// The payload carries no secret material, log it whole for
			// manual investigation.
			h.logger.Warn("Payment notification rejected: signature mismatch",
				zap.String("order_id", n.OrderID()),
				zap.String("payload", string(rawBody)),
			)
			h.notifier.SignatureMismatch(n.OrderID())
			return c.String(http.StatusBadRequest, "invalid signature")
		default:
			h.logger.Error("Payment notification verification failed", zap.Error(err))
			return c.String(http.StatusInternalServerError, "verification error")
		}
	}

	order, err := h.orders.FindByFormattedID(n.OrderID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.logger.Warn("Payment notification for unknown order",
				zap.String("order_id", n.OrderID()))
			return c.String(http.StatusNotFound, "order not found")
		}
		h.logger.Error("Order lookup failed", zap.String("order_id", n.OrderID()), zap.Error(err))
		return c.String(http.StatusInternalServerError, "storage error")
	}

	status := payhere.StatusForCode(n.StatusCode())

	details, err := json.Marshal(n)
	if err != nil {
		h.logger.Error("Failed to encode gateway payload", zap.Error(err))
		return c.String(http.StatusInternalServerError, "encoding error")
	}

	if err := h.orders.RecordPaymentOutcome(order.ID, status, string(details)); err != nil {
		h.logger.Error("Failed to persist payment outcome",
			zap.String("order_id", n.OrderID()), zap.Error(err))
		return c.String(http.StatusInternalServerError, "storage error")
	}

	h.logger.Info("Payment notification applied",
		zap.String("order_id", n.OrderID()),
		zap.String("status_code", n.StatusCode()),
		zap.String("payment_status", string(status)),
	)
	h.notifier.PaymentReceived(n.OrderID(), n.Amount(), n.Currency(), string(status))

	return c.String(http.StatusOK, "OK")
}

// Checkout returns the gateway form action and field set for an order so the
// client page can render the redirect form.
// GET /payment/checkout/:id
func (h *PaymentHandler) Checkout(c echo.Context) error {
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
	}

	order, err := h.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "order not found"})
		}
		h.logger.Error("Order lookup failed", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "storage error"})
	}

	first, last := splitName(order.ClientName)
	fields, err := h.gateway.CheckoutFields(payhere.CheckoutRequest{
		OrderID:   order.FormattedOrderID,
		Items:     checkoutItems(order),
		Amount:    order.Amount,
		Currency:  order.Currency,
		FirstName: first,
		LastName:  last,
		Email:     order.ClientEmail,
		Phone:     order.ClientPhone,
		Country:   "Sri Lanka",
	})
	if err != nil {
		h.logger.Error("Failed to build checkout fields",
			zap.String("order_id", order.FormattedOrderID), zap.Error(err))
		h.notifier.ConfigurationError()
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "gateway not configured"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"action": h.gateway.CheckoutURL(),
		"fields": fields,
	})
}
