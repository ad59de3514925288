package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"agencydesk/internal/models"
)

// OrderHandler serves the staff-facing order pipeline.
type OrderHandler struct {
	repos  *Repos
	logger *zap.Logger
}

func NewOrderHandler(repos *Repos, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{repos: repos, logger: logger}
}

type createOrderRequest struct {
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	ClientPhone string  `json:"client_phone"`
	OrderType   string  `json:"order_type"`
	PackageCode string  `json:"package_code"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

// Create registers a new order. Package orders take their price and currency
// from the selected package; custom orders carry a quoted amount.
// POST /api/orders
func (h *OrderHandler) Create(c echo.Context) error {
	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.ClientName == "" || req.ClientEmail == "" {
		return errorResponse(c, http.StatusBadRequest, "client_name and client_email are required")
	}

	order := &models.Order{
		FormattedOrderID: newFormattedOrderID(),
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		OrderType:        req.OrderType,
		Description:      req.Description,
		Amount:           req.Amount,
		Currency:         req.Currency,
		OrderStatus:      models.OrderPendingApproval,
		PaymentStatus:    models.PaymentNotPaid,
		LastUpdated:      time.Now(),
	}

	switch req.OrderType {
	case models.OrderTypePackage:
		pkg, err := h.repos.Package.FindByCode(req.PackageCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorResponse(c, http.StatusBadRequest, "Unknown package: "+req.PackageCode)
			}
			h.logger.Error("Package lookup failed", zap.Error(err))
			return errorResponse(c, http.StatusInternalServerError, "Failed to resolve package")
		}
		order.PackageCode = pkg.Code
		order.Amount = pkg.Price
		order.Currency = pkg.Currency
	case models.OrderTypeCustom:
		if order.Amount <= 0 {
			return errorResponse(c, http.StatusBadRequest, "amount must be positive for custom orders")
		}
	default:
		return errorResponse(c, http.StatusBadRequest, "order_type must be custom or package")
	}

	if order.Currency == "" {
		order.Currency = "LKR"
	}

	if err := h.repos.Order.Create(order); err != nil {
		h.logger.Error("Failed to create order", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to create order")
	}

	h.logger.Info("Order created",
		zap.String("formatted_order_id", order.FormattedOrderID),
		zap.String("order_type", order.OrderType),
	)
	return successResponse(c, "Order created", order)
}

// List returns orders with in-memory filtering, sorting and pagination.
// GET /api/orders?order_status=&payment_status=&q=&sort=&page=&limit=
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.repos.Order.FindAll()
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	filtered := filterOrders(orders, orderFilter{
		OrderStatus:   c.QueryParam("order_status"),
		PaymentStatus: c.QueryParam("payment_status"),
		Query:         c.QueryParam("q"),
	})
	sortOrders(filtered, c.QueryParam("sort"))

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 50)
	pageSlice := paginateOrders(filtered, page, limit)

	return successResponse(c, "Successful",
		paginatedResponse("orders", pageSlice, len(filtered), page, limit))
}

// Get returns one order by internal id.
// GET /api/orders/:id
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid order id")
	}

	order, err := h.repos.Order.FindByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Order not found")
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve order")
	}
	return successResponse(c, "Successful", order)
}

type updateStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

// UpdateStatus moves an order along the pipeline.
// PUT /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid order id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, "Invalid request body")
	}

	status := models.OrderStatus(req.OrderStatus)
	if !validOrderStatus(status) {
		return errorResponse(c, http.StatusBadRequest, "Unknown order_status: "+req.OrderStatus)
	}

	if _, err := h.repos.Order.FindByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, "Order not found")
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to retrieve order")
	}

	if err := h.repos.Order.UpdateOrderStatus(uint(id), status); err != nil {
		h.logger.Error("Failed to update order status", zap.Error(err))
		return errorResponse(c, http.StatusInternalServerError, "Failed to update order")
	}
	return successResponse(c, "Order status updated", map[string]interface{}{
		"id":           id,
		"order_status": status,
	})
}

func validOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderPendingApproval, models.OrderApproved, models.OrderInProgress,
		models.OrderCompleted, models.OrderRejected:
		return true
	}
	return false
}

func newFormattedOrderID() string {
	return "WD" + strings.ToUpper(uuid.NewString()[:8])
}

func queryInt(c echo.Context, key string, defaultVal int) int {
	if v, err := strconv.Atoi(c.QueryParam(key)); err == nil && v > 0 {
		return v
	}
	return defaultVal
}

// ── In-memory list filtering and sorting ─────────────────────────────

type orderFilter struct {
	OrderStatus   string
	PaymentStatus string
	Query         string
}

func filterOrders(orders []models.Order, f orderFilter) []models.Order {
	out := make([]models.Order, 0, len(orders))
	q := strings.ToLower(f.Query)
	for _, o := range orders {
		if f.OrderStatus != "" && string(o.OrderStatus) != f.OrderStatus {
			continue
		}
		if f.PaymentStatus != "" && string(o.PaymentStatus) != f.PaymentStatus {
			continue
		}
		if q != "" && !matchesQuery(o, q) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matchesQuery(o models.Order, q string) bool {
	return strings.Contains(strings.ToLower(o.FormattedOrderID), q) ||
		strings.Contains(strings.ToLower(o.ClientName), q) ||
		strings.Contains(strings.ToLower(o.ClientEmail), q)
}

func sortOrders(orders []models.Order, key string) {
	switch key {
	case "oldest":
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.Before(orders[j].CreatedAt)
		})
	case "amount_asc":
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].Amount < orders[j].Amount
		})
	case "amount_desc":
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].Amount > orders[j].Amount
		})
	default: // newest first
		sort.SliceStable(orders, func(i, j int) bool {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		})
	}
}

func paginateOrders(orders []models.Order, page, limit int) []models.Order {
	if limit <= 0 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(orders) {
		return []models.Order{}
	}
	end := start + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[start:end]
}
