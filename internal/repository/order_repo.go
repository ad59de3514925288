package repository

import (
	"time"

	"gorm.io/gorm"

	"agencydesk/internal/models"
)

// OrderRepository handles order database operations.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// FindAll returns every order, newest first. Filtering and sorting happen
// in the handler against the returned slice.
func (r *OrderRepository) FindAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// FindByID returns an order by its internal id.
func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByFormattedID returns the order matching a gateway correlation id.
// The formatted id is unique; if the invariant is ever broken the lowest
// primary key wins so reconciliation stays deterministic.
func (r *OrderRepository) FindByFormattedID(formattedID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("formatted_order_id = ?", formattedID).
		Order("id ASC").First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// RecordPaymentOutcome applies a verified gateway notification to an order:
// mapped payment status, full payload snapshot, fresh last_updated.
func (r *OrderRepository) RecordPaymentOutcome(id uint, status models.PaymentStatus, gatewayDetails string) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status":          status,
		"payment_gateway_details": gatewayDetails,
		"last_updated":            time.Now(),
	}).Error
}

// UpdateOrderStatus moves an order along the staff pipeline.
func (r *OrderRepository) UpdateOrderStatus(id uint, status models.OrderStatus) error {
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"order_status": status,
		"last_updated": time.Now(),
	}).Error
}

// FindStalePending returns orders stuck in Verification Pending since before
// the cutoff. Used by the sweep job; read-only.
func (r *OrderRepository) FindStalePending(cutoff time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("payment_status = ? AND last_updated < ?",
		models.PaymentVerificationPending, cutoff).
		Order("last_updated ASC").Find(&orders).Error
	return orders, err
}
