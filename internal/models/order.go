package models

import "time"

// PaymentStatus is the domain payment state kept on an order. Only the latest
// value is stored; the notification reconciler is the sole writer.
type PaymentStatus string

const (
	PaymentNotPaid             PaymentStatus = "Not Paid"
	PaymentVerificationPending PaymentStatus = "Verification Pending"
	PaymentHalfPaid            PaymentStatus = "Half Paid"
	PaymentAdvancedPaid        PaymentStatus = "Advanced Paid"
	PaymentFullPaid            PaymentStatus = "Full Paid"
)

// OrderStatus is the staff-facing pipeline state of an order.
type OrderStatus string

const (
	OrderPendingApproval OrderStatus = "Pending Approval"
	OrderApproved        OrderStatus = "Approved"
	OrderInProgress      OrderStatus = "In Progress"
	OrderCompleted       OrderStatus = "Completed"
	OrderRejected        OrderStatus = "Rejected"
)

// Order types.
const (
	OrderTypeCustom  = "custom"
	OrderTypePackage = "package"
)

// Order maps to the `orders` table.
type Order struct {
	ID               uint          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FormattedOrderID string        `gorm:"column:formatted_order_id;size:64;uniqueIndex" json:"formatted_order_id"`
	ClientName       string        `gorm:"column:client_name;size:200" json:"client_name"`
	ClientEmail      string        `gorm:"column:client_email;size:200" json:"client_email"`
	ClientPhone      string        `gorm:"column:client_phone;size:50" json:"client_phone"`
	OrderType        string        `gorm:"column:order_type;size:20" json:"order_type"`
	PackageCode      string        `gorm:"column:package_code;size:64" json:"package_code"`
	Description      string        `gorm:"column:description;type:text" json:"description"`
	Amount           float64       `gorm:"column:amount" json:"amount"`
	Currency         string        `gorm:"column:currency;size:3" json:"currency"`
	OrderStatus      OrderStatus   `gorm:"column:order_status;size:50" json:"order_status"`
	PaymentStatus    PaymentStatus `gorm:"column:payment_status;size:50" json:"payment_status"`
	// Full body of the last verified gateway notification, JSON-encoded.
	// Overwritten on every accepted callback.
	PaymentGatewayDetails string    `gorm:"column:payment_gateway_details;type:text" json:"payment_gateway_details"`
	LastUpdated           time.Time `gorm:"column:last_updated" json:"last_updated"`
	CreatedAt             time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}
