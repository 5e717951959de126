package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatusPaid is the only status a recorded payment carries.
const PaymentStatusPaid = "paid"

// Payment records that an amount was paid against an order's invoice.
// Immutable once created.
type Payment struct {
	ID            int64           `json:"id" db:"id"`
	OrderID       int64           `json:"order_id" db:"order_id"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	Status        string          `json:"status" db:"status"`
	PaymentDate   time.Time       `json:"payment_date" db:"payment_date"`
}

// PaymentRequest represents the request payload for processing a payment.
type PaymentRequest struct {
	OrderID       int64           `json:"order_id"`
	PaymentMethod string          `json:"payment_method"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
}

// PaymentResponse is returned after a successful payment: the recorded
// payment plus the order's resulting status.
type PaymentResponse struct {
	OrderID int64       `json:"order_id"`
	Status  OrderStatus `json:"status"`
	Payment Payment     `json:"payment_details"`
}
