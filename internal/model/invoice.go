package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the amount owed for an order, snapshotted at creation time.
// A later product price change never alters an existing invoice.
type Invoice struct {
	ID          int64           `json:"id" db:"id"`
	OrderID     int64           `json:"order_id" db:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount" db:"total_amount"`
	InvoiceDate time.Time       `json:"invoice_date" db:"invoice_date"`
}
