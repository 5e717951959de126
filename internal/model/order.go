package model

import (
	"fmt"
	"time"
)

// OrderStatus is the lifecycle status of an order. The wire representation
// stays a plain string; parsing at the boundary keeps the set closed.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus validates a caller-supplied status string.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Order represents a user's request to purchase a quantity of one product.
type Order struct {
	ID        int64       `json:"id" db:"id"`
	UserID    int64       `json:"userId" db:"user_id"`
	ProductID int64       `json:"productId" db:"product_id"`
	Quantity  int         `json:"quantity" db:"quantity"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// OrderRequest represents the request payload for placing an order.
type OrderRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderStatusRequest represents the request payload for updating an order's status.
type OrderStatusRequest struct {
	Status string `json:"status"`
}
