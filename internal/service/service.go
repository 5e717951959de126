package service

import (
	"context"

	"mini-store/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products with an optional name filter and pagination.
	List(ctx context.Context, nameFilter string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create adds a new product to the catalogue.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id int64, req *model.ProductUpdateRequest) (*model.Product, error)

	// Delete removes a product from the catalogue.
	Delete(ctx context.Context, id int64) error
}

// OrderService defines operations for order placement and lifecycle.
type OrderService interface {
	// PlaceOrder reserves stock and creates a pending order for the user.
	PlaceOrder(ctx context.Context, userID int64, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// UpdateStatus overwrites an order's status, subject to the configured
	// transition policy.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)
}

// InvoiceService defines operations for invoice issuance.
type InvoiceService interface {
	// Generate issues the invoice for an order, snapshotting the amount owed.
	Generate(ctx context.Context, orderID int64) (*model.Invoice, error)

	// GetByID retrieves an invoice by its ID.
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)

	// List retrieves invoices with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Invoice, error)
}

// PaymentService defines operations for payment processing.
type PaymentService interface {
	// ProcessPayment records a payment against an order's invoice and marks
	// the order completed, as one atomic unit.
	ProcessPayment(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error)
}
