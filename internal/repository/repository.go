package repository

import (
	"context"

	"mini-store/internal/model"

	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products with an optional name substring filter and
	// pagination support.
	List(ctx context.Context, nameFilter string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// Create inserts a new product and returns it with its assigned ID.
	Create(ctx context.Context, product *model.Product) (*model.Product, error)

	// Update persists the product's name, price and stock. Returns false
	// when the product does not exist.
	Update(ctx context.Context, product *model.Product) (bool, error)

	// Delete removes a product. Returns false when the product does not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// ReserveStock atomically decrements stock by quantity within the
	// provided transaction. Returns false when remaining stock is
	// insufficient; the row is left untouched in that case.
	ReserveStock(ctx context.Context, tx pgx.Tx, productID int64, quantity int) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction and
	// returns it with its assigned ID.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) (*model.Order, error)

	// GetByID retrieves an order by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// UpdateStatus overwrites an order's status. Returns the updated order,
	// or nil when the order does not exist.
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error)

	// UpdateStatusTx overwrites an order's status within the provided
	// transaction.
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status model.OrderStatus) error
}

// InvoiceRepository defines the interface for invoice data access operations.
type InvoiceRepository interface {
	// Create inserts a new invoice and returns it with its assigned ID.
	// Returns model.ErrInvoiceExists when the order already has one.
	Create(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error)

	// GetByID retrieves an invoice by its ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Invoice, error)

	// GetByOrderID retrieves the invoice for an order. Returns nil when absent.
	GetByOrderID(ctx context.Context, orderID int64) (*model.Invoice, error)

	// List retrieves invoices with pagination support.
	List(ctx context.Context, limit, offset int) ([]model.Invoice, error)
}

// PaymentRepository defines the interface for payment data access operations.
type PaymentRepository interface {
	// Create inserts a new payment within the provided transaction and
	// returns it with its assigned ID.
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error)

	// GetByOrderID retrieves payments recorded against an order.
	GetByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error)
}
