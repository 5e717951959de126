package repository

import (
	"context"
	"errors"
	"fmt"

	"mini-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// invoiceRepository implements the InvoiceRepository interface using PostgreSQL.
type invoiceRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInvoiceRepository creates a new PostgreSQL-backed invoice repository.
func NewInvoiceRepository(pool *pgxpool.Pool, logger zerolog.Logger) InvoiceRepository {
	return &invoiceRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "invoice").Logger(),
	}
}

// Create inserts a new invoice. The unique constraint on order_id is what
// guarantees at most one invoice per order, even under concurrent
// double-submission; a violation surfaces as model.ErrInvoiceExists.
func (r *invoiceRepository) Create(ctx context.Context, invoice *model.Invoice) (*model.Invoice, error) {
	query := `
		INSERT INTO invoices (order_id, total_amount, invoice_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		invoice.OrderID, invoice.TotalAmount, invoice.InvoiceDate,
	).Scan(&invoice.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Int64("order_id", invoice.OrderID).Msg("invoice already exists for order")
			return nil, model.ErrInvoiceExists
		}
		r.logger.Error().Err(err).Int64("order_id", invoice.OrderID).Msg("failed to create invoice")
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	r.logger.Debug().
		Int64("invoice_id", invoice.ID).
		Int64("order_id", invoice.OrderID).
		Msg("invoice created successfully")

	return invoice, nil
}

// GetByID retrieves an invoice by its ID.
func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `
		SELECT id, order_id, total_amount, invoice_date
		FROM invoices
		WHERE id = $1
	`

	var inv model.Invoice
	err := r.pool.QueryRow(ctx, query, id).Scan(&inv.ID, &inv.OrderID, &inv.TotalAmount, &inv.InvoiceDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("invoice_id", id).Msg("invoice not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("invoice_id", id).Msg("failed to query invoice")
		return nil, fmt.Errorf("failed to query invoice: %w", err)
	}

	return &inv, nil
}

// GetByOrderID retrieves the invoice for an order.
func (r *invoiceRepository) GetByOrderID(ctx context.Context, orderID int64) (*model.Invoice, error) {
	query := `
		SELECT id, order_id, total_amount, invoice_date
		FROM invoices
		WHERE order_id = $1
	`

	var inv model.Invoice
	err := r.pool.QueryRow(ctx, query, orderID).Scan(&inv.ID, &inv.OrderID, &inv.TotalAmount, &inv.InvoiceDate)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", orderID).Msg("no invoice for order")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query invoice by order")
		return nil, fmt.Errorf("failed to query invoice by order: %w", err)
	}

	return &inv, nil
}

// List retrieves invoices with pagination support.
func (r *invoiceRepository) List(ctx context.Context, limit, offset int) ([]model.Invoice, error) {
	query := `
		SELECT id, order_id, total_amount, invoice_date
		FROM invoices
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query invoices")
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []model.Invoice
	for rows.Next() {
		var inv model.Invoice
		err := rows.Scan(&inv.ID, &inv.OrderID, &inv.TotalAmount, &inv.InvoiceDate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan invoice row")
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating invoice rows")
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
