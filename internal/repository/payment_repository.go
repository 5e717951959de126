package repository

import (
	"context"
	"fmt"

	"mini-store/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a new payment within the provided transaction.
func (r *paymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (order_id, payment_method, amount_paid, status, payment_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := tx.QueryRow(ctx, query,
		payment.OrderID, payment.PaymentMethod, payment.AmountPaid, payment.Status, payment.PaymentDate,
	).Scan(&payment.ID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("order_id", payment.OrderID).
			Str("payment_method", payment.PaymentMethod).
			Msg("failed to create payment")
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().
		Int64("payment_id", payment.ID).
		Int64("order_id", payment.OrderID).
		Msg("payment created successfully")

	return payment, nil
}

// GetByOrderID retrieves payments recorded against an order.
func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) ([]model.Payment, error) {
	query := `
		SELECT id, order_id, payment_method, amount_paid, status, payment_date
		FROM payments
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to query payments")
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		err := rows.Scan(&p.ID, &p.OrderID, &p.PaymentMethod, &p.AmountPaid, &p.Status, &p.PaymentDate)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan payment row")
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating payment rows")
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}
