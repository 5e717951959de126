package service

import (
	"context"
	"fmt"
	"time"

	"mini-store/internal/model"
	"mini-store/internal/repository"

	"github.com/rs/zerolog"
)

// paymentService implements PaymentService.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	invoiceRepo repository.InvoiceRepository
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	invoiceRepo repository.InvoiceRepository,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// ProcessPayment records a payment against an order's invoice and marks the
// order completed. All business checks run before the transactional section;
// the payment insert and status update commit together or not at all, so an
// order is never completed without a matching payment record.
func (s *paymentService) ProcessPayment(ctx context.Context, req *model.PaymentRequest) (*model.PaymentResponse, error) {
	if err := s.validatePaymentRequest(req); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.OrderID).Msg("failed to load order")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.Status == model.OrderStatusCompleted {
		s.logger.Warn().Int64("order_id", req.OrderID).Msg("repeat payment rejected")
		return nil, model.ErrOrderCompleted
	}

	invoice, err := s.invoiceRepo.GetByOrderID(ctx, req.OrderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.OrderID).Msg("failed to load invoice")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}
	if invoice == nil {
		return nil, model.ErrInvoiceNotFound
	}

	if req.AmountPaid.LessThan(invoice.TotalAmount) {
		s.logger.Warn().
			Int64("order_id", req.OrderID).
			Str("amount_paid", req.AmountPaid.String()).
			Str("total_amount", invoice.TotalAmount.String()).
			Msg("insufficient payment")
		return nil, model.ErrInsufficientPayment
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	payment := &model.Payment{
		OrderID:       req.OrderID,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		Status:        model.PaymentStatusPaid,
		PaymentDate:   time.Now(),
	}

	if _, err = s.paymentRepo.Create(ctx, tx, payment); err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.OrderID).Msg("failed to create payment")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	if err = s.orderRepo.UpdateStatusTx(ctx, tx, req.OrderID, model.OrderStatusCompleted); err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.OrderID).Msg("failed to complete order")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", req.OrderID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	s.logger.Info().
		Int64("payment_id", payment.ID).
		Int64("order_id", req.OrderID).
		Str("amount_paid", payment.AmountPaid.String()).
		Msg("payment processed successfully")

	return &model.PaymentResponse{
		OrderID: req.OrderID,
		Status:  model.OrderStatusCompleted,
		Payment: *payment,
	}, nil
}

// validatePaymentRequest validates the payment request.
func (s *paymentService) validatePaymentRequest(req *model.PaymentRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "payment request is required")
	}

	if req.OrderID <= 0 {
		return model.NewDomainError(model.ErrCodeValidation, "order_id is required")
	}

	if req.PaymentMethod == "" {
		return model.NewDomainError(model.ErrCodeValidation, "payment_method is required")
	}

	if !req.AmountPaid.IsPositive() {
		return model.NewDomainError(model.ErrCodeValidation, "amount_paid must be greater than zero")
	}

	return nil
}
