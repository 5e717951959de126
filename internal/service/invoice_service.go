package service

import (
	"context"
	"fmt"
	"time"

	"mini-store/internal/archive"
	"mini-store/internal/model"
	"mini-store/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// invoiceService implements InvoiceService.
type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	archiver    archive.Archiver
	logger      zerolog.Logger
}

// NewInvoiceService creates a new invoice service. A nil archiver disables
// archiving.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	archiver archive.Archiver,
	logger zerolog.Logger,
) InvoiceService {
	if archiver == nil {
		archiver = archive.NewNopArchiver()
	}
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		archiver:    archiver,
		logger:      logger.With().Str("service", "invoice").Logger(),
	}
}

// Generate issues the invoice for an order. The amount owed is snapshotted
// at issuance: unit price at this moment times the ordered quantity. Later
// price changes never alter it.
func (s *invoiceService) Generate(ctx context.Context, orderID int64) (*model.Invoice, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to load order")
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	product, err := s.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", order.ProductID).Msg("failed to load product")
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	invoice := &model.Invoice{
		OrderID:     orderID,
		TotalAmount: product.Price.Mul(decimal.NewFromInt(int64(order.Quantity))),
		InvoiceDate: time.Now(),
	}

	if _, err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		if err == model.ErrInvoiceExists {
			s.logger.Warn().Int64("order_id", orderID).Msg("duplicate invoice generation rejected")
			return nil, err
		}
		s.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to create invoice")
		return nil, fmt.Errorf("failed to generate invoice: %w", err)
	}

	// Best effort: an archive failure must not fail issuance.
	if err := s.archiver.Archive(ctx, invoice); err != nil {
		s.logger.Warn().Err(err).Int64("invoice_id", invoice.ID).Msg("failed to archive invoice")
	}

	s.logger.Info().
		Int64("invoice_id", invoice.ID).
		Int64("order_id", orderID).
		Str("total_amount", invoice.TotalAmount.String()).
		Msg("invoice generated successfully")

	return invoice, nil
}

// GetByID retrieves an invoice by its ID.
func (s *invoiceService) GetByID(ctx context.Context, id int64) (*model.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("invoice_id", id).Msg("failed to get invoice")
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, model.ErrInvoiceNotFound
	}
	return invoice, nil
}

// List retrieves invoices with pagination.
func (s *invoiceService) List(ctx context.Context, limit, offset int) ([]model.Invoice, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	invoices, err := s.invoiceRepo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return invoices, nil
}
