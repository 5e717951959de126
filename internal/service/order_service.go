package service

import (
	"context"
	"fmt"
	"time"

	"mini-store/internal/model"
	"mini-store/internal/repository"

	"github.com/rs/zerolog"
)

// TransitionPolicy decides whether an order may move from one status to
// another via the status-update endpoint. The default allows any transition;
// deployments that restrict the endpoint can tighten this without touching
// the service.
type TransitionPolicy func(from, to model.OrderStatus) error

// AllowAnyTransition permits every status transition.
func AllowAnyTransition(from, to model.OrderStatus) error {
	return nil
}

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	transitions TransitionPolicy
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. A nil policy defaults to
// AllowAnyTransition.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	transitions TransitionPolicy,
	logger zerolog.Logger,
) OrderService {
	if transitions == nil {
		transitions = AllowAnyTransition
	}
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		transitions: transitions,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder reserves stock and creates a pending order for the user.
// The stock check and decrement happen as a single conditional update inside
// the transaction, so concurrent placements cannot oversell.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, req *model.OrderRequest) (*model.Order, error) {
	if userID <= 0 {
		return nil, model.ErrUnauthorised
	}

	if req == nil || req.ProductID <= 0 {
		return nil, model.NewDomainError(model.ErrCodeValidation, "product_id is required")
	}

	if req.Quantity < 1 {
		s.logger.Warn().
			Int64("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("failed to load product")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}

	// Start transaction
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	reserved, err := s.productRepo.ReserveStock(ctx, tx, req.ProductID, req.Quantity)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("failed to reserve stock")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	if !reserved {
		err = model.ErrInsufficientStock
		s.logger.Warn().
			Int64("product_id", req.ProductID).
			Int("quantity", req.Quantity).
			Int("stock", product.Stock).
			Msg("insufficient stock")
		return nil, err
	}

	now := time.Now()
	order := &model.Order{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err = s.orderRepo.Create(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Int64("product_id", req.ProductID).Msg("failed to create order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Commit transaction
	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Int64("order_id", order.ID).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("user_id", userID).
		Int64("product_id", req.ProductID).
		Int("quantity", req.Quantity).
		Msg("order placed successfully")

	return order, nil
}

// GetByID retrieves an order by its ID.
func (s *orderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus overwrites an order's status, subject to the transition policy.
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to load order")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if current == nil {
		return nil, model.ErrOrderNotFound
	}

	if err := s.transitions(current.Status, status); err != nil {
		s.logger.Warn().
			Int64("order_id", id).
			Str("from", string(current.Status)).
			Str("to", string(status)).
			Err(err).
			Msg("status transition rejected")
		return nil, model.NewDomainError(model.ErrCodeConflict, err.Error())
	}

	order, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		s.logger.Error().Err(err).Int64("order_id", id).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Int64("order_id", id).
		Str("status", string(status)).
		Msg("order status updated")

	return order, nil
}
