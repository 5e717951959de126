package service

import (
	"context"
	"errors"
	"testing"

	"mini-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func paymentRequest(orderID int64, amount string) *model.PaymentRequest {
	return &model.PaymentRequest{
		OrderID:       orderID,
		PaymentMethod: "credit_card",
		AmountPaid:    decimal.RequireFromString(amount),
	}
}

func TestPaymentService_ProcessPayment_Success(t *testing.T) {
	ctx := context.Background()
	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	tx := new(MockTx)

	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{
		ID: 3, Status: model.OrderStatusPending,
	}, nil)
	invoiceRepo.On("GetByOrderID", ctx, int64(3)).Return(&model.Invoice{
		ID: 9, OrderID: 3, TotalAmount: decimal.RequireFromString("200000"),
	}, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	paymentRepo.On("Create", ctx, tx, mock.AnythingOfType("*model.Payment")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*model.Payment).ID = 15
		}).
		Return(&model.Payment{ID: 15}, nil)
	orderRepo.On("UpdateStatusTx", ctx, tx, int64(3), model.OrderStatusCompleted).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	svc := NewPaymentService(paymentRepo, orderRepo, invoiceRepo, zerolog.Nop())
	result, err := svc.ProcessPayment(ctx, paymentRequest(3, "200000"))

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(3), result.OrderID)
	assert.Equal(t, model.OrderStatusCompleted, result.Status)
	assert.Equal(t, model.PaymentStatusPaid, result.Payment.Status)
	assert.True(t, result.Payment.AmountPaid.Equal(decimal.RequireFromString("200000")))
	assert.True(t, tx.committed)
	paymentRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestPaymentService_ProcessPayment_Validation(t *testing.T) {
	svc := NewPaymentService(new(MockPaymentRepository), new(MockOrderRepository), new(MockInvoiceRepository), zerolog.Nop())
	ctx := context.Background()

	tests := []struct {
		name string
		req  *model.PaymentRequest
	}{
		{
			name: "Nil request",
			req:  nil,
		},
		{
			name: "Missing order ID",
			req:  &model.PaymentRequest{PaymentMethod: "credit_card", AmountPaid: decimal.NewFromInt(100)},
		},
		{
			name: "Missing payment method",
			req:  &model.PaymentRequest{OrderID: 1, AmountPaid: decimal.NewFromInt(100)},
		},
		{
			name: "Zero amount",
			req:  &model.PaymentRequest{OrderID: 1, PaymentMethod: "credit_card"},
		},
		{
			name: "Negative amount",
			req:  &model.PaymentRequest{OrderID: 1, PaymentMethod: "credit_card", AmountPaid: decimal.NewFromInt(-5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ProcessPayment(ctx, tt.req)

			require.Error(t, err)
			var domainErr *model.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, model.ErrCodeValidation, domainErr.Code)
		})
	}
}

func TestPaymentService_ProcessPayment_OrderNotFound(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	svc := NewPaymentService(new(MockPaymentRepository), orderRepo, new(MockInvoiceRepository), zerolog.Nop())
	_, err := svc.ProcessPayment(ctx, paymentRequest(99, "100"))

	assert.Equal(t, model.ErrOrderNotFound, err)
}

func TestPaymentService_ProcessPayment_RepeatPayment(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{
		ID: 3, Status: model.OrderStatusCompleted,
	}, nil)

	svc := NewPaymentService(new(MockPaymentRepository), orderRepo, new(MockInvoiceRepository), zerolog.Nop())
	_, err := svc.ProcessPayment(ctx, paymentRequest(3, "100"))

	assert.Equal(t, model.ErrOrderCompleted, err)
}

func TestPaymentService_ProcessPayment_InvoiceNotFound(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)

	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil)
	invoiceRepo.On("GetByOrderID", ctx, int64(3)).Return(nil, nil)

	svc := NewPaymentService(new(MockPaymentRepository), orderRepo, invoiceRepo, zerolog.Nop())
	_, err := svc.ProcessPayment(ctx, paymentRequest(3, "100"))

	assert.Equal(t, model.ErrInvoiceNotFound, err)
}

func TestPaymentService_ProcessPayment_InsufficientPayment(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)

	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil)
	invoiceRepo.On("GetByOrderID", ctx, int64(3)).Return(&model.Invoice{
		ID: 9, OrderID: 3, TotalAmount: decimal.RequireFromString("200000"),
	}, nil)

	svc := NewPaymentService(new(MockPaymentRepository), orderRepo, invoiceRepo, zerolog.Nop())
	_, err := svc.ProcessPayment(ctx, paymentRequest(3, "150000"))

	assert.Equal(t, model.ErrInsufficientPayment, err)
	// No transactional write may start on a failed business check.
	orderRepo.AssertNotCalled(t, "BeginTx", mock.Anything)
}

func TestPaymentService_ProcessPayment_StatusUpdateFails_RollsBack(t *testing.T) {
	ctx := context.Background()
	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	tx := new(MockTx)

	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil)
	invoiceRepo.On("GetByOrderID", ctx, int64(3)).Return(&model.Invoice{
		ID: 9, OrderID: 3, TotalAmount: decimal.RequireFromString("100"),
	}, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	paymentRepo.On("Create", ctx, tx, mock.AnythingOfType("*model.Payment")).
		Return(&model.Payment{ID: 15}, nil)
	orderRepo.On("UpdateStatusTx", ctx, tx, int64(3), model.OrderStatusCompleted).
		Return(errors.New("connection reset"))
	tx.On("Rollback", ctx).Return(nil)

	svc := NewPaymentService(paymentRepo, orderRepo, invoiceRepo, zerolog.Nop())
	_, err := svc.ProcessPayment(ctx, paymentRequest(3, "100"))

	require.Error(t, err)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestPaymentService_ProcessPayment_OverpaymentAccepted(t *testing.T) {
	ctx := context.Background()
	paymentRepo := new(MockPaymentRepository)
	orderRepo := new(MockOrderRepository)
	invoiceRepo := new(MockInvoiceRepository)
	tx := new(MockTx)

	orderRepo.On("GetByID", ctx, int64(3)).Return(&model.Order{ID: 3, Status: model.OrderStatusPending}, nil)
	invoiceRepo.On("GetByOrderID", ctx, int64(3)).Return(&model.Invoice{
		ID: 9, OrderID: 3, TotalAmount: decimal.RequireFromString("100"),
	}, nil)
	orderRepo.On("BeginTx", ctx).Return(tx, nil)
	paymentRepo.On("Create", ctx, tx, mock.AnythingOfType("*model.Payment")).
		Return(&model.Payment{ID: 15}, nil)
	orderRepo.On("UpdateStatusTx", ctx, tx, int64(3), model.OrderStatusCompleted).Return(nil)
	tx.On("Commit", ctx).Return(nil)

	svc := NewPaymentService(paymentRepo, orderRepo, invoiceRepo, zerolog.Nop())
	result, err := svc.ProcessPayment(ctx, paymentRequest(3, "150"))

	require.NoError(t, err)
	assert.True(t, result.Payment.AmountPaid.Equal(decimal.RequireFromString("150")))
}
