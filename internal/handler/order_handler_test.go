package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mini-store/internal/middleware"
	"mini-store/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) PlaceOrder(ctx context.Context, userID int64, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) (*model.Order, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func authedRequest(method, path string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

func TestOrderHandler_Create(t *testing.T) {
	logger := zerolog.Nop()

	testOrder := &model.Order{
		ID:        42,
		UserID:    7,
		ProductID: 1,
		Quantity:  2,
		Status:    model.OrderStatusPending,
	}

	tests := []struct {
		name           string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectedCode   string
		expectService  bool
	}{
		{
			name:           "Success",
			body:           `{"product_id": 1, "quantity": 2}`,
			mockReturn:     testOrder,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Invalid JSON",
			body:           `{"product_id": `,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
		{
			name:           "Insufficient stock",
			body:           `{"product_id": 1, "quantity": 200}`,
			mockError:      model.ErrInsufficientStock,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInsufficientStock,
			expectService:  true,
		},
		{
			name:           "Product not found",
			body:           `{"product_id": 99, "quantity": 1}`,
			mockError:      model.ErrProductNotFound,
			expectedStatus: http.StatusNotFound,
			expectedCode:   model.ErrCodeNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid quantity",
			body:           `{"product_id": 1, "quantity": 0}`,
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			if tt.expectService {
				svc.On("PlaceOrder", mock.Anything, int64(7), mock.AnythingOfType("*model.OrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(svc, logger)
			req := authedRequest(http.MethodPost, "/api/orders", []byte(tt.body), 7)
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_Create_NoIdentity(t *testing.T) {
	svc := new(MockOrderService)
	h := NewOrderHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader([]byte(`{"product_id": 1, "quantity": 1}`)))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	logger := zerolog.Nop()

	tests := []struct {
		name           string
		path           string
		body           string
		mockReturn     *model.Order
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			path:           "/api/orders/5/status",
			body:           `{"status": "completed"}`,
			mockReturn:     &model.Order{ID: 5, Status: model.OrderStatusCompleted},
			expectedStatus: http.StatusOK,
			expectService:  true,
		},
		{
			name:           "Unknown status",
			path:           "/api/orders/5/status",
			body:           `{"status": "teleported"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Order not found",
			path:           "/api/orders/99/status",
			body:           `{"status": "cancelled"}`,
			mockError:      model.ErrOrderNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
		{
			name:           "Invalid order ID",
			path:           "/api/orders/abc/status",
			body:           `{"status": "pending"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockOrderService)
			if tt.expectService {
				svc.On("UpdateStatus", mock.Anything, mock.AnythingOfType("int64"), mock.AnythingOfType("model.OrderStatus")).
					Return(tt.mockReturn, tt.mockError)
			}

			h := NewOrderHandler(svc, logger)
			req := authedRequest(http.MethodPut, tt.path, []byte(tt.body), 7)
			rec := httptest.NewRecorder()

			h.UpdateStatus(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestOrderHandler_GetByID(t *testing.T) {
	svc := new(MockOrderService)
	svc.On("GetByID", mock.Anything, int64(42)).Return(&model.Order{ID: 42, Status: model.OrderStatusPending}, nil)

	h := NewOrderHandler(svc, zerolog.Nop())
	req := authedRequest(http.MethodGet, "/api/orders/42", nil, 7)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, int64(42), order.ID)
}
