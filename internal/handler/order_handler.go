package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"mini-store/internal/middleware"
	"mini-store/internal/model"
	"mini-store/internal/service"

	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests. The caller identity comes from
// the auth middleware.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeDomainError(w, r, model.ErrUnauthorised, h.logger)
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body")
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), userID, &req)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r, strings.TrimPrefix(r.URL.Path, "/api/orders/"))
	if !ok {
		return
	}

	order, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /api/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	idStr = strings.TrimSuffix(idStr, "/status")

	id, ok := h.orderID(w, r, idStr)
	if !ok {
		return
	}

	var req model.OrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body")
		return
	}

	status, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		writeDomainError(w, r, model.ErrInvalidStatus, h.logger)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// orderID parses an order ID path segment.
func (h *OrderHandler) orderID(w http.ResponseWriter, r *http.Request, idStr string) (int64, bool) {
	if idStr == "" || strings.Contains(idStr, "/") {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "order ID is required")
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format")
		return 0, false
	}

	return id, true
}
