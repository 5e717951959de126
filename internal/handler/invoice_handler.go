package handler

import (
	"net/http"
	"strconv"
	"strings"

	"mini-store/internal/model"
	"mini-store/internal/service"

	"github.com/rs/zerolog"
)

// InvoiceHandler handles invoice-related HTTP requests.
type InvoiceHandler struct {
	service service.InvoiceService
	logger  zerolog.Logger
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(service service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		service: service,
		logger:  logger.With().Str("handler", "invoice").Logger(),
	}
}

// Generate handles POST /api/invoices/{orderId} requests.
func (h *InvoiceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	orderID, ok := h.pathID(w, r, "order ID")
	if !ok {
		return
	}

	invoice, err := h.service.Generate(r.Context(), orderID)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

// List handles GET /api/invoices requests with pagination.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 10 // default
	if limitStr := query.Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter")
			return
		}
	}

	offset := 0 // default
	if offsetStr := query.Get("offset"); offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid offset parameter")
			return
		}
	}

	invoices, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	if invoices == nil {
		invoices = []model.Invoice{}
	}

	writeJSON(w, http.StatusOK, invoices)
}

// GetByID handles GET /api/invoices/{id} requests.
func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "invoice ID")
	if !ok {
		return
	}

	invoice, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, invoice)
}

// pathID parses the trailing ID segment of a /api/invoices/{id} path.
func (h *InvoiceHandler) pathID(w http.ResponseWriter, r *http.Request, what string) (int64, bool) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/invoices/")
	if idStr == "" || strings.Contains(idStr, "/") {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, what+" is required")
		return 0, false
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid "+what+" format")
		return 0, false
	}

	return id, true
}
