package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUnauthorised        = "UNAUTHORIZED"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInsufficientStock   = "INSUFFICIENT_STOCK"
	ErrCodeInsufficientPayment = "INSUFFICIENT_PAYMENT"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound     = NewDomainError(ErrCodeNotFound, "Product not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrInvoiceNotFound     = NewDomainError(ErrCodeNotFound, "Invoice not found")
	ErrInvalidQuantity     = NewDomainError(ErrCodeValidation, "Quantity must be greater than zero")
	ErrUnauthorised        = NewDomainError(ErrCodeUnauthorised, "Unauthorized")
	ErrInsufficientStock   = NewDomainError(ErrCodeInsufficientStock, "Insufficient product stock")
	ErrInsufficientPayment = NewDomainError(ErrCodeInsufficientPayment, "Payment amount is less than the invoice total")
	ErrInvoiceExists       = NewDomainError(ErrCodeConflict, "An invoice already exists for this order")
	ErrOrderCompleted      = NewDomainError(ErrCodeConflict, "Order has already been paid")
	ErrInvalidStatus       = NewDomainError(ErrCodeValidation, "Unknown order status")
)
