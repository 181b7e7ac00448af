package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeInvalidRating      = "INVALID_RATING"
	ErrCodeFabricNotFound     = "FABRIC_NOT_FOUND"
	ErrCodeInsufficientStock  = "INSUFFICIENT_STOCK"
	ErrCodePromoNotFound      = "PROMO_NOT_FOUND"
	ErrCodePromoInactive      = "PROMO_INACTIVE"
	ErrCodePromoNotYetActive  = "PROMO_NOT_YET_ACTIVE"
	ErrCodePromoExpired       = "PROMO_EXPIRED"
	ErrCodePromoExhausted     = "PROMO_USAGE_LIMIT_REACHED"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeIllegalTransition  = "ILLEGAL_STATUS_TRANSITION"
	ErrCodeOrderNotPending    = "ORDER_NOT_PENDING"
	ErrCodeOrderNotDelivered  = "ORDER_NOT_DELIVERED"
	ErrCodeOtpNotGenerated    = "OTP_NOT_GENERATED"
	ErrCodeOtpRequired        = "OTP_REQUIRED"
	ErrCodeOtpMismatch        = "OTP_MISMATCH"
	ErrCodeCancelReasonNeeded = "CANCEL_REASON_REQUIRED"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure with a stable error code.
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
	ErrFabricNotFound     = NewDomainError(ErrCodeFabricNotFound, "Fabric not found for the requested material and colour")
	ErrInsufficientStock  = NewDomainError(ErrCodeInsufficientStock, "Insufficient fabric stock for the requested quantity")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidRating      = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrPromoNotFound      = NewDomainError(ErrCodePromoNotFound, "Promo code not found")
	ErrPromoInactive      = NewDomainError(ErrCodePromoInactive, "Promo code is not active")
	ErrPromoNotYetActive  = NewDomainError(ErrCodePromoNotYetActive, "Promo code is not yet active")
	ErrPromoExpired       = NewDomainError(ErrCodePromoExpired, "Promo code has expired")
	ErrPromoExhausted     = NewDomainError(ErrCodePromoExhausted, "Promo code usage limit reached")
	ErrOrderNotFound      = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrIllegalTransition  = NewDomainError(ErrCodeIllegalTransition, "Illegal order status transition")
	ErrOrderNotPending    = NewDomainError(ErrCodeOrderNotPending, "Order can only be cancelled while Pending")
	ErrOrderNotDelivered  = NewDomainError(ErrCodeOrderNotDelivered, "Feedback can only be recorded on a Delivered order")
	ErrOtpNotGenerated    = NewDomainError(ErrCodeOtpNotGenerated, "No delivery OTP has been generated for this order")
	ErrOtpRequired        = NewDomainError(ErrCodeOtpRequired, "A delivery OTP is required to confirm delivery")
	ErrOtpMismatch        = NewDomainError(ErrCodeOtpMismatch, "The supplied OTP does not match")
	ErrCancelReasonNeeded = NewDomainError(ErrCodeCancelReasonNeeded, "A cancellation reason is required")
)
