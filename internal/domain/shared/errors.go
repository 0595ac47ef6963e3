package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrAlreadyRegistered   = NewDomainError("ALREADY_REGISTERED", "Attendee is already registered for this event")
	ErrRegistrationClosed  = NewDomainError("REGISTRATION_CLOSED", "Registration is closed for this event")
	ErrEventNotFound       = NewDomainError("EVENT_NOT_FOUND", "No event matches the scanned code")
	ErrAmbiguousTitle      = NewDomainError("AMBIGUOUS_TITLE", "More than one event matches the scanned title")
	ErrInvalidPasscode     = NewDomainError("INVALID_PASSCODE", "Passcode does not match any attendee")
)
