package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code and message so wrapped sentinels compare equal.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Validation errors
var (
	ErrMalformedRequest = NewDomainError(ErrCodeValidation, "invalid request body")
	ErrInvalidRelic     = NewDomainError(ErrCodeValidation, "invalid relic record")
	ErrInvalidAlias     = NewDomainError(ErrCodeValidation, "invalid video alias")
	ErrBodyTooLarge     = NewDomainError(ErrCodeTooLarge, "request body too large")
)

// Not found errors
var (
	ErrRelicNotFound = NewDomainError(ErrCodeNotFound, "relic not found")
	ErrAssetNotFound = NewDomainError(ErrCodeNotFound, "asset not found")
	ErrNoLocalVideo  = NewDomainError(ErrCodeNotFound, "本地无视频")
)
