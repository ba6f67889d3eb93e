package errors

import (
	"errors"
)

const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeForbidden   = "FORBIDDEN_ERROR"
	CodeNotFound    = "NOT_FOUND_ERROR"
	CodeRateLimit   = "RATE_LIMIT_ERROR"
	CodeExternalAPI = "EXTERNAL_API_ERROR"
	CodeTimeout     = "TIMEOUT_ERROR"
	CodeConfig      = "CONFIG_ERROR"
	CodeDatabase    = "DATABASE_ERROR"
	CodeUnknown     = "UNKNOWN_ERROR"
)

// Base errors to be matched with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrDomainNotAllowed    = errors.New("domain not allowed")
	ErrOperationTimeout    = errors.New("operation timeout")
	ErrEmptyResponse       = errors.New("empty response body")
	ErrAllSourcesFailed    = errors.New("all feed sources failed")
	ErrMissingConfig       = errors.New("missing configuration")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded")
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsDomainNotAllowed(err error) bool {
	return errors.Is(err, ErrDomainNotAllowed)
}

func IsTimeoutError(err error) bool {
	return errors.Is(err, ErrOperationTimeout)
}

func IsAllSourcesFailed(err error) bool {
	return errors.Is(err, ErrAllSourcesFailed)
}

func IsMissingConfig(err error) bool {
	return errors.Is(err, ErrMissingConfig)
}

// IsRetryableError reports whether a caller may retry the operation later.
func IsRetryableError(err error) bool {
	var appErr *AppContextError
	if errors.As(err, &appErr) {
		return appErr.IsRetryable()
	}
	return errors.Is(err, ErrOperationTimeout) || errors.Is(err, ErrRateLimitExceeded)
}
