package errors

import (
	"fmt"
	"net/http"
)

// AppContextError carries the layer, component and operation an error
// surfaced from, plus enough context to render an HTTP response.
type AppContextError struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Layer     string         `json:"layer,omitempty"`     // rest, usecase, gateway, driver
	Component string         `json:"component,omitempty"` // struct or service name
	Operation string         `json:"operation,omitempty"` // method name
	Cause     error          `json:"-"`
	Context   map[string]any `json:"context,omitempty"`

	// Status overrides the code based mapping when non-zero, e.g. to pass
	// an upstream 4xx through unchanged.
	Status int `json:"-"`
}

func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// WithStatus returns the same error with an explicit HTTP status.
func (e *AppContextError) WithStatus(status int) *AppContextError {
	e.Status = status
	return e
}

// HTTPStatusCode maps error codes to HTTP status codes
func (e *AppContextError) HTTPStatusCode() int {
	if e.Status != 0 {
		return e.Status
	}

	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeRateLimit:
		return http.StatusTooManyRequests
	case CodeExternalAPI:
		return http.StatusBadGateway
	case CodeTimeout:
		return http.StatusGatewayTimeout
	case CodeConfig, CodeDatabase, CodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPContextResponse is the JSON body written for failed requests.
type HTTPContextResponse struct {
	Success   bool           `json:"success"`
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	Layer     string         `json:"layer,omitempty"`
	Component string         `json:"component,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

func (e *AppContextError) ToHTTPResponse() HTTPContextResponse {
	return HTTPContextResponse{
		Error:     e.Message,
		Code:      e.Code,
		Layer:     e.Layer,
		Component: e.Component,
		Operation: e.Operation,
		Context:   e.Context,
	}
}

// IsRetryable determines if the error represents a retryable condition
func (e *AppContextError) IsRetryable() bool {
	switch e.Code {
	case CodeRateLimit, CodeTimeout, CodeExternalAPI:
		return true
	default:
		return false
	}
}

func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]any,
) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
	}
}

// EnrichWithContext re-attributes err to another layer and merges context.
func EnrichWithContext(
	err *AppContextError,
	layer, component, operation string,
	additionalContext map[string]any,
) *AppContextError {
	merged := make(map[string]any, len(err.Context)+len(additionalContext))
	for k, v := range err.Context {
		merged[k] = v
	}
	for k, v := range additionalContext {
		merged[k] = v
	}

	return &AppContextError{
		Code:      err.Code,
		Message:   err.Message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     err.Cause,
		Context:   merged,
		Status:    err.Status,
	}
}

func newTyped(code, errorType, message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["error_type"] = errorType
	return NewAppContextError(code, message, layer, component, operation, cause, context)
}

func NewValidationContextError(message, layer, component, operation string, context map[string]any) *AppContextError {
	return newTyped(CodeValidation, "validation", message, layer, component, operation, nil, context)
}

func NewForbiddenContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeForbidden, "forbidden", message, layer, component, operation, cause, context)
}

func NewRateLimitContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeRateLimit, "rate_limit", message, layer, component, operation, cause, context)
}

func NewExternalAPIContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeExternalAPI, "external_api", message, layer, component, operation, cause, context)
}

// NewUpstreamStatusContextError reports an upstream response whose status
// is relayed to the client as-is.
func NewUpstreamStatusContextError(status int, message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	if context == nil {
		context = make(map[string]any)
	}
	context["upstream_status"] = status
	return newTyped(CodeExternalAPI, "upstream_status", message, layer, component, operation, cause, context).WithStatus(status)
}

func NewTimeoutContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeTimeout, "timeout", message, layer, component, operation, cause, context)
}

func NewConfigContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeConfig, "config", message, layer, component, operation, cause, context)
}

func NewDatabaseContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeDatabase, "database", message, layer, component, operation, cause, context)
}

func NewUnknownContextError(message, layer, component, operation string, cause error, context map[string]any) *AppContextError {
	return newTyped(CodeUnknown, "unknown", message, layer, component, operation, cause, context)
}
