package rest

import (
	stderrors "errors"

	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/middleware"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
)

// handleError is the only place error envelopes are rendered.
func handleError(c echo.Context, err error, operation string) error {
	requestContext := map[string]any{
		"path":       c.Request().URL.Path,
		"method":     c.Request().Method,
		"request_id": c.Response().Header().Get(middleware.RequestIDHeader),
	}

	var enrichedErr *errors.AppContextError
	var appErr *errors.AppContextError
	if stderrors.As(err, &appErr) {
		enrichedErr = errors.EnrichWithContext(appErr, "rest", "RESTHandler", operation, requestContext)
	} else {
		enrichedErr = errors.NewUnknownContextError(
			"internal server error",
			"rest", "RESTHandler", operation,
			err, requestContext,
		)
	}

	status := enrichedErr.HTTPStatusCode()
	log := logger.FromContext(c.Request().Context())
	attrs := []any{
		"error", enrichedErr.Error(),
		"error_code", enrichedErr.Code,
		"status", status,
		"layer", appLayer(appErr),
		"operation", operation,
		"is_retryable", enrichedErr.IsRetryable(),
	}
	if status >= 500 {
		log.Error("REST handler error", attrs...)
	} else {
		log.Warn("REST handler error", attrs...)
	}

	return c.JSON(status, enrichedErr.ToHTTPResponse())
}

// handleValidationError renders a 400 for a rejected request field.
func handleValidationError(c echo.Context, message, field string, value any) error {
	return handleError(c, errors.NewValidationContextError(
		message,
		"rest", "RESTHandler", "validateInput",
		map[string]any{"field": field, "value": value},
	), "validateInput")
}

func appLayer(err *errors.AppContextError) string {
	if err == nil {
		return "unknown"
	}
	return err.Layer
}
