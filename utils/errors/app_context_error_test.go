package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppContextError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppContextError
		want string
	}{
		{
			name: "full context with cause",
			err: &AppContextError{
				Code:      CodeTimeout,
				Message:   "upstream timed out",
				Layer:     "usecase",
				Component: "ProxyFeedUsecase",
				Operation: "Execute",
				Cause:     errors.New("context deadline exceeded"),
			},
			want: "[usecase:ProxyFeedUsecase:Execute] TIMEOUT_ERROR: upstream timed out (caused by: context deadline exceeded)",
		},
		{
			name: "minimal",
			err: &AppContextError{
				Code:    CodeValidation,
				Message: "missing url",
			},
			want: "VALIDATION_ERROR: missing url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppContextError
		want int
	}{
		{"validation", NewValidationContextError("bad", "rest", "H", "op", nil), http.StatusBadRequest},
		{"forbidden", NewForbiddenContextError("no", "usecase", "U", "op", nil, nil), http.StatusForbidden},
		{"timeout", NewTimeoutContextError("slow", "usecase", "U", "op", nil, nil), http.StatusGatewayTimeout},
		{"external", NewExternalAPIContextError("bad gateway", "usecase", "U", "op", nil, nil), http.StatusBadGateway},
		{"upstream 404 passthrough", NewUpstreamStatusContextError(http.StatusNotFound, "not found", "usecase", "U", "op", nil, nil), http.StatusNotFound},
		{"config", NewConfigContextError("unset", "usecase", "U", "op", nil, nil), http.StatusInternalServerError},
		{"unknown", NewUnknownContextError("boom", "rest", "H", "op", nil, nil), http.StatusInternalServerError},
		{"explicit override", NewExternalAPIContextError("x", "u", "c", "o", nil, nil).WithStatus(http.StatusInternalServerError), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatusCode())
		})
	}
}

func TestAppContextError_ToHTTPResponse(t *testing.T) {
	err := NewForbiddenContextError("domain not allowed", "usecase", "ProxyFeedUsecase", "Execute", nil, map[string]any{"host": "evil.example.com"})

	resp := err.ToHTTPResponse()

	assert.Equal(t, "domain not allowed", resp.Error)
	assert.Equal(t, CodeForbidden, resp.Code)
	assert.Equal(t, "evil.example.com", resp.Context["host"])
	assert.Equal(t, "forbidden", resp.Context["error_type"])
}

func TestEnrichWithContext_KeepsStatusAndMergesContext(t *testing.T) {
	base := NewUpstreamStatusContextError(http.StatusGone, "gone", "usecase", "U", "op", nil, map[string]any{"url": "https://a"})

	enriched := EnrichWithContext(base, "rest", "RESTHandler", "RSSProxy", map[string]any{"path": "/api/rss-proxy"})

	assert.Equal(t, http.StatusGone, enriched.HTTPStatusCode())
	assert.Equal(t, "rest", enriched.Layer)
	assert.Equal(t, "https://a", enriched.Context["url"])
	assert.Equal(t, "/api/rss-proxy", enriched.Context["path"])
}

func TestSentinelHelpers(t *testing.T) {
	wrapped := fmt.Errorf("aggregate: %w", ErrAllSourcesFailed)
	assert.True(t, IsAllSourcesFailed(wrapped))
	assert.False(t, IsTimeoutError(wrapped))

	appErr := NewTimeoutContextError("slow", "gateway", "G", "op", ErrOperationTimeout, nil)
	assert.True(t, IsTimeoutError(appErr))
	assert.True(t, IsRetryableError(appErr))
	assert.False(t, IsRetryableError(NewValidationContextError("bad", "rest", "H", "op", nil)))
}
