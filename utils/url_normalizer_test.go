package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tracking params and fragment", "https://Example.com/article/?utm_source=rss&utm_campaign=x#top", "https://example.com/article"},
		{"keeps meaningful query", "https://example.com/a?id=5&fbclid=abc", "https://example.com/a?id=5"},
		{"root path kept", "https://example.com/", "https://example.com/"},
		{"already clean", "https://example.com/post", "https://example.com/post"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Invalid(t *testing.T) {
	_, err := NormalizeURL("http://[::1")
	assert.Error(t, err)
}
