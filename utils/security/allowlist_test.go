package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainAllowlist_IsAllowedHost(t *testing.T) {
	a := NewDomainAllowlist("techcrunch.com", "Blog.Google", "bücher.example")

	tests := []struct {
		host string
		want bool
	}{
		{"techcrunch.com", true},
		{"TECHCRUNCH.COM", true},
		{"techcrunch.com.", true},
		{"feeds.techcrunch.com", true},
		{"techcrunch.com:443", true},
		{"blog.google", true},
		{"xn--bcher-kva.example", true},
		{"BÜCHER.example", true},
		{"evil.example.com", false},
		{"nottechcrunch.com", false},
		{"techcrunch.com.evil.io", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, a.IsAllowedHost(tt.host))
		})
	}
}

func TestDomainAllowlist_Check(t *testing.T) {
	a := NewDomainAllowlist("techcrunch.com")

	u, err := a.Check("https://techcrunch.com/feed/")
	require.NoError(t, err)
	assert.Equal(t, "techcrunch.com", u.Hostname())

	_, err = a.Check("https://evil.example.com/rss")
	assert.ErrorIs(t, err, ErrDomainNotAllowed)

	for _, raw := range []string{"", "not a url", "ftp://techcrunch.com/feed", "https:///feed", "https://user:pw@techcrunch.com/"} {
		_, err = a.Check(raw)
		assert.ErrorIs(t, err, ErrInvalidURL, raw)
	}
}

func TestDomainAllowlist_AddAndDomains(t *testing.T) {
	a := NewDomainAllowlist()
	assert.False(t, a.IsAllowedHost("example.org"))

	a.Add("Example.org", "", "example.org")

	assert.True(t, a.IsAllowedHost("news.example.org"))
	assert.Equal(t, []string{"example.org"}, a.Domains())
}
