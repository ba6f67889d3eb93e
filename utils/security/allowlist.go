package security

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"
	"strings"
	"sync"

	"golang.org/x/net/idna"
)

var (
	ErrInvalidURL       = errors.New("invalid url")
	ErrDomainNotAllowed = errors.New("domain not allowed")
)

// DomainAllowlist admits a host when it equals an allowed domain or is a
// subdomain of one. Hosts are IDNA normalized and case folded on both sides.
type DomainAllowlist struct {
	mu      sync.RWMutex
	domains map[string]struct{}
}

func NewDomainAllowlist(domains ...string) *DomainAllowlist {
	a := &DomainAllowlist{domains: make(map[string]struct{}, len(domains))}
	a.Add(domains...)
	return a
}

// Add registers domains; entries that fail normalization are ignored.
func (a *DomainAllowlist) Add(domains ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, d := range domains {
		host, err := NormalizeHost(d)
		if err != nil || host == "" {
			continue
		}
		a.domains[host] = struct{}{}
	}
}

func (a *DomainAllowlist) Domains() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]string, 0, len(a.domains))
	for d := range a.domains {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

func (a *DomainAllowlist) IsAllowedHost(host string) bool {
	normalized, err := NormalizeHost(host)
	if err != nil || normalized == "" {
		return false
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if _, ok := a.domains[normalized]; ok {
		return true
	}
	for domain := range a.domains {
		if strings.HasSuffix(normalized, "."+domain) {
			return true
		}
	}
	return false
}

func (a *DomainAllowlist) IsAllowedURL(u *url.URL) bool {
	if u == nil {
		return false
	}
	return a.IsAllowedHost(u.Hostname())
}

// Check parses rawURL and applies the allowlist. The returned error wraps
// ErrInvalidURL or ErrDomainNotAllowed.
func (a *DomainAllowlist) Check(rawURL string) (*url.URL, error) {
	u, err := ParseFeedURL(rawURL)
	if err != nil {
		return nil, err
	}
	if !a.IsAllowedURL(u) {
		return u, fmt.Errorf("%w: %s", ErrDomainNotAllowed, u.Hostname())
	}
	return u, nil
}

// ParseFeedURL accepts absolute http(s) URLs with a host.
func ParseFeedURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if u.User != nil {
		return nil, fmt.Errorf("%w: credentials in url", ErrInvalidURL)
	}
	return u, nil
}

// NormalizeHost lowercases, strips any port and trailing dot, and converts
// internationalized names to their ASCII form.
func NormalizeHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.Trim(host, "[]"), ".")
	if host == "" {
		return "", nil
	}
	if net.ParseIP(host) != nil {
		return host, nil
	}
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", fmt.Errorf("normalize host %q: %w", host, err)
	}
	return strings.ToLower(ascii), nil
}
