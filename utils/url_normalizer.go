package utils

import (
	"net/url"
	"strings"
)

var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign",
	"utm_term", "utm_content", "utm_id",
	"fbclid", "gclid", "mc_eid", "msclkid", "ref",
}

// NormalizeURL removes tracking parameters, the fragment and a trailing
// slash, and lowercases scheme and host so equal articles compare equal.
//
//	input:  "https://Example.com/article/?utm_source=rss#top"
//	output: "https://example.com/article"
func NormalizeURL(rawURL string) (string, error) {
	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	query := parsedURL.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	parsedURL.RawQuery = query.Encode()
	parsedURL.Fragment = ""
	parsedURL.Scheme = strings.ToLower(parsedURL.Scheme)
	parsedURL.Host = strings.ToLower(parsedURL.Host)

	if parsedURL.Path != "/" && strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path = strings.TrimRight(parsedURL.Path, "/")
	}

	return parsedURL.String(), nil
}
