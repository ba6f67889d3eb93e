package html_parser

import (
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".avif": true, ".svg": true,
}

// ExtractFirstImage returns the first absolute http(s) <img src> in markup,
// skipping data URIs and 1x1 tracking pixels.
func ExtractFirstImage(markup string) string {
	if !strings.Contains(markup, "<img") && !strings.Contains(markup, "<IMG") {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("width", "") == "1" || s.AttrOr("height", "") == "1" {
			return true
		}
		src := strings.TrimSpace(s.AttrOr("src", ""))
		if src == "" {
			src = strings.TrimSpace(s.AttrOr("data-src", ""))
		}
		if IsHTTPURL(src) {
			found = src
			return false
		}
		return true
	})
	return found
}

func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LooksLikeImageURL checks the path extension, ignoring any query string.
func LooksLikeImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return imageExtensions[strings.ToLower(path.Ext(u.Path))]
}
