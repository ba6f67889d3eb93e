package feed_parser

import (
	"html"
	"regexp"
	"strings"

	"github.com/Kalefullycode/roots-tech-news-sub000/utils/html_parser"
)

// Used only for documents the XML parser rejects, typically feeds with
// unescaped ampersands or a truncated tail.
var (
	itemBlock  = regexp.MustCompile(`(?is)<item\b[^>]*>(.*?)</item>`)
	entryBlock = regexp.MustCompile(`(?is)<entry\b[^>]*>(.*?)</entry>`)
	cdata      = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	linkTag    = regexp.MustCompile(`(?is)<link\b([^>]*)/?>`)
	enclosure  = regexp.MustCompile(`(?is)<enclosure\b([^>]*)/?>`)
	mediaTag   = regexp.MustCompile(`(?is)<media:(?:content|thumbnail)\b([^>]*)/?>`)
	attrValue  = regexp.MustCompile(`(?is)\b([a-z:_-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
)

var fieldPatterns = map[string]*regexp.Regexp{}

func fieldPattern(name string) *regexp.Regexp {
	if re, ok := fieldPatterns[name]; ok {
		return re
	}
	return regexp.MustCompile(`(?is)<` + regexp.QuoteMeta(name) + `\b[^>]*>(.*?)</` + regexp.QuoteMeta(name) + `>`)
}

func init() {
	for _, name := range []string{
		"title", "link", "guid", "id", "description", "summary", "content",
		"content:encoded", "pubDate", "published", "updated", "dc:date",
	} {
		fieldPatterns[name] = fieldPattern(name)
	}
}

func extractWithRegex(raw []byte) []rawItem {
	doc := string(raw)

	blocks := itemBlock.FindAllStringSubmatch(doc, -1)
	atom := false
	if len(blocks) == 0 {
		blocks = entryBlock.FindAllStringSubmatch(doc, -1)
		atom = true
	}

	items := make([]rawItem, 0, len(blocks))
	for _, b := range blocks {
		block := b[1]
		it := rawItem{
			title:        firstField(block, "title"),
			guid:         firstField(block, "guid", "id"),
			description:  firstField(block, "description", "summary"),
			content:      firstField(block, "content:encoded", "content"),
			publishedRaw: firstField(block, "pubDate", "published", "dc:date", "updated"),
		}
		if atom {
			it.link = atomLink(block)
		} else {
			it.link = firstField(block, "link")
			if it.link == "" {
				it.link = atomLink(block)
			}
		}
		it.imageURL = regexImage(block)
		items = append(items, it)
	}
	return items
}

// firstField returns the first non-empty text among the named child
// elements, with CDATA unwrapped and XML entities decoded.
func firstField(block string, names ...string) string {
	for _, name := range names {
		m := fieldPattern(name).FindStringSubmatch(block)
		if m == nil {
			continue
		}
		if v := strings.TrimSpace(unwrap(m[1])); v != "" {
			return v
		}
	}
	return ""
}

func unwrap(s string) string {
	if cdata.MatchString(s) {
		return cdata.ReplaceAllString(s, "$1")
	}
	return html.UnescapeString(s)
}

// atomLink prefers rel="alternate" (or no rel) href values.
func atomLink(block string) string {
	var fallback string
	for _, m := range linkTag.FindAllStringSubmatch(block, -1) {
		attrs := parseAttrs(m[1])
		href := attrs["href"]
		if href == "" {
			continue
		}
		rel := attrs["rel"]
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" && rel != "enclosure" && rel != "self" {
			fallback = href
		}
	}
	return fallback
}

func regexImage(block string) string {
	for _, m := range enclosure.FindAllStringSubmatch(block, -1) {
		attrs := parseAttrs(m[1])
		u := attrs["url"]
		if !html_parser.IsHTTPURL(u) {
			continue
		}
		if strings.HasPrefix(strings.ToLower(attrs["type"]), "image/") ||
			(attrs["type"] == "" && html_parser.LooksLikeImageURL(u)) {
			return u
		}
	}
	for _, m := range mediaTag.FindAllStringSubmatch(block, -1) {
		attrs := parseAttrs(m[1])
		if u := attrs["url"]; html_parser.IsHTTPURL(u) {
			mime := strings.ToLower(attrs["type"])
			if mime == "" || strings.HasPrefix(mime, "image/") || attrs["medium"] == "image" {
				return u
			}
		}
	}
	return ""
}

func parseAttrs(s string) map[string]string {
	attrs := map[string]string{}
	for _, m := range attrValue.FindAllStringSubmatch(s, -1) {
		v := m[2]
		if v == "" {
			v = m[3]
		}
		attrs[strings.ToLower(m[1])] = html.UnescapeString(v)
	}
	return attrs
}
