package html_parser

import (
	"html"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
)

var strictPolicy = func() *bluemonday.Policy {
	p := bluemonday.StrictPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}()

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

var (
	urlPattern      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	appearedFirstOn = regexp.MustCompile(`(?is)the post\s.{0,400}?\sappeared first on\s.*$`)
	continueReading = regexp.MustCompile(`(?is)continue reading.*$`)
	readMoreSuffix  = regexp.MustCompile(`(?i)\bread more\s*[»›→]?\s*$`)
	bracketEllipsis = regexp.MustCompile(`\[\s*(?:…|\.\.\.|&hellip;)\s*\]`)
	emptyParens     = regexp.MustCompile(`\(\s*\)`)
)

// PlainText strips markup, decodes entities, then strips again so encoded
// tags ("&lt;b&gt;") do not survive. script and style bodies are dropped.
func PlainText(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	s := strictPolicy.Sanitize(raw)
	s = html.UnescapeString(s)
	s = StripTags(s)
	return normalizeWS(s)
}

// StripTags removes tags with the x/net/html tokenizer, which also decodes
// entities in text nodes.
func StripTags(raw string) string {
	return stripCore(strings.NewReader(raw))
}

func stripCore(r io.Reader) string {
	var b strings.Builder
	z := xhtml.NewTokenizer(r)

	depthSkip := 0

	for {
		switch tt := z.Next(); tt {
		case xhtml.ErrorToken:
			return normalizeWS(b.String())

		case xhtml.StartTagToken:
			name, _ := z.TagName()
			if skipTag(name) {
				depthSkip++
			}

		case xhtml.EndTagToken:
			name, _ := z.TagName()
			if skipTag(name) && depthSkip > 0 {
				depthSkip--
			}

		case xhtml.TextToken:
			if depthSkip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func skipTag(name []byte) bool {
	switch string(name) {
	case "script", "style", "noscript", "iframe":
		return true
	}
	return false
}

// EscapeAngleBrackets encodes any remaining '<' or '>' so the text is inert
// when rendered as HTML.
func EscapeAngleBrackets(s string) string {
	return angleEscaper.Replace(s)
}

// SanitizeTitle returns display-safe plain text for a title.
func SanitizeTitle(raw string) string {
	return EscapeAngleBrackets(PlainText(raw))
}

// SanitizeDescription returns display-safe plain text with URLs and common
// feed boilerplate removed, capped at maxRunes.
func SanitizeDescription(raw string, maxRunes int) string {
	s := ScrubBoilerplate(PlainText(raw))
	return EscapeAngleBrackets(Truncate(s, maxRunes))
}

// ScrubBoilerplate removes URLs and syndication footers from plain text.
func ScrubBoilerplate(s string) string {
	s = appearedFirstOn.ReplaceAllString(s, "")
	s = continueReading.ReplaceAllString(s, "")
	s = bracketEllipsis.ReplaceAllString(s, "")
	s = urlPattern.ReplaceAllString(s, "")
	s = readMoreSuffix.ReplaceAllString(s, "")
	s = emptyParens.ReplaceAllString(s, "")
	return normalizeWS(s)
}

// Truncate cuts s to at most maxRunes runes, preferring a word boundary,
// and marks the cut with "...".
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}

	cut := string(runes[:maxRunes-3])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "..."
}

func normalizeWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
