package domain

import (
	"slices"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

var defaultBlockKeywords = []string{
	"wildlife", "zoo", "puppy", "puppies", "kitten", "cat video", "funny cat", "funny dog",
	"celebrity", "gossip", "kardashian", "red carpet", "reality tv", "royal family",
	"horoscope", "astrology", "recipe", "weight loss", "box office", "fashion week",
}

var defaultAIKeywords = []string{
	"artificial intelligence", "ai", "machine learning", "deep learning", "neural network",
	"llm", "large language model", "language model", "gpt", "chatgpt", "openai", "anthropic",
	"claude", "gemini", "deepmind", "generative", "transformer", "diffusion model",
	"computer vision", "nlp", "natural language", "reinforcement learning", "hugging face",
	"copilot", "agentic", "ai agent", "mistral", "llama", "foundation model",
}

var defaultTechKeywords = []string{
	"technology", "tech", "software", "startup", "cloud", "cybersecurity", "security",
	"robot", "robotics", "semiconductor", "chip", "nvidia", "quantum", "developer",
	"programming", "open source", "api", "data", "algorithm", "automation", "computing",
	"app", "apple", "google", "microsoft", "amazon", "meta", "vulnerability", "encryption",
}

var defaultRecencyKeywords = []string{"breaking", "new", "latest", "just", "announces", "launches"}

const (
	aiKeywordScore      = 3.0
	techKeywordScore    = 1.0
	recencyKeywordScore = 0.5
)

// ContentFilter decides topical relevance of articles from keyword lists.
// The block list always wins over the allow lists.
type ContentFilter struct {
	block   []string
	ai      []string
	tech    []string
	recency []string
}

func NewContentFilter() *ContentFilter {
	return &ContentFilter{
		block:   defaultBlockKeywords,
		ai:      defaultAIKeywords,
		tech:    defaultTechKeywords,
		recency: defaultRecencyKeywords,
	}
}

// NewContentFilterWithKeywords replaces the block and allow lists; nil keeps
// the default for that list.
func NewContentFilterWithKeywords(block, ai, tech []string) *ContentFilter {
	f := NewContentFilter()
	if block != nil {
		f.block = normalizeKeywords(block)
	}
	if ai != nil {
		f.ai = normalizeKeywords(ai)
	}
	if tech != nil {
		f.tech = normalizeKeywords(tech)
	}
	return f
}

func (f *ContentFilter) IsBlocked(a Article) bool {
	return containsAny(articleText(a), f.block)
}

func (f *ContentFilter) IsRelevant(a Article) bool {
	text := articleText(a)
	if containsAny(text, f.block) {
		return false
	}
	return containsAny(text, f.ai) || containsAny(text, f.tech)
}

// Score weights AI keywords 3, tech keywords 1 and recency words 0.5.
// Blocked articles score zero.
func (f *ContentFilter) Score(a Article) float64 {
	text := articleText(a)
	if containsAny(text, f.block) {
		return 0
	}
	score := 0.0
	for _, kw := range f.ai {
		if containsKeyword(text, kw) {
			score += aiKeywordScore
		}
	}
	for _, kw := range f.tech {
		if containsKeyword(text, kw) {
			score += techKeywordScore
		}
	}
	for _, kw := range f.recency {
		if containsKeyword(text, kw) {
			score += recencyKeywordScore
		}
	}
	return score
}

// Filter keeps relevant articles in their original order.
func (f *ContentFilter) Filter(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if f.IsRelevant(a) {
			out = append(out, a)
		}
	}
	return out
}

// SortByRelevance returns a copy ordered by descending score; ties keep
// their input order.
func (f *ContentFilter) SortByRelevance(articles []Article) []Article {
	type scored struct {
		article Article
		score   float64
	}
	items := make([]scored, len(articles))
	for i, a := range articles {
		items[i] = scored{article: a, score: f.Score(a)}
	}
	slices.SortStableFunc(items, func(x, y scored) int {
		switch {
		case x.score > y.score:
			return -1
		case x.score < y.score:
			return 1
		}
		return 0
	})
	out := make([]Article, len(items))
	for i, it := range items {
		out[i] = it.article
	}
	return out
}

// Categorize applies block > AI > Tech > fallback precedence.
func (f *ContentFilter) Categorize(a Article, fallback Category) Category {
	text := articleText(a)
	switch {
	case containsAny(text, f.block):
		return fallback
	case containsAny(text, f.ai):
		return CategoryAI
	case containsAny(text, f.tech):
		return CategoryTech
	default:
		return fallback
	}
}

func articleText(a Article) string {
	return strings.ToLower(a.Title + " " + a.Description)
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsKeyword(text, kw) {
			return true
		}
	}
	return false
}

// containsKeyword is a substring match, except keywords of three runes or
// fewer must stand alone as a word ("ai" must not match "said").
func containsKeyword(text, kw string) bool {
	if len([]rune(kw)) > 3 {
		return strings.Contains(text, kw)
	}
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], kw)
		if i < 0 {
			return false
		}
		start := offset + i
		end := start + len(kw)
		if !isWordByteAt(text, start-1) && !isWordByteAt(text, end) {
			return true
		}
		offset = start + 1
	}
	return false
}

func isWordByteAt(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return false
	}
	r := rune(text[i])
	return r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// normalizeKeywords lowercases and trims keywords, dropping blanks and
// duplicates so a keyword is scored once.
func normalizeKeywords(in []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(in, func(s string, _ int) string {
		return strings.ToLower(strings.TrimSpace(s))
	})))
}
