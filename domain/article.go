package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

const UntitledArticle = "Untitled"

type ArticleSource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Article is the normalized unit served to clients. Title and Description
// are plain text with residual angle brackets escaped.
type Article struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	PublishedAt time.Time     `json:"publishedAt"`
	Source      ArticleSource `json:"source"`
	Category    Category      `json:"category"`
}

func (a Article) WithCategory(c Category) Article {
	a.Category = c
	return a
}

// DeriveArticleID hashes the link, then the GUID. Items with neither get a
// synthetic "<sourceID>-<index>-<titlehash>" identifier.
func DeriveArticleID(link, guid, sourceID string, index int, title string) string {
	if link != "" {
		return shortHash(link)
	}
	if guid != "" {
		return shortHash(guid)
	}
	return fmt.Sprintf("%s-%d-%s", sourceID, index, shortHash(title)[:8])
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
