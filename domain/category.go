package domain

import "strings"

type Category string

const (
	CategoryAI       Category = "AI"
	CategoryTech     Category = "Tech"
	CategorySecurity Category = "Security"
	CategoryStartups Category = "Startups"
	CategoryResearch Category = "Research"
	CategoryProducts Category = "Products"
)

var AllCategories = []Category{
	CategoryAI,
	CategoryTech,
	CategorySecurity,
	CategoryStartups,
	CategoryResearch,
	CategoryProducts,
}

// ParseCategory matches case-insensitively against the known categories.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range AllCategories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}
