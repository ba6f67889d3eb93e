package domain

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

type FeedPriority string

const (
	PriorityHigh   FeedPriority = "high"
	PriorityMedium FeedPriority = "medium"
	PriorityLow    FeedPriority = "low"
)

// FeedDescriptor is a registry entry. It is configuration and never
// mutated at runtime.
type FeedDescriptor struct {
	ID                     string       `json:"id"`
	Name                   string       `json:"name"`
	URL                    string       `json:"url"`
	Category               Category     `json:"category"`
	Active                 bool         `json:"active"`
	Priority               FeedPriority `json:"priority"`
	UpdateFrequencyMinutes int          `json:"updateFrequencyMinutes"`
}

func (f FeedDescriptor) Hostname() string {
	u, err := url.Parse(f.URL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

func ActiveFeeds(feeds []FeedDescriptor) []FeedDescriptor {
	return lo.Filter(feeds, func(f FeedDescriptor, _ int) bool {
		return f.Active
	})
}

// FeedHosts returns the distinct hostnames of feeds, in registry order.
func FeedHosts(feeds []FeedDescriptor) []string {
	hosts := lo.FilterMap(feeds, func(f FeedDescriptor, _ int) (string, bool) {
		h := f.Hostname()
		return h, h != ""
	})
	return lo.Uniq(hosts)
}
