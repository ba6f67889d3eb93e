package feed_registry_gateway

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/driver/feed_db"
	"github.com/Kalefullycode/roots-tech-news-sub000/port/feed_registry_port"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/logger"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/security"
)

// StaticFeedRegistryGateway serves a fixed list of descriptors.
type StaticFeedRegistryGateway struct {
	feeds []domain.FeedDescriptor
}

var _ feed_registry_port.FeedRegistryPort = (*StaticFeedRegistryGateway)(nil)

func NewStaticFeedRegistryGateway(feeds []domain.FeedDescriptor) *StaticFeedRegistryGateway {
	return &StaticFeedRegistryGateway{feeds: feeds}
}

func (g *StaticFeedRegistryGateway) ListFeeds(_ context.Context) ([]domain.FeedDescriptor, error) {
	out := make([]domain.FeedDescriptor, len(g.feeds))
	copy(out, g.feeds)
	return out, nil
}

// FeedSourceFetcher is implemented by feed_db.FeedSourceRepository.
type FeedSourceFetcher interface {
	FetchFeedSources(ctx context.Context) ([]feed_db.FeedSourceRow, error)
}

// DBFeedRegistryGateway reads the registry from the database and falls back
// to the static list when the query fails or returns nothing usable. Hosts of
// active database feeds are added to the allowlist so operators can register
// new sources without a deploy.
type DBFeedRegistryGateway struct {
	repo      FeedSourceFetcher
	fallback  []domain.FeedDescriptor
	allowlist *security.DomainAllowlist
}

var _ feed_registry_port.FeedRegistryPort = (*DBFeedRegistryGateway)(nil)

func NewDBFeedRegistryGateway(repo FeedSourceFetcher, fallback []domain.FeedDescriptor, allowlist *security.DomainAllowlist) *DBFeedRegistryGateway {
	return &DBFeedRegistryGateway{repo: repo, fallback: fallback, allowlist: allowlist}
}

func (g *DBFeedRegistryGateway) ListFeeds(ctx context.Context) ([]domain.FeedDescriptor, error) {
	rows, err := g.repo.FetchFeedSources(ctx)
	if err != nil {
		logger.Logger.WarnContext(ctx, "feed registry query failed, using built-in feeds", "error", err)
		return g.fallbackFeeds(), nil
	}

	feeds := lo.FilterMap(rows, func(row feed_db.FeedSourceRow, _ int) (domain.FeedDescriptor, bool) {
		return toDescriptor(row)
	})
	if len(feeds) == 0 {
		logger.Logger.WarnContext(ctx, "feed registry is empty, using built-in feeds", "rows", len(rows))
		return g.fallbackFeeds(), nil
	}

	if g.allowlist != nil {
		g.allowlist.Add(domain.FeedHosts(domain.ActiveFeeds(feeds))...)
	}
	return feeds, nil
}

// SeedAllowlist loads the registry once so database feed hosts are
// allowlisted before the first aggregation runs.
func (g *DBFeedRegistryGateway) SeedAllowlist(ctx context.Context) {
	feeds, _ := g.ListFeeds(ctx)
	logger.Logger.InfoContext(ctx, "feed registry loaded", "feeds", len(feeds), "active", len(domain.ActiveFeeds(feeds)))
}

func (g *DBFeedRegistryGateway) fallbackFeeds() []domain.FeedDescriptor {
	out := make([]domain.FeedDescriptor, len(g.fallback))
	copy(out, g.fallback)
	return out
}

// toDescriptor drops rows without a usable URL. Unknown categories are kept
// as Tech and unknown priorities as medium.
func toDescriptor(row feed_db.FeedSourceRow) (domain.FeedDescriptor, bool) {
	if _, err := security.ParseFeedURL(row.URL); err != nil || strings.TrimSpace(row.ID) == "" {
		return domain.FeedDescriptor{}, false
	}

	category, ok := domain.ParseCategory(row.Category)
	if !ok {
		category = domain.CategoryTech
	}

	priority := domain.FeedPriority(strings.ToLower(strings.TrimSpace(row.Priority)))
	switch priority {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
	default:
		priority = domain.PriorityMedium
	}

	name := strings.TrimSpace(row.Name)
	if name == "" {
		name = row.ID
	}

	return domain.FeedDescriptor{
		ID:                     row.ID,
		Name:                   name,
		URL:                    strings.TrimSpace(row.URL),
		Category:               category,
		Active:                 row.Active,
		Priority:               priority,
		UpdateFrequencyMinutes: row.UpdateFrequencyMinutes,
	}, true
}
