package domain

// DefaultFeedRegistry is the built-in feed table used when no database
// registry is configured.
func DefaultFeedRegistry() []FeedDescriptor {
	return []FeedDescriptor{
		{ID: "techcrunch-ai", Name: "TechCrunch AI", URL: "https://techcrunch.com/category/artificial-intelligence/feed/", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 30},
		{ID: "verge-ai", Name: "The Verge AI", URL: "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 30},
		{ID: "venturebeat-ai", Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 30},
		{ID: "mit-tech-review-ai", Name: "MIT Technology Review AI", URL: "https://www.technologyreview.com/topic/artificial-intelligence/feed", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 60},
		{ID: "wired-ai", Name: "Wired AI", URL: "https://www.wired.com/feed/tag/ai/latest/rss", Category: CategoryAI, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 60},
		{ID: "openai-news", Name: "OpenAI News", URL: "https://openai.com/news/rss.xml", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 60},
		{ID: "google-ai", Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/", Category: CategoryAI, Active: true, Priority: PriorityHigh, UpdateFrequencyMinutes: 60},
		{ID: "deepmind", Name: "Google DeepMind", URL: "https://deepmind.google/blog/rss.xml", Category: CategoryResearch, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 120},
		{ID: "huggingface", Name: "Hugging Face Blog", URL: "https://huggingface.co/blog/feed.xml", Category: CategoryAI, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 120},
		{ID: "ai-news", Name: "AI News", URL: "https://www.artificialintelligence-news.com/feed/", Category: CategoryAI, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 60},
		{ID: "arxiv-cs-ai", Name: "arXiv cs.AI", URL: "https://rss.arxiv.org/rss/cs.AI", Category: CategoryResearch, Active: true, Priority: PriorityLow, UpdateFrequencyMinutes: 720},
		{ID: "bair", Name: "Berkeley AI Research", URL: "https://bair.berkeley.edu/blog/feed.xml", Category: CategoryResearch, Active: true, Priority: PriorityLow, UpdateFrequencyMinutes: 720},
		{ID: "ars-technica", Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/technology-lab", Category: CategoryTech, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 60},
		{ID: "engadget", Name: "Engadget", URL: "https://www.engadget.com/rss.xml", Category: CategoryTech, Active: true, Priority: PriorityLow, UpdateFrequencyMinutes: 60},
		{ID: "nvidia-blog", Name: "NVIDIA Blog", URL: "https://blogs.nvidia.com/feed/", Category: CategoryTech, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 120},
		{ID: "krebs", Name: "Krebs on Security", URL: "https://krebsonsecurity.com/feed/", Category: CategorySecurity, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 120},
		{ID: "the-hacker-news", Name: "The Hacker News", URL: "https://feeds.feedburner.com/TheHackersNews", Category: CategorySecurity, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 60},
		{ID: "dark-reading", Name: "Dark Reading", URL: "https://www.darkreading.com/rss.xml", Category: CategorySecurity, Active: false, Priority: PriorityLow, UpdateFrequencyMinutes: 120},
		{ID: "techcrunch-startups", Name: "TechCrunch Startups", URL: "https://techcrunch.com/category/startups/feed/", Category: CategoryStartups, Active: true, Priority: PriorityMedium, UpdateFrequencyMinutes: 60},
		{ID: "product-hunt", Name: "Product Hunt", URL: "https://www.producthunt.com/feed", Category: CategoryProducts, Active: true, Priority: PriorityLow, UpdateFrequencyMinutes: 120},
	}
}

// DefaultAllowedDomains seeds the proxy allowlist. Subdomains of each entry
// are allowed too.
var DefaultAllowedDomains = []string{
	"techcrunch.com",
	"theverge.com",
	"venturebeat.com",
	"technologyreview.com",
	"wired.com",
	"openai.com",
	"blog.google",
	"deepmind.google",
	"huggingface.co",
	"artificialintelligence-news.com",
	"arxiv.org",
	"berkeley.edu",
	"arstechnica.com",
	"engadget.com",
	"nvidia.com",
	"krebsonsecurity.com",
	"feedburner.com",
	"darkreading.com",
	"producthunt.com",
	"medium.com",
	"substack.com",
	"dev.to",
	"news.ycombinator.com",
	"reddit.com",
}
