package fallback_api_driver

// DevToArticle is one entry of the dev.to /articles listing.
type DevToArticle struct {
	ID                int64      `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	URL               string     `json:"url"`
	CoverImage        string     `json:"cover_image"`
	SocialImage       string     `json:"social_image"`
	PublishedAt       string     `json:"published_at"`
	TagList           []string   `json:"tag_list"`
	PositiveReactions int        `json:"positive_reactions_count"`
	User              DevToUser  `json:"user"`
	Organization      *DevToUser `json:"organization,omitempty"`
}

type DevToUser struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// AlgoliaResponse is the Hacker News search API envelope.
type AlgoliaResponse struct {
	Hits []AlgoliaHit `json:"hits"`
}

type AlgoliaHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	StoryText   string `json:"story_text"`
	Author      string `json:"author"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	CreatedAt   string `json:"created_at"`
	CreatedAtI  int64  `json:"created_at_i"`
}

// RedditListing is the envelope of /r/<sub>/hot.json.
type RedditListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data RedditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type RedditPost struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Permalink  string  `json:"permalink"`
	SelfText   string  `json:"selftext"`
	Thumbnail  string  `json:"thumbnail"`
	CreatedUTC float64 `json:"created_utc"`
	Stickied   bool    `json:"stickied"`
	Over18     bool    `json:"over_18"`
	Score      int     `json:"score"`
	Subreddit  string  `json:"subreddit"`
	Preview    *struct {
		Images []struct {
			Source struct {
				URL string `json:"url"`
			} `json:"source"`
		} `json:"images"`
	} `json:"preview,omitempty"`
}
