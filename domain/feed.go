package domain

// FeedConfig is one registered news source. Edits overwrite in place; no
// history is kept.
type FeedConfig struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Enabled bool   `json:"enabled"`
}

// FeedsDocument is the persisted shape of the feed source registry.
type FeedsDocument struct {
	Feeds []FeedConfig `json:"feeds"`
}

// DefaultFeeds seeds the registry when no feeds document exists yet.
func DefaultFeeds() []FeedConfig {
	return []FeedConfig{
		{Name: "GeekNews", URL: "https://feeds.feedburner.com/geeknews", Enabled: true},
		{Name: "Hacker News", URL: "https://news.ycombinator.com/rss", Enabled: true},
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Enabled: true},
	}
}
