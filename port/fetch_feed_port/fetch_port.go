package fetch_feed_port

import (
	"context"

	"newsroom/domain"
)

// FetchFeedPort retrieves and normalizes entries from a single feed URL.
type FetchFeedPort interface {
	// FetchFeed parses the feed at feedURL and returns entries no older than
	// maxAgeHours. Fetch and parse failures are isolated: the result is an
	// empty slice, never an error.
	FetchFeed(ctx context.Context, feedURL string, maxAgeHours int) []domain.NewsItem

	// TestFeed validates a feed URL before registration.
	TestFeed(ctx context.Context, feedURL string) domain.FeedTestResult
}
