package fetch_feed_gateway

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"newsroom/domain"
	"newsroom/port/fetch_feed_port"
	"newsroom/utils/logger"
	"newsroom/utils/rate_limiter"
)

// Verify interface compliance at compile time.
var _ fetch_feed_port.FetchFeedPort = (*FeedGateway)(nil)

const unknownSource = "Unknown"

// FeedGateway fetches and normalizes RSS/Atom feeds. Failures never escape:
// a broken feed contributes zero items and a warning in the log.
type FeedGateway struct {
	parser    *gofeed.Parser
	sanitizer *bluemonday.Policy
	limiter   *rate_limiter.HostRateLimiter

	// now is swapped out in tests that pin the recency boundary.
	now func() time.Time
}

func NewFeedGateway(limiter *rate_limiter.HostRateLimiter, clientTimeout time.Duration) *FeedGateway {
	parser := gofeed.NewParser()
	parser.Client = newHTTPClient(clientTimeout)

	return &FeedGateway{
		parser:    parser,
		sanitizer: bluemonday.StrictPolicy(),
		limiter:   limiter,
		now:       time.Now,
	}
}

// FetchFeed parses the feed at feedURL and keeps entries newer than
// now-maxAgeHours. An entry timestamped exactly at the cutoff is discarded.
func (g *FeedGateway) FetchFeed(ctx context.Context, feedURL string, maxAgeHours int) []domain.NewsItem {
	if g.limiter != nil {
		if err := g.limiter.WaitForHost(ctx, feedURL); err != nil {
			logger.Logger.Warn("rate limiting failed for feed", "url", feedURL, "error", err)
			return nil
		}
	}

	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		logger.Logger.Warn("failed to parse feed", "url", feedURL, "error", err)
		return nil
	}

	source := feed.Title
	if source == "" {
		source = unknownSource
	}

	now := g.now()
	cutoff := now.Add(-time.Duration(maxAgeHours) * time.Hour)

	var items []domain.NewsItem
	for _, entry := range feed.Items {
		publishedAt := entryTimestamp(entry, now)
		if !publishedAt.After(cutoff) {
			continue
		}

		items = append(items, domain.NewsItem{
			Title:       entry.Title,
			Link:        entry.Link,
			PublishedAt: publishedAt,
			Description: strings.TrimSpace(g.sanitizer.Sanitize(entry.Description)),
			Source:      source,
		})
	}

	logger.Logger.Info("collected feed", "url", feedURL, "items", len(items), "total_entries", len(feed.Items))
	return items
}

// TestFeed validates a feed URL for admin-time registration checks. It is
// paced per host the same way FetchFeed is.
func (g *FeedGateway) TestFeed(ctx context.Context, feedURL string) domain.FeedTestResult {
	if g.limiter != nil {
		if err := g.limiter.WaitForHost(ctx, feedURL); err != nil {
			return domain.FeedTestResult{Valid: false, Error: err.Error()}
		}
	}

	feed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return domain.FeedTestResult{Valid: false, Error: err.Error()}
	}

	if len(feed.Items) == 0 {
		return domain.FeedTestResult{Valid: false, Error: "feed has no entries"}
	}

	title := feed.Title
	if title == "" {
		title = unknownSource
	}

	return domain.FeedTestResult{
		Valid:     true,
		Title:     title,
		ItemCount: len(feed.Items),
	}
}

// entryTimestamp prefers the publish time, falls back to the update time,
// and dates the entry now when neither exists.
func entryTimestamp(entry *gofeed.Item, now time.Time) time.Time {
	if entry.PublishedParsed != nil {
		return *entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return *entry.UpdatedParsed
	}
	return now
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
