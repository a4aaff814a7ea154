package domain

import "time"

// NewsItem is a single normalized feed entry. The analysis fields are
// populated by the briefing generator after collection; everything else is
// immutable once the fetcher has produced the item.
type NewsItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	Description string    `json:"description"`
	Source      string    `json:"source"`

	Summary     string   `json:"summary,omitempty"`
	Insights    string   `json:"insights,omitempty"`
	RelatedTech []string `json:"related_tech,omitempty"`

	// Error and ErrorType are set when per-item analysis failed and the item
	// was kept with degraded data instead of being dropped.
	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// TopNewsItem is one of the up-to-three highlighted entries of a daily briefing.
type TopNewsItem struct {
	Title       string   `json:"title"`
	Summary     string   `json:"summary"`
	Insights    string   `json:"insights"`
	RelatedTech []string `json:"related_tech"`
	Link        string   `json:"link"`
}

// BriefingResult is the curated output for one calendar day.
// TopNews never holds more than three entries.
type BriefingResult struct {
	Date        string        `json:"date"`
	TopNews     []TopNewsItem `json:"top3_news"`
	Markdown    string        `json:"markdown_text"`
	AllNews     []NewsItem    `json:"all_news"`
	CollectedAt time.Time     `json:"collected_at"`
}

// NewsDocument maps an ISO date string (2006-01-02) to that day's briefing.
// Re-running collection for a day overwrites the existing entry.
type NewsDocument map[string]BriefingResult

// FeedTestResult is the outcome of validating a feed URL before registration.
type FeedTestResult struct {
	Valid     bool   `json:"valid"`
	Title     string `json:"title"`
	ItemCount int    `json:"item_count"`
	Error     string `json:"error,omitempty"`
}

// DateFormat is the ISO date layout used as the key of NewsDocument.
const DateFormat = "2006-01-02"
