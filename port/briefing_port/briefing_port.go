package briefing_port

import (
	"context"

	"newsroom/domain"
)

// GeneratedBriefing is the raw output of the summarization step before it is
// folded into a day's BriefingResult.
type GeneratedBriefing struct {
	TopNews  []domain.TopNewsItem
	Markdown string
}

// BriefingPort talks to the summarization model.
type BriefingPort interface {
	// GenerateBriefing selects and summarizes the most notable items. It
	// absorbs API failures into a degraded fallback result and never returns
	// an error.
	GenerateBriefing(ctx context.Context, items []domain.NewsItem) GeneratedBriefing

	// AnalyzeItem annotates one item with a summary and insight, retrying on
	// API failure. After retries are exhausted the item comes back with error
	// details attached instead of an error being raised.
	AnalyzeItem(ctx context.Context, item domain.NewsItem) domain.NewsItem

	// AnalyzeBatch applies AnalyzeItem to every item with inter-call pacing,
	// reporting progress after each item.
	AnalyzeBatch(ctx context.Context, items []domain.NewsItem, progress func(done, total int)) []domain.NewsItem
}
