package briefing_gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"newsroom/config"
	"newsroom/domain"
	"newsroom/port/briefing_port"
	"newsroom/utils/logger"
	"newsroom/utils/markdown_parser"
)

// Verify interface compliance at compile time.
var _ briefing_port.BriefingPort = (*BriefingGateway)(nil)

// TextGenerator is the summarization API boundary: one prompt in, one
// free-form text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error)
}

const (
	descriptionLimit = 200
	fallbackTitles   = 10

	briefingTemperature = 0.8
	briefingMaxTokens   = 1500
	analysisTemperature = 0.7
	analysisMaxTokens   = 500
)

// BriefingGateway turns collected news into a daily briefing through the
// summarization model, degrading gracefully when the model misbehaves.
type BriefingGateway struct {
	generator TextGenerator

	candidateLimit int
	maxRetries     int
	backoffBase    time.Duration
	backoffCap     time.Duration
	itemDelay      time.Duration

	// sleep is swapped out in tests.
	sleep func(time.Duration)
}

func NewBriefingGateway(generator TextGenerator, geminiCfg config.GeminiConfig, collectCfg config.CollectConfig) *BriefingGateway {
	return &BriefingGateway{
		generator:      generator,
		candidateLimit: collectCfg.CandidateLimit,
		maxRetries:     geminiCfg.MaxRetries,
		backoffBase:    geminiCfg.BackoffBase,
		backoffCap:     geminiCfg.BackoffCap,
		itemDelay:      geminiCfg.ItemDelay,
		sleep:          time.Sleep,
	}
}

// GenerateBriefing asks the model to pick and summarize the three most
// notable items. API failures produce a degraded fallback document instead
// of an error.
func (g *BriefingGateway) GenerateBriefing(ctx context.Context, items []domain.NewsItem) briefing_port.GeneratedBriefing {
	if len(items) == 0 {
		return briefing_port.GeneratedBriefing{
			Markdown: "# Daily Tech Briefing\n\nNo news collected today.\n",
		}
	}

	candidates := items
	if len(candidates) > g.candidateLimit {
		candidates = candidates[:g.candidateLimit]
	}

	response, err := g.generator.Generate(ctx, briefingPrompt(candidates), briefingTemperature, briefingMaxTokens)
	if err != nil {
		logger.Logger.Error("briefing generation failed, using fallback", "error", err, "items", len(items))
		return briefing_port.GeneratedBriefing{Markdown: fallbackMarkdown(items)}
	}

	sections := markdown_parser.ParseTopSections(response)

	topNews := make([]domain.TopNewsItem, 0, len(sections))
	for _, section := range sections {
		topNews = append(topNews, domain.TopNewsItem{
			Title:       section.Title,
			Summary:     section.Summary,
			Insights:    section.Insights,
			RelatedTech: section.RelatedTech,
			Link:        matchLink(section.Title, items),
		})
	}

	return briefing_port.GeneratedBriefing{TopNews: topNews, Markdown: response}
}

// AnalyzeItem annotates a single item with a summary and insight. Failed
// calls are retried with exponential backoff; once retries are exhausted the
// item is returned with error details attached.
func (g *BriefingGateway) AnalyzeItem(ctx context.Context, item domain.NewsItem) domain.NewsItem {
	var lastErr error

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		response, err := g.generator.Generate(ctx, analysisPrompt(item), analysisTemperature, analysisMaxTokens)
		if err == nil {
			summary, insight := markdown_parser.ParseSummaryInsight(response)
			item.Summary = summary
			item.Insights = insight
			return item
		}

		lastErr = err
		if attempt < g.maxRetries {
			wait := g.backoff(attempt)
			logger.Logger.Warn("item analysis failed, retrying",
				"title", item.Title, "attempt", attempt, "max_attempts", g.maxRetries, "wait", wait)
			g.sleep(wait)
		}
	}

	logger.Logger.Error("item analysis failed after retries", "title", item.Title, "error", lastErr)
	item.Summary = "Analysis failed for this item."
	item.Insights = ""
	item.Error = lastErr.Error()
	item.ErrorType = "summarization"
	return item
}

// AnalyzeBatch analyzes items one by one with a fixed inter-call delay to
// respect external rate limits, reporting progress after each item.
func (g *BriefingGateway) AnalyzeBatch(ctx context.Context, items []domain.NewsItem, progress func(done, total int)) []domain.NewsItem {
	analyzed := make([]domain.NewsItem, 0, len(items))

	for i, item := range items {
		analyzed = append(analyzed, g.AnalyzeItem(ctx, item))
		if progress != nil {
			progress(i+1, len(items))
		}
		if i < len(items)-1 {
			g.sleep(g.itemDelay)
		}
	}

	return analyzed
}

func (g *BriefingGateway) backoff(attempt int) time.Duration {
	wait := g.backoffBase << (attempt - 1)
	if wait > g.backoffCap {
		wait = g.backoffCap
	}
	return wait
}

func briefingPrompt(candidates []domain.NewsItem) string {
	var sb strings.Builder
	sb.WriteString("Below is a numbered list of today's collected tech news items.\n\n")

	for i, item := range candidates {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, item.Title)
		if desc := truncate(item.Description, descriptionLimit); desc != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", desc)
		}
		fmt.Fprintf(&sb, "   Link: %s\n", item.Link)
	}

	sb.WriteString(`
Select exactly the 3 items you judge most novel and impactful and write a
markdown briefing with exactly this structure for k = 1, 2, 3:

## Top k: <title of the selected item>
**Summary:** <2-3 sentence summary>
**Insights:** <1-2 sentences on why it matters for tech trends>
**Related tech:** <hashtag tokens such as #AI #Cloud>

Respond with the markdown document only.
`)

	return sb.String()
}

func analysisPrompt(item domain.NewsItem) string {
	return fmt.Sprintf(`Analyze the following tech news item from a technology-trend perspective.

Title: %s
Content: %s

Respond in exactly this format:

Summary:
- <first key point>
- <second key point>
- <third key point>

Insight:
<1-3 sentences of trend insight>
`, item.Title, truncate(item.Description, 500))
}

// fallbackMarkdown is the degraded briefing used when the model call fails:
// the item count plus a flat list of the first titles.
func fallbackMarkdown(items []domain.NewsItem) string {
	var sb strings.Builder
	sb.WriteString("# Daily Tech Briefing\n\n")
	fmt.Fprintf(&sb, "Collected %d news items today.\n\n## Headlines\n", len(items))

	limit := len(items)
	if limit > fallbackTitles {
		limit = fallbackTitles
	}
	for _, item := range items[:limit] {
		fmt.Fprintf(&sb, "- %s\n", item.Title)
	}

	return sb.String()
}

// matchLink re-attaches the source link to a parsed section title by
// substring containment in either direction. The first matching item in list
// order wins; ambiguity is resolved no further than that.
func matchLink(title string, items []domain.NewsItem) string {
	needle := strings.ToLower(strings.TrimSpace(title))
	if needle == "" {
		return ""
	}

	for _, item := range items {
		haystack := strings.ToLower(strings.TrimSpace(item.Title))
		if haystack == "" {
			continue
		}
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return item.Link
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
