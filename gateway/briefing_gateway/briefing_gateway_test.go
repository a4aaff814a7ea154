package briefing_gateway

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/config"
	"newsroom/domain"
	"newsroom/utils/logger"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newGateway(t *testing.T, generator TextGenerator) (*BriefingGateway, *[]time.Duration) {
	t.Helper()
	logger.InitLogger()

	g := NewBriefingGateway(generator,
		config.GeminiConfig{
			MaxRetries:  3,
			BackoffBase: 2 * time.Second,
			BackoffCap:  10 * time.Second,
			ItemDelay:   500 * time.Millisecond,
		},
		config.CollectConfig{CandidateLimit: 30},
	)

	var slept []time.Duration
	g.sleep = func(d time.Duration) { slept = append(slept, d) }
	return g, &slept
}

func newsItems(n int) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.NewsItem{
			Title:       fmt.Sprintf("Story %02d", i+1),
			Link:        fmt.Sprintf("https://example.com/%d", i+1),
			Description: fmt.Sprintf("description %d", i+1),
			Source:      "Test Feed",
		})
	}
	return items
}

func TestGenerateBriefing_EmptyInput(t *testing.T) {
	generator := &stubGenerator{}
	g, _ := newGateway(t, generator)

	result := g.GenerateBriefing(context.Background(), nil)

	assert.Empty(t, result.TopNews)
	assert.Contains(t, result.Markdown, "No news collected today")
	assert.Zero(t, generator.calls, "empty input must not call the API")
}

func TestGenerateBriefing_ParsesTopSectionsAndAttachesLinks(t *testing.T) {
	items := []domain.NewsItem{
		{Title: "Go 1.30 Released", Link: "https://example.com/go"},
		{Title: "Quantum Chip Benchmark Sets Record", Link: "https://example.com/quantum"},
		{Title: "Browser Engine Rewrite", Link: "https://example.com/browser"},
	}

	generator := &stubGenerator{response: `## Top 1: Go 1.30 Released
**Summary:** Faster linker shipped.
**Insights:** Toolchain speed still matters.
**Related tech:** #Go #Toolchain

## Top 2: Quantum Chip Benchmark
**Summary:** Record error correction.
**Insights:** Competition moved to error rates.
**Related tech:** #Quantum

## Top 3: Something Never Collected
**Summary:** Hallucinated pick.
**Insights:** No source item.
**Related tech:** #Mystery
`}

	g, _ := newGateway(t, generator)
	result := g.GenerateBriefing(context.Background(), items)

	require.Len(t, result.TopNews, 3)

	assert.Equal(t, "Go 1.30 Released", result.TopNews[0].Title)
	assert.Equal(t, "Faster linker shipped.", result.TopNews[0].Summary)
	assert.Equal(t, []string{"Go", "Toolchain"}, result.TopNews[0].RelatedTech)
	assert.Equal(t, "https://example.com/go", result.TopNews[0].Link)

	// Section title is a substring of the original item title.
	assert.Equal(t, "https://example.com/quantum", result.TopNews[1].Link)

	// No original item matches; link degrades to empty.
	assert.Empty(t, result.TopNews[2].Link)

	assert.Equal(t, generator.response, result.Markdown)
}

func TestGenerateBriefing_FirstMatchWinsOnAmbiguousTitles(t *testing.T) {
	items := []domain.NewsItem{
		{Title: "AI News Roundup", Link: "https://example.com/first"},
		{Title: "AI News Roundup Special", Link: "https://example.com/second"},
	}

	generator := &stubGenerator{response: `## Top 1: AI News Roundup
**Summary:** s
**Insights:** i
**Related tech:** #AI
`}

	g, _ := newGateway(t, generator)
	result := g.GenerateBriefing(context.Background(), items)

	require.Len(t, result.TopNews, 1)
	assert.Equal(t, "https://example.com/first", result.TopNews[0].Link)
}

func TestGenerateBriefing_APIFailureFallsBack(t *testing.T) {
	items := newsItems(12)
	generator := &stubGenerator{err: fmt.Errorf("model unavailable")}

	g, _ := newGateway(t, generator)
	result := g.GenerateBriefing(context.Background(), items)

	assert.Empty(t, result.TopNews)
	assert.Contains(t, result.Markdown, "Collected 12 news items")
	for i := 1; i <= 10; i++ {
		assert.Contains(t, result.Markdown, fmt.Sprintf("Story %02d", i))
	}
	assert.NotContains(t, result.Markdown, "Story 11")
}

func TestGenerateBriefing_CapsCandidates(t *testing.T) {
	items := newsItems(35)
	generator := &stubGenerator{response: "free text"}

	g, _ := newGateway(t, generator)
	g.GenerateBriefing(context.Background(), items)

	require.Len(t, generator.prompts, 1)
	assert.Contains(t, generator.prompts[0], "30. Story 30")
	assert.NotContains(t, generator.prompts[0], "31. Story 31")
}

func TestGenerateBriefing_UnparseableResponseIsPartialNotFatal(t *testing.T) {
	items := newsItems(3)
	generator := &stubGenerator{response: "the model ignored the requested format entirely"}

	g, _ := newGateway(t, generator)
	result := g.GenerateBriefing(context.Background(), items)

	assert.Empty(t, result.TopNews)
	assert.Equal(t, generator.response, result.Markdown)
}

func TestAnalyzeItem_Success(t *testing.T) {
	generator := &stubGenerator{response: `Summary:
- point one
- point two

Insight:
Consolidation ahead.
`}

	g, slept := newGateway(t, generator)
	item := g.AnalyzeItem(context.Background(), domain.NewsItem{Title: "t", Description: "d"})

	assert.Equal(t, "point one\npoint two", item.Summary)
	assert.Equal(t, "Consolidation ahead.", item.Insights)
	assert.Empty(t, item.Error)
	assert.Empty(t, *slept)
}

func TestAnalyzeItem_RetriesWithBackoffThenAnnotatesError(t *testing.T) {
	generator := &stubGenerator{err: fmt.Errorf("timeout")}

	g, slept := newGateway(t, generator)
	item := g.AnalyzeItem(context.Background(), domain.NewsItem{Title: "t"})

	assert.Equal(t, 3, generator.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *slept)

	assert.Equal(t, "Analysis failed for this item.", item.Summary)
	assert.Contains(t, item.Error, "timeout")
	assert.Equal(t, "summarization", item.ErrorType)
}

func TestBackoffIsCapped(t *testing.T) {
	g, _ := newGateway(t, &stubGenerator{})

	assert.Equal(t, 2*time.Second, g.backoff(1))
	assert.Equal(t, 4*time.Second, g.backoff(2))
	assert.Equal(t, 8*time.Second, g.backoff(3))
	assert.Equal(t, 10*time.Second, g.backoff(4))
	assert.Equal(t, 10*time.Second, g.backoff(5))
}

func TestAnalyzeBatch_PacingAndProgress(t *testing.T) {
	generator := &stubGenerator{response: "Summary:\n- p\n\nInsight:\nok"}
	g, slept := newGateway(t, generator)

	var reports [][2]int
	analyzed := g.AnalyzeBatch(context.Background(), newsItems(3), func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})

	require.Len(t, analyzed, 3)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, reports)
	// Pacing delay between items, not after the last one.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, *slept)
}
