// Package collect_news_usecase runs the daily collection pipeline: fetch the
// registered feeds, dedupe, analyze, generate the briefing, and persist the
// result under today's date.
package collect_news_usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"newsroom/config"
	"newsroom/domain"
	"newsroom/port/briefing_port"
	"newsroom/port/document_store_port"
	"newsroom/port/fetch_feed_port"
	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

// totalSteps is the number of pipeline stages reported through Progress.
const totalSteps = 6

// Progress receives one callback per completed pipeline stage.
type Progress func(step, total int, message string)

type CollectNewsUsecase struct {
	fetcher fetch_feed_port.FetchFeedPort
	briefer briefing_port.BriefingPort
	store   document_store_port.DocumentStorePort
	cfg     config.CollectConfig

	// now is swapped out in tests.
	now func() time.Time
}

func NewCollectNewsUsecase(
	fetcher fetch_feed_port.FetchFeedPort,
	briefer briefing_port.BriefingPort,
	store document_store_port.DocumentStorePort,
	cfg config.CollectConfig,
) *CollectNewsUsecase {
	return &CollectNewsUsecase{
		fetcher: fetcher,
		briefer: briefer,
		store:   store,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Run executes the full pipeline and returns the persisted briefing. A run
// with zero collected items still produces and persists a briefing so the
// day has an entry. Progress may be nil.
func (u *CollectNewsUsecase) Run(ctx context.Context, progress Progress) (domain.BriefingResult, error) {
	report := func(step int, message string) {
		logger.Logger.Info("collection pipeline", "step", step, "total", totalSteps, "message", message)
		if progress != nil {
			progress(step, totalSteps, message)
		}
	}

	feeds, err := u.loadFeeds(ctx)
	if err != nil {
		return domain.BriefingResult{}, err
	}
	report(1, fmt.Sprintf("Loaded %d feeds", len(feeds)))

	items := u.CollectFromFeeds(ctx, feeds)
	report(2, fmt.Sprintf("Collected %d items", len(items)))

	items = Dedupe(items)
	report(3, fmt.Sprintf("%d items after dedupe", len(items)))

	items = u.briefer.AnalyzeBatch(ctx, items, func(done, total int) {
		logger.Logger.Debug("item analysis progress", "done", done, "total", total)
	})
	report(4, fmt.Sprintf("Analyzed %d items", len(items)))

	generated := u.briefer.GenerateBriefing(ctx, items)
	report(5, "Generated briefing")

	today := u.now()
	result := domain.BriefingResult{
		Date:        today.Format(domain.DateFormat),
		TopNews:     generated.TopNews,
		Markdown:    generated.Markdown,
		AllNews:     items,
		CollectedAt: today,
	}

	if err := u.persist(ctx, result, today); err != nil {
		return domain.BriefingResult{}, err
	}
	report(6, fmt.Sprintf("Persisted briefing for %s", result.Date))

	return result, nil
}

// CollectFromFeeds fetches every enabled feed in registry order. A feed that
// fails contributes nothing; the rest are unaffected.
func (u *CollectNewsUsecase) CollectFromFeeds(ctx context.Context, feeds []domain.FeedConfig) []domain.NewsItem {
	var items []domain.NewsItem

	for _, feed := range feeds {
		if !feed.Enabled {
			logger.Logger.Debug("skipping disabled feed", "name", feed.Name)
			continue
		}
		fetched := u.fetcher.FetchFeed(ctx, feed.URL, u.cfg.MaxAgeHours)
		logger.Logger.Info("feed fetched", "name", feed.Name, "items", len(fetched))
		items = append(items, fetched...)
	}

	return items
}

// Dedupe drops items whose trimmed link was already seen, keeping the first
// occurrence. Items without a link are always kept.
func Dedupe(items []domain.NewsItem) []domain.NewsItem {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]domain.NewsItem, 0, len(items))

	for _, item := range items {
		link := strings.TrimSpace(item.Link)
		if link != "" {
			if _, dup := seen[link]; dup {
				continue
			}
			seen[link] = struct{}{}
		}
		deduped = append(deduped, item)
	}

	return deduped
}

// PruneOldEntries removes briefings dated more than daysToKeep days before
// today; the day exactly daysToKeep old survives. Comparison is by date
// string so the time of day of the run cannot shift the boundary. Keys that
// do not parse as dates are left alone. Returns the number of entries
// removed.
func PruneOldEntries(doc domain.NewsDocument, today time.Time, daysToKeep int) int {
	cutoff := today.AddDate(0, 0, -daysToKeep).Format(domain.DateFormat)

	removed := 0
	for date := range doc {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			continue
		}
		if date < cutoff {
			delete(doc, date)
			removed++
		}
	}

	return removed
}

func (u *CollectNewsUsecase) loadFeeds(ctx context.Context) ([]domain.FeedConfig, error) {
	raw, err := u.store.ReadJSON(ctx, domain.FeedsDocumentPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.DefaultFeeds(), nil
	}

	var doc domain.FeedsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.StorageError("feeds document is not valid JSON", err,
			map[string]interface{}{"path": domain.FeedsDocumentPath})
	}
	return doc.Feeds, nil
}

func (u *CollectNewsUsecase) persist(ctx context.Context, result domain.BriefingResult, today time.Time) error {
	raw, err := u.store.ReadJSON(ctx, domain.NewsDocumentPath)
	if err != nil {
		return err
	}

	doc := domain.NewsDocument{}
	if raw != nil {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return errors.StorageError("news document is not valid JSON", err,
				map[string]interface{}{"path": domain.NewsDocumentPath})
		}
	}

	doc[result.Date] = result
	if removed := PruneOldEntries(doc, today, u.cfg.DaysToKeep); removed > 0 {
		logger.Logger.Info("pruned old briefings", "removed", removed, "days_kept", u.cfg.DaysToKeep)
	}

	message := fmt.Sprintf("Collect news for %s (%d items)", result.Date, len(result.AllNews))
	return u.store.WriteJSON(ctx, domain.NewsDocumentPath, doc, message)
}
