// Package visitor_stats_usecase maintains the visitor counters. Tracking is
// best effort: a failed stats write must never break the page view that
// triggered it.
package visitor_stats_usecase

import (
	"context"
	"encoding/json"
	"time"

	"newsroom/domain"
	"newsroom/port/document_store_port"
	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

type VisitorStatsUsecase struct {
	store document_store_port.DocumentStorePort

	// now is swapped out in tests.
	now func() time.Time
}

func NewVisitorStatsUsecase(store document_store_port.DocumentStorePort) *VisitorStatsUsecase {
	return &VisitorStatsUsecase{store: store, now: time.Now}
}

// TrackVisit increments today's counter and the total, unless this session
// was already counted. Returns whether the visit was counted. Store failures
// are logged and swallowed.
func (u *VisitorStatsUsecase) TrackVisit(ctx context.Context, sessionSeen bool) bool {
	if sessionSeen {
		return false
	}

	stats, err := u.load(ctx)
	if err != nil {
		logger.Logger.Warn("visit not counted, stats unreadable", "error", err)
		return false
	}

	today := u.now().Format(domain.DateFormat)
	stats.DailyVisitors[today]++
	stats.TotalVisitors++
	stats.LastUpdated = u.now()

	if err := u.store.WriteJSON(ctx, domain.StatsDocumentPath, stats, "Record visit"); err != nil {
		logger.Logger.Warn("visit not counted, stats write failed", "error", err)
		return false
	}
	return true
}

// GetStats returns the current counters for the admin panel.
func (u *VisitorStatsUsecase) GetStats(ctx context.Context) (*domain.VisitorStats, error) {
	return u.load(ctx)
}

func (u *VisitorStatsUsecase) load(ctx context.Context) (*domain.VisitorStats, error) {
	raw, err := u.store.ReadJSON(ctx, domain.StatsDocumentPath)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.NewVisitorStats(), nil
	}

	var stats domain.VisitorStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, errors.StorageError("stats document is not valid JSON", err,
			map[string]interface{}{"path": domain.StatsDocumentPath})
	}
	if stats.DailyVisitors == nil {
		stats.DailyVisitors = make(map[string]int)
	}
	return &stats, nil
}
