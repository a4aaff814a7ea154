package job

import (
	"context"
	"time"

	"newsroom/usecase/collect_news_usecase"
	"newsroom/utils/logger"
)

// collectTimeout bounds one scheduled pipeline run including all model calls
// and store retries.
const collectTimeout = 30 * time.Minute

// NewCollectJob wraps the collection pipeline as a scheduled job.
func NewCollectJob(usecase *collect_news_usecase.CollectNewsUsecase, interval time.Duration) Job {
	return Job{
		Name:     "collect-news",
		Interval: interval,
		Timeout:  collectTimeout,
		Fn: func(ctx context.Context) error {
			result, err := usecase.Run(ctx, nil)
			if err != nil {
				return err
			}
			logger.Logger.Info("scheduled collection finished",
				"date", result.Date, "items", len(result.AllNews), "top_news", len(result.TopNews))
			return nil
		},
	}
}
