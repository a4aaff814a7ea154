package di

import (
	"newsroom/config"
	"newsroom/driver/gemini_client"
	"newsroom/driver/github_store"
	"newsroom/gateway/briefing_gateway"
	"newsroom/gateway/document_store_gateway"
	"newsroom/gateway/fetch_feed_gateway"
	"newsroom/middleware"
	"newsroom/usecase/briefing_reader_usecase"
	"newsroom/usecase/collect_news_usecase"
	"newsroom/usecase/feed_registry_usecase"
	"newsroom/usecase/visitor_stats_usecase"
	"newsroom/utils/rate_limiter"
)

type ApplicationComponents struct {
	CollectNewsUsecase    *collect_news_usecase.CollectNewsUsecase
	FeedRegistryUsecase   *feed_registry_usecase.FeedRegistryUsecase
	BriefingReaderUsecase *briefing_reader_usecase.BriefingReaderUsecase
	VisitorStatsUsecase   *visitor_stats_usecase.VisitorStatsUsecase
	AdminAuth             *middleware.AdminAuthMiddleware
}

func NewApplicationComponents(cfg *config.Config) *ApplicationComponents {
	githubClient := github_store.NewClient(cfg.GitHub)
	geminiClient := gemini_client.NewClient(cfg.Gemini)

	store := document_store_gateway.NewDocumentStoreGateway(githubClient)
	limiter := rate_limiter.NewHostRateLimiter(cfg.Collect.HostFetchInterval)
	fetcher := fetch_feed_gateway.NewFeedGateway(limiter, cfg.HTTP.ClientTimeout)
	briefer := briefing_gateway.NewBriefingGateway(geminiClient, cfg.Gemini, cfg.Collect)

	return &ApplicationComponents{
		CollectNewsUsecase:    collect_news_usecase.NewCollectNewsUsecase(fetcher, briefer, store, cfg.Collect),
		FeedRegistryUsecase:   feed_registry_usecase.NewFeedRegistryUsecase(store, fetcher),
		BriefingReaderUsecase: briefing_reader_usecase.NewBriefingReaderUsecase(store),
		VisitorStatsUsecase:   visitor_stats_usecase.NewVisitorStatsUsecase(store),
		AdminAuth:             middleware.NewAdminAuthMiddleware(cfg.Admin),
	}
}
