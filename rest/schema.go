package rest

import "newsroom/domain"

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	ExpiresAt string `json:"expires_at"`
}

type AddFeedRequest struct {
	Name    string `json:"name" validate:"required"`
	URL     string `json:"url" validate:"required,url"`
	Enabled *bool  `json:"enabled"`
}

type TestFeedRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type FeedsResponse struct {
	Feeds []domain.FeedConfig `json:"feeds"`
}

type DatesResponse struct {
	Dates []string `json:"dates"`
}

type VisitResponse struct {
	Counted bool `json:"counted"`
}

// CollectStep is one pipeline stage of a collection run, echoed back so the
// admin panel can show what happened.
type CollectStep struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

type CollectResponse struct {
	Success  bool                   `json:"success"`
	Steps    []CollectStep          `json:"steps"`
	Briefing *domain.BriefingResult `json:"briefing,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
