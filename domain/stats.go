package domain

import "time"

// VisitorStats tracks page visits. Counts only ever grow; a session is
// counted at most once.
type VisitorStats struct {
	DailyVisitors map[string]int `json:"daily_visitors"`
	TotalVisitors int            `json:"total_visitors"`
	LastUpdated   time.Time      `json:"last_updated"`
}

// NewVisitorStats returns an empty stats document.
func NewVisitorStats() *VisitorStats {
	return &VisitorStats{DailyVisitors: make(map[string]int)}
}
