package domain

// Paths of the JSON documents kept in the backing store.
const (
	NewsDocumentPath  = "news_data.json"
	FeedsDocumentPath = "feeds.json"
	StatsDocumentPath = "stats.json"
)
