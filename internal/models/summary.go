package models

// Summary is the aggregate result for an event type over a date range.
// It is also the value serialized into the cache layer.
type Summary struct {
	Event            string `json:"event"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	TotalOccurrences int64  `json:"totalOccurrences"`
	UniqueUsers      int64  `json:"uniqueUsers"`
}

// UserStats is returned by GET /api/analytics/user-stats.
type UserStats struct {
	UserID      string `json:"userId"`
	TotalEvents int64  `json:"totalEvents"`
}
