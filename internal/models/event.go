package models

// CollectRequest is the POST /api/events/collect payload.
// event, url, device, ipAddress are required; the rest is optional context.
// timestamp, when present, must be RFC3339; otherwise ingestion time is used.
type CollectRequest struct {
	Event     string                 `json:"event"`
	URL       string                 `json:"url"`
	Referrer  string                 `json:"referrer,omitempty"`
	Device    string                 `json:"device"`
	IPAddress string                 `json:"ipAddress"`
	UserID    string                 `json:"userId,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// CollectResponse acknowledges a stored event.
type CollectResponse struct {
	Message string `json:"message"`
	EventID string `json:"event_id"`
}
