package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/riyazmd/unified-event-analytics/internal/models"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

// EventAppender is the slice of the event store the ingestion path needs.
type EventAppender interface {
	AppendEvent(ctx context.Context, ev store.Event) (string, error)
}

// Ingestor validates tracking events and appends them to the event store.
type Ingestor struct {
	events EventAppender
}

func NewIngestor(events EventAppender) *Ingestor {
	return &Ingestor{events: events}
}

// Collect validates the payload fully before touching the store, so a
// rejected event leaves no partial write behind. Returns the stored event ID.
//
// Timestamp policy: a parseable RFC3339 client timestamp is kept; anything
// else (absent or malformed) is replaced with the ingestion instant.
func (i *Ingestor) Collect(ctx context.Context, appID string, req models.CollectRequest) (string, error) {
	var missing []string
	if req.Event == "" {
		missing = append(missing, "event")
	}
	if req.URL == "" {
		missing = append(missing, "url")
	}
	if req.Device == "" {
		missing = append(missing, "device")
	}
	if req.IPAddress == "" {
		missing = append(missing, "ipAddress")
	}
	if len(missing) > 0 {
		return "", &ValidationError{Missing: missing}
	}

	ts := time.Now().UTC()
	if req.Timestamp != "" {
		if parsed, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			ts = parsed.UTC()
		}
	}

	ev := store.Event{
		ID:        uuid.New().String(),
		AppID:     appID,
		EventType: req.Event,
		URL:       req.URL,
		Referrer:  req.Referrer,
		Device:    req.Device,
		IPAddress: req.IPAddress,
		UserID:    req.UserID,
		Timestamp: ts,
		Metadata:  req.Metadata,
	}

	return i.events.AppendEvent(ctx, ev)
}
