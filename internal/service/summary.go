package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/riyazmd/unified-event-analytics/internal/cache"
	"github.com/riyazmd/unified-event-analytics/internal/models"
)

// DefaultSummaryTTL bounds the staleness window of cached summaries.
const DefaultSummaryTTL = 60 * time.Second

// dateLayout is the calendar-date format accepted by the summary endpoint.
const dateLayout = "2006-01-02"

// EventCounter is the slice of the event store the aggregation path needs.
// The [from, to) window is half-open.
type EventCounter interface {
	CountByTypeInRange(ctx context.Context, eventType string, from, to time.Time) (total int64, uniqueUsers int64, err error)
}

// Summarizer computes event summaries cache-aside: the cache is consulted
// first, the event store is the source of truth on a miss, and the fresh
// result is cached with a fixed TTL.
type Summarizer struct {
	events EventCounter
	cache  cache.Cache
	ttl    time.Duration
}

func NewSummarizer(events EventCounter, c cache.Cache, ttl time.Duration) *Summarizer {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &Summarizer{events: events, cache: c, ttl: ttl}
}

// Summary returns (totalOccurrences, uniqueUsers) for eventType between
// startDate and endDate, both inclusive calendar dates.
//
// Errors: ErrInvalidRange for bad dates, store.ErrNotFound when the event
// type has never been recorded, storage errors otherwise.
func (s *Summarizer) Summary(ctx context.Context, eventType, startDate, endDate string) (models.Summary, error) {
	var out models.Summary

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return out, ErrInvalidRange
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return out, ErrInvalidRange
	}
	if start.After(end) {
		return out, ErrInvalidRange
	}

	cacheKey := fmt.Sprintf("summary:%s:%s:%s", eventType, startDate, endDate)

	if b, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		if jsonErr := json.Unmarshal(b, &out); jsonErr == nil {
			return out, nil
		}
		// Undecodable entry: fall through and recompute.
	} else if err != nil {
		log.Printf("cache get failed for %s: %v", cacheKey, err)
	}

	// The end date is inclusive, so the query window extends to the start of
	// the following day.
	total, unique, err := s.events.CountByTypeInRange(ctx, eventType, start, end.Add(24*time.Hour))
	if err != nil {
		return out, err
	}

	out = models.Summary{
		Event:            eventType,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalOccurrences: total,
		UniqueUsers:      unique,
	}

	if b, err := json.Marshal(out); err == nil {
		if err := s.cache.Set(ctx, cacheKey, b, s.ttl); err != nil {
			log.Printf("cache set failed for %s: %v", cacheKey, err)
		}
	}

	return out, nil
}
