package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riyazmd/unified-event-analytics/internal/cache"
	"github.com/riyazmd/unified-event-analytics/internal/models"
	"github.com/riyazmd/unified-event-analytics/internal/store"
)

type fakeCounter struct {
	calls    int
	total    int64
	unique   int64
	err      error
	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeCounter) CountByTypeInRange(_ context.Context, _ string, from, to time.Time) (int64, int64, error) {
	f.calls++
	f.lastFrom, f.lastTo = from, to
	return f.total, f.unique, f.err
}

func TestSummary_InvalidRanges(t *testing.T) {
	sum := NewSummarizer(&fakeCounter{}, cache.NewMemory(), 0)
	ctx := context.Background()

	cases := []struct{ start, end string }{
		{"not-a-date", "2025-03-10"},
		{"2025-03-01", "03/10/2025"},
		{"2025-03-10", "2025-03-01"}, // inverted
	}
	for _, tc := range cases {
		if _, err := sum.Summary(ctx, "page_view", tc.start, tc.end); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("(%s,%s): expected ErrInvalidRange, got %v", tc.start, tc.end, err)
		}
	}
}

func TestSummary_ComputesAndCaches(t *testing.T) {
	fc := &fakeCounter{total: 7, unique: 3}
	sum := NewSummarizer(fc, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	want := models.Summary{
		Event:            "page_view",
		StartDate:        "2025-03-01",
		EndDate:          "2025-03-10",
		TotalOccurrences: 7,
		UniqueUsers:      3,
	}

	got, err := sum.Summary(ctx, "page_view", "2025-03-01", "2025-03-10")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if fc.calls != 1 {
		t.Fatalf("expected 1 store query, got %d", fc.calls)
	}

	// End date is inclusive: the window must reach the start of the next day.
	wantFrom := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	if !fc.lastFrom.Equal(wantFrom) || !fc.lastTo.Equal(wantTo) {
		t.Fatalf("window = [%v, %v), want [%v, %v)", fc.lastFrom, fc.lastTo, wantFrom, wantTo)
	}

	// Second identical call: cache hit, same result, no new store query.
	got2, err := sum.Summary(ctx, "page_view", "2025-03-01", "2025-03-10")
	if err != nil {
		t.Fatalf("second Summary: %v", err)
	}
	if got2 != got {
		t.Fatalf("cached result differs: %+v vs %+v", got2, got)
	}
	if fc.calls != 1 {
		t.Fatalf("second call hit the store (%d queries)", fc.calls)
	}
}

func TestSummary_TTLExpiryRequeriesStore(t *testing.T) {
	fc := &fakeCounter{total: 1, unique: 1}
	sum := NewSummarizer(fc, cache.NewMemory(), 15*time.Millisecond)
	ctx := context.Background()

	if _, err := sum.Summary(ctx, "page_view", "2025-03-01", "2025-03-10"); err != nil {
		t.Fatalf("Summary: %v", err)
	}
	time.Sleep(25 * time.Millisecond)

	if _, err := sum.Summary(ctx, "page_view", "2025-03-01", "2025-03-10"); err != nil {
		t.Fatalf("Summary after TTL: %v", err)
	}
	if fc.calls != 2 {
		t.Fatalf("expected a fresh store query after TTL, got %d calls", fc.calls)
	}
}

func TestSummary_UnknownTypeNotFoundAndNotCached(t *testing.T) {
	fc := &fakeCounter{err: store.ErrNotFound}
	sum := NewSummarizer(fc, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	if _, err := sum.Summary(ctx, "ghost_event", "2025-03-01", "2025-03-10"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// Failures are never cached; the store is consulted again.
	_, _ = sum.Summary(ctx, "ghost_event", "2025-03-01", "2025-03-10")
	if fc.calls != 2 {
		t.Fatalf("expected 2 store queries, got %d", fc.calls)
	}
}

func TestSummary_DistinctParamsDistinctCacheKeys(t *testing.T) {
	fc := &fakeCounter{total: 1, unique: 1}
	sum := NewSummarizer(fc, cache.NewMemory(), time.Minute)
	ctx := context.Background()

	_, _ = sum.Summary(ctx, "page_view", "2025-03-01", "2025-03-10")
	_, _ = sum.Summary(ctx, "click", "2025-03-01", "2025-03-10")
	_, _ = sum.Summary(ctx, "page_view", "2025-03-02", "2025-03-10")

	if fc.calls != 3 {
		t.Fatalf("expected 3 store queries for 3 distinct keys, got %d", fc.calls)
	}
}
