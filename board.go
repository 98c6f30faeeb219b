package stationboard

import (
	"context"
	"log/slog"
	"time"
)

// Board answers arrival queries for one stop: the rest of a day, a
// full day, or the next vehicle of a category. Every query refreshes
// the feed through the cache as needed.
//
// All query logic is pure table scanning over the immutable feed
// snapshot, so a Board is safe for concurrent use.
type Board struct {
	StopID     string
	Categories map[string]bool
	Location   *time.Location
	TimeNow    func() time.Time

	cache  *FeedCache
	logger *slog.Logger
}

func NewBoard(cache *FeedCache, stopID string, categories []string, loc *time.Location, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		StopID:     stopID,
		Categories: CategorySet(categories),
		Location:   loc,
		TimeNow:    time.Now,
		cache:      cache,
		logger:     logger,
	}
}

// ArrivalsFrom returns arrivals on date at or after the given
// instant.
func (b *Board) ArrivalsFrom(ctx context.Context, date time.Time, after time.Time) ([]Arrival, error) {
	arrivals, err := b.arrivalsOn(ctx, date)
	if err != nil {
		return nil, err
	}

	kept := []Arrival{}
	for _, a := range arrivals {
		if !a.Time.Before(after) {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

// ArrivalsForFullDay returns all arrivals on the given service date,
// including post-midnight arrivals the date's timetable rolls into
// the next calendar day.
func (b *Board) ArrivalsForFullDay(ctx context.Context, date time.Time) ([]Arrival, error) {
	return b.arrivalsOn(ctx, date)
}

// NextOfCategory scans date, date+1, ... for up to searchWindowDays
// and returns the earliest arrival of the category strictly after
// now, or nil if none is scheduled within the window. A date whose
// feed lookup fails contributes zero arrivals instead of aborting the
// scan.
func (b *Board) NextOfCategory(ctx context.Context, category string, searchWindowDays int) (*Arrival, error) {
	now := b.TimeNow().In(b.Location)
	want := normalizeCategory(category)

	for offset := 0; offset < searchWindowDays; offset++ {
		date := now.AddDate(0, 0, offset)

		arrivals, err := b.arrivalsOn(ctx, date)
		if err != nil {
			b.logger.Warn("skipping date after lookup failure",
				"date", date.Format("20060102"), "error", err)
			continue
		}

		// arrivals are sorted, so the first match is the
		// earliest.
		for _, a := range arrivals {
			if a.Category == want && a.Time.After(now) {
				a := a
				return &a, nil
			}
		}
	}

	return nil, nil
}

func (b *Board) arrivalsOn(ctx context.Context, date time.Time) ([]Arrival, error) {
	f, err := b.cache.Feed(ctx)
	if err != nil {
		return nil, err
	}

	services := ActiveServices(f, date)
	if len(services) == 0 {
		b.logger.Warn("no active services", "date", date.Format("20060102"))
		return []Arrival{}, nil
	}

	trips := ActiveTrips(f, services, b.Categories)
	return ExtractArrivals(f, trips, b.StopID, date, b.Location), nil
}
