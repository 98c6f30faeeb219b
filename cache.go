package stationboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/luxtransit/stationboard/feed"
)

const DefaultFeedMaxAge = 6 * time.Hour

// Fetcher retrieves a raw feed archive. fetch.Acquirer implements
// this against the open-data portal; tests substitute fakes.
type Fetcher interface {
	Archive(ctx context.Context) ([]byte, error)
}

// FeedCache holds one decoded Feed in memory, refreshing it when it
// grows older than MaxAge. Concurrent callers that observe a stale or
// absent feed join a single in-flight refresh instead of each
// triggering their own download.
//
// A failed refresh does not evict a previously cached feed: stale
// data beats no data. With nothing cached, the failure propagates.
type FeedCache struct {
	MaxAge  time.Duration
	TimeNow func() time.Time

	fetcher Fetcher
	logger  *slog.Logger

	group     singleflight.Group
	mu        sync.Mutex
	feed      *feed.Feed
	fetchedAt time.Time
}

func NewFeedCache(fetcher Fetcher, logger *slog.Logger) *FeedCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedCache{
		MaxAge:  DefaultFeedMaxAge,
		TimeNow: time.Now,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Feed returns the cached feed, refreshing it first if stale. The
// acquisition path is the only part of the engine with unbounded
// external latency; callers bound it through ctx.
func (c *FeedCache) Feed(ctx context.Context) (*feed.Feed, error) {
	if f := c.fresh(); f != nil {
		return f, nil
	}

	v, err, _ := c.group.Do("feed", func() (interface{}, error) {
		return c.refresh(ctx)
	})
	if err != nil {
		c.mu.Lock()
		f := c.feed
		c.mu.Unlock()
		if f != nil {
			c.logger.Warn("feed refresh failed, serving stale feed", "error", err)
			return f, nil
		}
		return nil, err
	}

	return v.(*feed.Feed), nil
}

func (c *FeedCache) fresh() *feed.Feed {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feed != nil && c.TimeNow().Sub(c.fetchedAt) < c.MaxAge {
		return c.feed
	}
	return nil
}

func (c *FeedCache) refresh(ctx context.Context) (*feed.Feed, error) {
	// A caller that joined the flight late may find the cache
	// already refreshed.
	if f := c.fresh(); f != nil {
		return f, nil
	}

	buf, err := c.fetcher.Archive(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching archive: %w", err)
	}

	f, err := feed.Decode(buf)
	if err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	c.mu.Lock()
	c.feed = f
	c.fetchedAt = c.TimeNow()
	c.mu.Unlock()

	c.logger.Info("feed refreshed",
		"routes", len(f.Routes),
		"trips", len(f.Trips),
		"stop_times", len(f.StopTimes),
	)

	return f, nil
}
