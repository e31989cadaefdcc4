package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"trip-planner-service/internal/domain"
)

// routeCacheTTL bounds staleness of cached routes; road conditions change,
// geometry does not, so an hour is a comfortable window.
const routeCacheTTL = time.Hour

// RouteCache is a Redis-backed cache of computed route segments keyed by the
// coordinate pair. Cache failures are logged and treated as misses — the
// cache is an optimization, never a dependency.
type RouteCache struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewRouteCache wraps the given Redis client. log may be nil.
func NewRouteCache(rdb *redis.Client, log *slog.Logger) *RouteCache {
	if log == nil {
		log = slog.Default()
	}
	return &RouteCache{rdb: rdb, log: log}
}

func routeKey(origin, dest domain.Location) string {
	return fmt.Sprintf("route:%f,%f->%f,%f", origin.Lat, origin.Lon, dest.Lat, dest.Lon)
}

// Get returns a cached segment and whether it was present.
func (c *RouteCache) Get(ctx context.Context, origin, dest domain.Location) (domain.RouteSegment, bool) {
	raw, err := c.rdb.Get(ctx, routeKey(origin, dest)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WarnContext(ctx, "route cache read failed", "error", err)
		}
		return domain.RouteSegment{}, false
	}

	var seg domain.RouteSegment
	if err := json.Unmarshal(raw, &seg); err != nil {
		c.log.WarnContext(ctx, "route cache entry corrupt", "error", err)
		return domain.RouteSegment{}, false
	}
	return seg, true
}

// Put stores a segment with the cache TTL. Failures are logged, not returned.
func (c *RouteCache) Put(ctx context.Context, origin, dest domain.Location, seg domain.RouteSegment) {
	raw, err := json.Marshal(seg)
	if err != nil {
		c.log.WarnContext(ctx, "route cache marshal failed", "error", err)
		return
	}
	if err := c.rdb.Set(ctx, routeKey(origin, dest), raw, routeCacheTTL).Err(); err != nil {
		c.log.WarnContext(ctx, "route cache write failed", "error", err)
	}
}
