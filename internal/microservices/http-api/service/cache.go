package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mangafandb/internal/cache"
	"mangafandb/internal/microservices/http-api/repository"
)

// page is the cached shape of one list response.
type page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

func pageKey(prefix string, q repository.ListQuery, extra ...any) string {
	key := fmt.Sprintf("%slist:%d:%d:%s:%s:%s", prefix, q.Page, q.Limit, q.Sort, q.Order, q.Search)
	for _, e := range extra {
		key += fmt.Sprintf(":%v", e)
	}
	return key
}

// readThrough serves key from c, falling back to load and storing the result.
// Cache failures are logged and never fail the request.
func readThrough[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var out T
	if c != nil {
		hit, err := c.Get(ctx, key, &out)
		if err != nil {
			slog.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		} else if hit {
			return out, nil
		}
	}
	out, err := load()
	if err != nil {
		return out, err
	}
	if c != nil {
		if err := c.Set(ctx, key, out, ttl); err != nil {
			slog.WarnContext(ctx, "cache write failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// dropPrefixes returns a change hook that invalidates the given key prefixes.
func dropPrefixes(c cache.Cache, prefixes ...string) func(context.Context) {
	return func(ctx context.Context) {
		if c == nil {
			return
		}
		for _, p := range prefixes {
			if err := c.DeletePrefix(ctx, p); err != nil {
				slog.WarnContext(ctx, "cache invalidation failed", "prefix", p, "error", err)
			}
		}
	}
}
