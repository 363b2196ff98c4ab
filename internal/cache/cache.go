// Package cache stores serialized API read models so repeated list and
// timeline requests skip the database.
package cache

import (
	"context"
	"time"
)

// Cache is a JSON value store keyed by string. Keys are grouped by prefix so a
// write to one resource can drop every cached read of that resource.
type Cache interface {
	// Get decodes the cached value into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
	Ping(ctx context.Context) error
}

// Key prefixes shared by services.
const (
	PrefixEvents   = "events:"
	PrefixTimeline = "timeline:"
	PrefixSeries   = "series:"
	PrefixArcs     = "arcs:"
)
