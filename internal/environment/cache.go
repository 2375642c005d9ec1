package environment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"guesthouse_backend/internal/assessment/domain"

	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps recent environmental snapshots in Redis so bursts of
// assessments for the same property do not hammer the free upstream APIs.
// Coordinates are rounded to three decimals (roughly 100 m), which is well
// inside the resolution of both providers.
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSnapshotCache(rdb *redis.Client, ttl time.Duration) *SnapshotCache {
	return &SnapshotCache{rdb: rdb, ttl: ttl}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("env:snapshot:%.3f:%.3f", lat, lon)
}

// Get returns a cached snapshot, or false on miss or any Redis problem.
func (c *SnapshotCache) Get(ctx context.Context, lat, lon float64) (*domain.EnvironmentalSnapshot, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(lat, lon)).Bytes()
	if err != nil {
		return nil, false
	}
	var snapshot domain.EnvironmentalSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, false
	}
	return &snapshot, true
}

// Set stores a snapshot. Failures are ignored; the cache is an
// optimization, not a dependency.
func (c *SnapshotCache) Set(ctx context.Context, lat, lon float64, snapshot *domain.EnvironmentalSnapshot) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, cacheKey(lat, lon), raw, c.ttl)
}
