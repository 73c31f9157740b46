package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/deptworks/consultancy-api/internal/api/metrics"
	"github.com/deptworks/consultancy-api/internal/core/domain"
)

const cacheTTL = time.Minute

// ProjectCache caches per-client project listings as JSON blobs.
// Key format: projects:client:<client_id>
type ProjectCache struct {
	client *redis.Client
}

// NewProjectCache creates a ProjectCache wrapping the given Redis client.
func NewProjectCache(client *redis.Client) *ProjectCache {
	return &ProjectCache{client: client}
}

// GetByClient returns the cached listing for a client, if present.
func (c *ProjectCache) GetByClient(ctx context.Context, clientID string) ([]*domain.Project, bool, error) {
	raw, err := c.client.Get(ctx, c.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ProjectCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var projects []*domain.Project
	if err := json.Unmarshal(raw, &projects); err != nil {
		// A corrupt entry behaves like a miss; the next Set overwrites it.
		metrics.ProjectCacheTotal.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	metrics.ProjectCacheTotal.WithLabelValues("hit").Inc()
	return projects, true, nil
}

// SetByClient stores a listing, expiring after cacheTTL.
func (c *ProjectCache) SetByClient(ctx context.Context, clientID string, projects []*domain.Project) error {
	raw, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}
	return c.client.Set(ctx, c.key(clientID), raw, cacheTTL).Err()
}

// InvalidateClient drops the cached listing after a project mutation.
func (c *ProjectCache) InvalidateClient(ctx context.Context, clientID string) error {
	return c.client.Del(ctx, c.key(clientID)).Err()
}

func (c *ProjectCache) key(clientID string) string {
	return "projects:client:" + clientID
}
