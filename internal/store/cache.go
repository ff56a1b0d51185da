// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/matching"
	"matching-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "matching:"

// CachedProfileStore serves single user and profile reads from Redis and
// falls back to the wrapped store on a miss. Profile scans always go to the
// wrapped store. Absent rows are never cached.
type CachedProfileStore struct {
	next   matching.ProfileStore
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedProfileStore(next matching.ProfileStore, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedProfileStore {
	return &CachedProfileStore{
		next:   next,
		redis:  client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "profile-cache"}),
	}
}

func userKey(userID string) string     { return cacheKeyPrefix + "user:" + userID }
func investorKey(userID string) string { return cacheKeyPrefix + "profile:investor:" + userID }
func startupKey(userID string) string  { return cacheKeyPrefix + "profile:startup:" + userID }

func (c *CachedProfileStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var u models.User
	if c.lookup(ctx, userKey(userID), &u) {
		return &u, nil
	}

	user, err := c.next.GetUser(ctx, userID)
	if err != nil || user == nil {
		return user, err
	}
	c.store(ctx, userKey(userID), user)
	return user, nil
}

func (c *CachedProfileStore) GetInvestorProfile(ctx context.Context, userID string) (*models.InvestorProfile, error) {
	var p models.InvestorProfile
	if c.lookup(ctx, investorKey(userID), &p) {
		return &p, nil
	}

	profile, err := c.next.GetInvestorProfile(ctx, userID)
	if err != nil || profile == nil {
		return profile, err
	}
	c.store(ctx, investorKey(userID), profile)
	return profile, nil
}

func (c *CachedProfileStore) GetStartupProfile(ctx context.Context, userID string) (*models.StartupProfile, error) {
	var p models.StartupProfile
	if c.lookup(ctx, startupKey(userID), &p) {
		return &p, nil
	}

	profile, err := c.next.GetStartupProfile(ctx, userID)
	if err != nil || profile == nil {
		return profile, err
	}
	c.store(ctx, startupKey(userID), profile)
	return profile, nil
}

func (c *CachedProfileStore) ListInvestorProfiles(ctx context.Context) ([]*models.InvestorProfile, error) {
	return c.next.ListInvestorProfiles(ctx)
}

func (c *CachedProfileStore) ListStartupProfiles(ctx context.Context) ([]*models.StartupProfile, error) {
	return c.next.ListStartupProfiles(ctx)
}

// Invalidate drops every cached entry of the user.
func (c *CachedProfileStore) Invalidate(ctx context.Context, userID string) error {
	return c.redis.Del(ctx, userKey(userID), investorKey(userID), startupKey(userID)).Err()
}

// lookup reports a hit only when the key exists and decodes into out. Redis
// failures degrade to a miss.
func (c *CachedProfileStore) lookup(ctx context.Context, key string, out interface{}) bool {
	val, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		metrics.ProfileCacheRequests.WithLabelValues("miss").Inc()
		return false
	case err != nil:
		metrics.ProfileCacheRequests.WithLabelValues("error").Inc()
		c.logger.Warn("profile cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}

	if err := json.Unmarshal(val, out); err != nil {
		metrics.ProfileCacheRequests.WithLabelValues("error").Inc()
		c.logger.Warn("discarding undecodable cache entry", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	metrics.ProfileCacheRequests.WithLabelValues("hit").Inc()
	return true
}

func (c *CachedProfileStore) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("profile cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

var _ matching.ProfileStore = (*CachedProfileStore)(nil)
