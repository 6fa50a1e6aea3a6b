// package testcasecache adds a redis read-through cache tier in front of any
// TestCaseRepository.
package testcasecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"gitlab.com/codearena-2025.net/internal/core/ports/primary"
	"gitlab.com/codearena-2025.net/internal/core/ports/secondary"
	"gitlab.com/codearena-2025.net/internal/domain"
)

const (
	challengeKeyPrefix = "testcases:challenge:"
	cacheExpiration    = 5 * time.Minute
)

var _ secondary.TestCaseRepository = (*Cache)(nil)

// Cache decorates a TestCaseRepository with a per-challenge redis cache of
// the full catalog list. The visible subset is derived from the cached full
// list, so one key serves both read paths. Mutations write through to the
// inner repository and drop the challenge's key, so readers see either the
// pre- or post-mutation list. Cache failures degrade to the inner store.
type Cache struct {
	inner       secondary.TestCaseRepository
	redisClient *redis.Client
	logger      primary.Logger
}

// New creates a cache tier over inner.
func New(inner secondary.TestCaseRepository, redisClient *redis.Client, logger primary.Logger) *Cache {
	return &Cache{
		inner:       inner,
		redisClient: redisClient,
		logger:      logger,
	}
}

func challengeKey(challengeID int64) string {
	return fmt.Sprintf("%s%d", challengeKeyPrefix, challengeID)
}

// AllTestCases serves the full catalog list, from redis when possible.
func (c *Cache) AllTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error) {
	if cached, ok := c.lookup(ctx, challengeID); ok {
		return cached, nil
	}

	testCases, err := c.inner.AllTestCases(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	c.store(ctx, challengeID, testCases)
	return testCases, nil
}

// VisibleTestCases filters the cached full list down to the preview subset.
func (c *Cache) VisibleTestCases(ctx context.Context, challengeID int64) ([]*domain.TestCase, error) {
	all, err := c.AllTestCases(ctx, challengeID)
	if err != nil {
		return nil, err
	}

	visible := []*domain.TestCase{}
	for _, tc := range all {
		if tc.Visible() {
			visible = append(visible, tc)
		}
	}
	return visible, nil
}

// GetTestCase always hits the inner store; single-case reads are rare enough
// (admin flows only) that caching them is not worth the invalidation surface.
func (c *Cache) GetTestCase(ctx context.Context, testCaseID int64) (*domain.TestCase, error) {
	return c.inner.GetTestCase(ctx, testCaseID)
}

// CreateTestCase writes through and invalidates the challenge's cached list.
func (c *Cache) CreateTestCase(ctx context.Context, tc *domain.TestCase) error {
	if err := c.inner.CreateTestCase(ctx, tc); err != nil {
		return err
	}
	c.invalidate(ctx, tc.ChallengeID)
	return nil
}

// UpdateTestCase writes through and invalidates the challenge's cached list.
func (c *Cache) UpdateTestCase(ctx context.Context, testCaseID int64, upd *domain.TestCaseUpdate) (*domain.TestCase, error) {
	updated, err := c.inner.UpdateTestCase(ctx, testCaseID, upd)
	if err != nil || updated == nil {
		return updated, err
	}
	c.invalidate(ctx, updated.ChallengeID)
	return updated, nil
}

// RemoveTestCase writes through and invalidates the challenge's cached list.
func (c *Cache) RemoveTestCase(ctx context.Context, testCaseID int64) (bool, error) {
	tc, err := c.inner.GetTestCase(ctx, testCaseID)
	if err != nil {
		return false, err
	}

	removed, err := c.inner.RemoveTestCase(ctx, testCaseID)
	if err != nil {
		return removed, err
	}
	if removed && tc != nil {
		c.invalidate(ctx, tc.ChallengeID)
	}
	return removed, nil
}

// RemoveAllForChallenge writes through and invalidates the cached list.
func (c *Cache) RemoveAllForChallenge(ctx context.Context, challengeID int64) (int64, error) {
	removed, err := c.inner.RemoveAllForChallenge(ctx, challengeID)
	if err != nil {
		return removed, err
	}
	c.invalidate(ctx, challengeID)
	return removed, nil
}

func (c *Cache) lookup(ctx context.Context, challengeID int64) ([]*domain.TestCase, bool) {
	data, err := c.redisClient.Get(ctx, challengeKey(challengeID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Test case cache read failed", "challengeId", challengeID, "error", err)
		}
		return nil, false
	}

	var testCases []*domain.TestCase
	if err := json.Unmarshal([]byte(data), &testCases); err != nil {
		c.logger.Warn("Discarding corrupt test case cache entry", "challengeId", challengeID, "error", err)
		c.invalidate(ctx, challengeID)
		return nil, false
	}
	return testCases, true
}

func (c *Cache) store(ctx context.Context, challengeID int64, testCases []*domain.TestCase) {
	data, err := json.Marshal(testCases)
	if err != nil {
		c.logger.Warn("Failed to marshal test cases for cache", "challengeId", challengeID, "error", err)
		return
	}
	if err := c.redisClient.Set(ctx, challengeKey(challengeID), data, cacheExpiration).Err(); err != nil {
		c.logger.Warn("Test case cache write failed", "challengeId", challengeID, "error", err)
	}
}

func (c *Cache) invalidate(ctx context.Context, challengeID int64) {
	if err := c.redisClient.Del(ctx, challengeKey(challengeID)).Err(); err != nil {
		c.logger.Warn("Test case cache invalidation failed", "challengeId", challengeID, "error", err)
	}
}
