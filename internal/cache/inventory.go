package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	indexPageKeyPrefix = "posts:index:v%d:p%d"
	indexGenKey        = "posts:index:gen"
	userKeyPrefix      = "user:%d"
	groupKeyPrefix     = "group:%s"
)

const (
	// IndexTTL bounds staleness of the cached index pages. Invalidation via
	// generation bump makes writes visible sooner, the TTL is a backstop.
	IndexTTL = 20 * time.Second
	UserTTL  = 5 * time.Minute
	GroupTTL = 10 * time.Minute
)

// IndexGeneration returns the current generation counter for index pages.
// A missing or unreadable counter reads as generation 0; INCR on a missing
// key yields 1, so the first bump after a cold start still changes every
// page key.
func IndexGeneration(ctx context.Context) int64 {
	if client == nil {
		return 0
	}
	s, err := client.Get(ctx, indexGenKey).Result()
	if err != nil {
		return 0
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil || gen < 0 {
		return 0
	}
	return gen
}

// IndexPageKey returns the cache key for a given index page under the
// current generation.
func IndexPageKey(ctx context.Context, page int) string {
	return fmt.Sprintf(indexPageKeyPrefix, IndexGeneration(ctx), page)
}

// InvalidateIndex bumps the index generation so all previously cached index
// pages become unreachable. Old keys expire on their own via IndexTTL.
func InvalidateIndex(ctx context.Context) {
	if client == nil {
		return
	}
	client.Incr(ctx, indexGenKey)
}

// UserKey returns the cache key for a user profile.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// GroupKey returns the cache key for a group looked up by slug.
func GroupKey(slug string) string {
	return fmt.Sprintf(groupKeyPrefix, slug)
}

// Invalidate deletes a single key.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the cached profile for the user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateGroup drops the cached group for the slug.
func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}
