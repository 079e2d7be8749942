// Package bootstrap wires shared runtime dependencies for the server and CLI
// tools.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options control runtime initialization behavior.
type Options struct {
	BootstrapGroups bool
}

// builtInGroups are the communities every development install starts with.
var builtInGroups = []models.Group{
	{Title: "Cats", Slug: "cats", Description: "Posts about cats."},
	{Title: "Dogs", Slug: "dogs", Description: "Posts about dogs."},
	{Title: "Travel", Slug: "travel", Description: "Trip reports and travel notes."},
	{Title: "Tech", Slug: "tech", Description: "Technology and programming."},
}

// InitRuntime connects to DB and Redis and optionally ensures the built-in
// groups exist.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis may be unreachable; the cache layer degrades to no-ops.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.BootstrapGroups || shouldBootstrapGroups(cfg) {
		if err := ensureBuiltInGroups(db); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap built-in groups: %w", err)
		}
	}

	return db, r, nil
}

func shouldBootstrapGroups(cfg *config.Config) bool {
	if cfg == nil {
		return false
	}
	return strings.EqualFold(cfg.Env, "development") && cfg.DevBootstrapGroups
}

// ensureBuiltInGroups inserts the default groups, skipping slugs that already
// exist so repeated startups stay idempotent.
func ensureBuiltInGroups(db *gorm.DB) error {
	for _, group := range builtInGroups {
		g := group
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&g).Error; err != nil {
			return fmt.Errorf("ensure group %q: %w", g.Slug, err)
		}
	}
	log.Printf("built-in groups ensured (%d)", len(builtInGroups))
	return nil
}
