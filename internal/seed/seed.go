package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	NumComments int
	NumFollows  int
	ShouldClean bool
	SkipBcrypt  bool
	MaxDays     int
}

// DefaultOptions produces a small but complete data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:    20,
		NumGroups:   5,
		NumPosts:    200,
		NumComments: 400,
		NumFollows:  60,
	}
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("seeding database: %d users, %d groups, %d posts", opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Printf("warning: could not clear existing data: %v", err)
		}
	}

	factory := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("created %d users", len(users))

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := factory.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("created %d groups", len(groups))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[factory.rand.Intn(len(users))]
		// Roughly two thirds of posts belong to a group.
		var group *models.Group
		if len(groups) > 0 && factory.rand.Float32() < 0.66 {
			group = groups[factory.rand.Intn(len(groups))]
		}
		posts = append(posts, factory.BuildPost(author, group))
	}
	if err := factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	for i := 0; i < opts.NumComments && len(posts) > 0; i++ {
		author := users[factory.rand.Intn(len(users))]
		post := posts[factory.rand.Intn(len(posts))]
		if _, err := factory.CreateComment(author, post); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}
	log.Printf("created %d comments", opts.NumComments)

	for i := 0; i < opts.NumFollows && len(users) > 1; i++ {
		follower := users[factory.rand.Intn(len(users))]
		author := users[factory.rand.Intn(len(users))]
		if follower.ID == author.ID {
			continue
		}
		if err := factory.CreateFollow(follower, author); err != nil {
			return fmt.Errorf("failed to create follow: %w", err)
		}
	}

	log.Println("database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("clearing existing data")
	sql := `TRUNCATE TABLE comments, follows, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
