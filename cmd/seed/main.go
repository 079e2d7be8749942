// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"inkwell/internal/bootstrap"
	"inkwell/internal/config"
	"inkwell/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	numGroups := flag.Int("groups", 5, "Number of groups to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	numFollows := flag.Int("follows", 60, "Number of follow relations to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("seeder target: %d users, %d groups, %d posts, clean=%v",
		*numUsers, *numGroups, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{BootstrapGroups: true})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumGroups:   *numGroups,
		NumPosts:    *numPosts,
		NumComments: *numComments,
		NumFollows:  *numFollows,
		ShouldClean: *shouldClean,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Done. All seeded users have the password: password123")
}
