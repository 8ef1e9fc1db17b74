// Command main runs the store seeder for ConnectSphere.
package main

import (
	"context"
	"flag"
	"log"

	"connectsphere/internal/bootstrap"
	"connectsphere/internal/config"
	"connectsphere/internal/seed"
)

func main() {
	// Parse command line flags
	extraPosts := flag.Int("posts", 0, "Number of extra generated posts beyond the fixtures")
	shouldClean := flag.Bool("clean", true, "Clean the store before seeding")
	flag.Parse()

	log.Println("Store Seeder")
	log.Printf("Target: %d extra posts, clean=%v\n", *extraPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Establish the store backend without implicit seeding
	kv, _, _, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	if err := seed.Seed(context.Background(), kv, seed.Options{
		ExtraPosts:  *extraPosts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
