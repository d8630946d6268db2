// Command main runs the demo-data seeder for Love Corner.
package main

import (
	"context"
	"flag"
	"log"

	"lovecorner/internal/config"
	"lovecorner/internal/database"
	"lovecorner/internal/kvstore"
	"lovecorner/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 8, "Number of pickup lines to create")
	commentsPerPost := flag.Int("comments", 4, "Number of comments per pickup line")
	maxReplies := flag.Int("replies", 3, "Maximum replies per comment")
	preset := flag.String("preset", "", "Apply a YAML preset file instead of random data")
	flag.Parse()

	log.Println("🌱 Demo Data Seeder")
	log.Println("===================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// Seeding a memory store is pointless; it dies with the process.
	if cfg.StoreBackend == config.StoreMemory {
		log.Fatal("STORE_BACKEND is 'memory'; pick redis, sqlite, or postgres to seed")
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	ctx := context.Background()
	f := seed.NewFactory(store)

	if *preset != "" {
		log.Printf("Applying preset: %s (ignoring other flags)", *preset)
		p, err := seed.LoadPreset(*preset)
		if err != nil {
			log.Fatalf("❌ Preset load failed: %v", err)
		}
		if err := f.Apply(ctx, p); err != nil {
			log.Fatalf("❌ Preset seeding failed: %v", err)
		}
		log.Println("✓ Preset applied")
		return
	}

	if err := f.Seed(ctx, seed.Options{
		NumPosts:             *numPosts,
		CommentsPerPost:      *commentsPerPost,
		MaxRepliesPerComment: *maxReplies,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
	log.Println("✓ Seeding complete")
}

func openStore(cfg *config.Config) (kvstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.StoreRedis:
		r, err := kvstore.OpenRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		g, err := kvstore.NewGorm(db)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return g, closeFn, nil
	}
}
