// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"trackwerk/internal/config"
	"trackwerk/internal/database"
	"trackwerk/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 5, "Number of users to create")
	numJobs := flag.Int("jobs", 12, "Number of jobs per user")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	maxDays := flag.Int("days", 90, "Spread created_at over the last N days")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumJobs:     *numJobs,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}
}
