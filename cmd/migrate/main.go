package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"billingform/internal/platform/config"
	"billingform/internal/platform/database"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	flag.Parse()

	if *direction != "up" && *direction != "down" {
		log.Fatal("Invalid direction: must be 'up' or 'down'")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open issuance database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, *direction); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Printf("Migration %s completed successfully\n", *direction)
}
