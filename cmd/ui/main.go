package main

import (
	"log"

	"github.com/joho/godotenv"

	"pacesetter/adapters/excel"
	"pacesetter/app"
	"pacesetter/internal/config"
	"pacesetter/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	reviewApp, err := ui.NewApp(cfg, app.NewFootprintService(excel.NewDecoder()))
	if err != nil {
		log.Fatal("Failed to create review app:", err)
	}

	log.Printf("🚀 Starting footprint review UI on http://localhost:%s", cfg.Review.Port)
	log.Fatal(reviewApp.Start(":" + cfg.Review.Port))
}
