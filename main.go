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
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	service := app.NewFootprintService(excel.NewDecoder())
	server := ui.NewServer(cfg, service)

	log.Printf("🚀 Starting footprint API server on port %s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
