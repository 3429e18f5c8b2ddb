package main

import (
	"log"

	"github.com/joho/godotenv"

	"datasheet/internal/config"
	"datasheet/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := ui.NewApp(appConfig)
	if err != nil {
		log.Fatal("Failed to create UI app:", err)
	}

	log.Printf("Starting data sheet server on port %s", appConfig.Server.Port)
	log.Fatal(app.Start(":" + appConfig.Server.Port))
}
