package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/shashankj99/med-o-sys-api-auth/internal/app"
	"github.com/shashankj99/med-o-sys-api-auth/internal/config"
)

func main() {
	// A missing .env is fine; env vars may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
