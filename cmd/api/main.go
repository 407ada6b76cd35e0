package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/rollcall-io/rollcall/internal/api"
	"github.com/rollcall-io/rollcall/internal/auth"
	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/database"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Path to optional configuration file")
	flag.Parse()

	// A local .env is a convenience; absence is fine.
	_ = godotenv.Load()

	log.Printf("Starting rollcall API v%s", version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := database.EnsureDatabase(cfg); err != nil {
		log.Fatalf("failed to ensure database exists: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.SeedAdmin(ctx); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	tokens, err := auth.NewTokenManager(cfg.TokenSecret, cfg.TokenAlgorithm,
		time.Duration(cfg.TokenExpireMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("token configuration error: %v", err)
	}

	api.New(cfg, db, tokens).Serve()
}
