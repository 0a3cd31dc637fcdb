package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"classroom-ws-server/pkg/ai"
	"classroom-ws-server/pkg/config"
	"classroom-ws-server/pkg/connections"
	"classroom-ws-server/pkg/db"
	"classroom-ws-server/pkg/room"
	"classroom-ws-server/pkg/server"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("[env] no .env file loaded: %v", err)
	}
	cfg := config.Load()
	ctx := context.Background()

	var store *db.Db
	if cfg.DatabaseURL != "" {
		s, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("[db] connection failed, running in-memory only: %v", err)
		} else {
			store = s
			defer store.Close()
			log.Println("[db] database persistence enabled")
		}
	} else {
		log.Println("[db] DATABASE_URL not set, running in-memory only")
	}

	if cfg.GeminiAPIKey == "" {
		log.Println("[ai] GEMINI_API_KEY not set, quiz generation and transcription will use mock data")
	}
	aiSvc := ai.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel)

	registry := room.NewRegistry()
	hub := connections.NewHub(cfg, registry, aiSvc, store)
	router := server.NewRouter(hub, store, registry)

	log.Printf("[server] listening on %s", cfg.ServerAddr)
	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatal(err)
	}
}
