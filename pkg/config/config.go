package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddr       string
	DatabaseURL      string
	GeminiAPIKey     string
	GeminiModel      string
	PingInterval     time.Duration
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ClientSendBuffer int
	MaxMessageSize   int64
}

func Load() *Config {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8000"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &Config{
		ServerAddr:       addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      model,
		PingInterval:     54 * time.Second,
		ReadTimeout:      60 * time.Second,
		WriteTimeout:     10 * time.Second,
		ClientSendBuffer: 256,
		MaxMessageSize:   4 * 1024 * 1024, // audio chunks arrive base64-encoded
	}
}
