package main

import (
	"context"
	"log"
	"os"

	"foodcheq-companion/internal/config"
	"foodcheq-companion/internal/db"
	"foodcheq-companion/internal/migrate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC)

	store, err := db.Open(context.Background(), cfg.StorePath())
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer store.Close()

	if err := migrate.Apply(store); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}
	logger.Printf("store schema up to date at %s", cfg.StorePath())
}
