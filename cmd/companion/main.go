package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"foodcheq-companion/internal/api"
	"foodcheq-companion/internal/cart"
	"foodcheq-companion/internal/checkout"
	"foodcheq-companion/internal/config"
	"foodcheq-companion/internal/db"
	"foodcheq-companion/internal/httpserver"
	"foodcheq-companion/internal/migrate"
	"foodcheq-companion/internal/notify"
	"foodcheq-companion/internal/session"
	"foodcheq-companion/internal/storage"
	"foodcheq-companion/internal/wishlist"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := log.New(os.Stdout, "[companion] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := db.Open(ctx, cfg.StorePath())
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer store.Close()

	// The store is per-profile and self-provisioned; apply schema on boot.
	if err := migrate.Apply(store); err != nil {
		logger.Fatalf("migrate store: %v", err)
	}

	bus := notify.NewBus()
	watcher, err := notify.NewWatcher(cfg.ProfileDir, bus, logger)
	if err != nil {
		logger.Fatalf("init store watcher: %v", err)
	}
	if err := watcher.Start(ctx); err != nil {
		logger.Fatalf("start store watcher: %v", err)
	}
	defer watcher.Stop()

	adapter := storage.New(storage.NewSQLite(store), bus)
	sessions := session.New(adapter)
	client := api.New(cfg.APIBaseURL, sessions, cfg.APITimeout)
	carts := cart.New(adapter, cart.DefaultStoreConfig())
	lists := wishlist.New(adapter, wishlist.DefaultKey, client, sessions)
	checkouts := checkout.New(carts, client, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, store, httpserver.Deps{
		Cart:     carts,
		Wishlist: lists,
		Session:  sessions,
		Checkout: checkouts,
		Backend:  client,
		Bus:      bus,
	}, cfg.StorefrontOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
