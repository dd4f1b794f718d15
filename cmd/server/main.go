package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/blackmichael/tweetfeed/internal/config"
	"github.com/blackmichael/tweetfeed/internal/domain"
	"github.com/blackmichael/tweetfeed/internal/engine"
	"github.com/blackmichael/tweetfeed/internal/httpserver"
	"github.com/blackmichael/tweetfeed/internal/twitter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The record store is built once here and injected everywhere it is
	// needed; nothing reaches for it ambiently.
	store := domain.NewStore()
	client := twitter.NewClient(cfg.FeedURL, cfg.DefaultQuery)

	eng := engine.New(engine.Config{
		SearchDelay: cfg.SearchDelay,
		ScrollDelay: cfg.ScrollDelay,
		LocalAuthor: domain.Author{
			ID:        cfg.LocalAuthor.ID,
			Name:      cfg.LocalAuthor.Name,
			Handle:    cfg.LocalAuthor.Handle,
			AvatarURL: cfg.LocalAuthor.AvatarURL,
		},
	}, store, client, logger)
	defer eng.Close()

	// Populate the display before the first client connects.
	eng.Start()

	server := httpserver.NewServer(cfg, eng, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started", "port", cfg.Port, "feed_url", cfg.FeedURL)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
