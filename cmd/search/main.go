package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/blackmichael/tweetfeed/internal/twitter"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		feedURL     string
		term        string
		defaultTerm string
		timeout     time.Duration
	)

	flag.StringVar(&feedURL, "url", envOrDefault("TWEETFEED_FEED_URL", ""), "Base URL of the remote feed endpoint")
	flag.StringVar(&term, "q", "", "Search term (empty uses the default term)")
	flag.StringVar(&defaultTerm, "default", envOrDefault("TWEETFEED_DEFAULT_QUERY", "noodle"), "Default term for empty queries")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	flag.Parse()

	if feedURL == "" {
		return fmt.Errorf("--url is required (or set TWEETFEED_FEED_URL)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := twitter.NewClient(feedURL, defaultTerm)
	requestURL := client.SearchURL(term)

	fmt.Printf("Fetching %s...\n", requestURL)
	records, err := client.Fetch(ctx, requestURL)
	if err != nil {
		switch {
		case errors.Is(err, twitter.ErrTransport):
			return fmt.Errorf("could not reach the feed endpoint: %w", err)
		case errors.Is(err, twitter.ErrPayload):
			return fmt.Errorf("feed endpoint returned an unusable response: %w", err)
		default:
			return err
		}
	}

	if len(records) == 0 {
		fmt.Println("No results.")
		return nil
	}

	for _, rec := range records {
		ts := "unknown time"
		if !rec.CreatedAt.IsZero() {
			ts = rec.CreatedAt.Format(time.RFC1123)
		}
		fmt.Printf("%s  @%s (%s)\n  %s\n", ts, rec.Author.Handle, rec.ID, rec.Text)
	}
	fmt.Printf("%d record(s)\n", len(records))

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
