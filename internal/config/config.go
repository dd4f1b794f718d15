package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	// Port is the HTTP server port.
	Port int

	// FeedURL is the base URL of the remote feed endpoint.
	FeedURL string

	// DefaultQuery is the search term substituted when no search is active;
	// the remote endpoint does not support unfiltered queries.
	DefaultQuery string

	// SearchDelay is the debounce window for search-driven refetches.
	SearchDelay time.Duration

	// ScrollDelay is the debounce window for scroll-driven refetches.
	ScrollDelay time.Duration

	// LocalAuthor is the profile attached to locally composed records.
	LocalAuthor Profile
}

// Profile identifies the local user on composed records.
type Profile struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Handle    string `yaml:"handle"`
	AvatarURL string `yaml:"avatar_url"`
}

// defaultProfile mirrors the profile the original client stamped on composed
// tweets.
var defaultProfile = Profile{
	ID:        "1320",
	Name:      "ME",
	Handle:    "Me_in_1320",
	AvatarURL: "./img/me.jpg",
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.FeedURL, validation.Required),
		validation.Field(&c.DefaultQuery, validation.Required),
		validation.Field(&c.SearchDelay, validation.Min(time.Duration(0))),
		validation.Field(&c.ScrollDelay, validation.Min(time.Duration(0))),
	)
}

// Load reads configuration from environment variables with sensible defaults.
// TWEETFEED_FEED_URL is required. If TWEETFEED_PROFILE_FILE is set, the
// local-author profile is read from that YAML file.
func Load() (*Config, error) {
	port := 3000
	if p := os.Getenv("PORT"); p != "" {
		var err error
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
	}

	feedURL := os.Getenv("TWEETFEED_FEED_URL")
	if feedURL == "" {
		return nil, fmt.Errorf("TWEETFEED_FEED_URL is required")
	}

	defaultQuery := os.Getenv("TWEETFEED_DEFAULT_QUERY")
	if defaultQuery == "" {
		defaultQuery = "noodle"
	}

	searchDelay, err := durationEnv("TWEETFEED_SEARCH_DELAY_MS", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	scrollDelay, err := durationEnv("TWEETFEED_SCROLL_DELAY_MS", 200*time.Millisecond)
	if err != nil {
		return nil, err
	}

	profile := defaultProfile
	if path := os.Getenv("TWEETFEED_PROFILE_FILE"); path != "" {
		profile, err = loadProfile(path)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Port:         port,
		FeedURL:      feedURL,
		DefaultQuery: defaultQuery,
		SearchDelay:  searchDelay,
		ScrollDelay:  scrollDelay,
		LocalAuthor:  profile,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadProfile reads a local-author profile from a YAML file, expanding
// environment variable references in the file body.
func loadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile file %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))

	profile := defaultProfile
	if err := yaml.Unmarshal([]byte(expanded), &profile); err != nil {
		return Profile{}, fmt.Errorf("parse profile file %s: %w", path, err)
	}

	return profile, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
