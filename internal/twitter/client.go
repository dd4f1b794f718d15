package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/blackmichael/tweetfeed/internal/domain"
)

// Error taxonomy for fetch outcomes. Callers distinguish the two with
// errors.Is; neither is retried automatically.
var (
	// ErrTransport covers network and timeout failures where no usable
	// response was received.
	ErrTransport = errors.New("transport error")

	// ErrPayload covers non-2xx responses and response bodies that do not
	// decode into the expected shape.
	ErrPayload = errors.New("payload error")
)

const defaultTimeout = 30 * time.Second

// Client fetches pages of records from a Twitter-like feed endpoint. It is
// stateless between calls and never mutates the record store; the caller
// merges whatever it returns.
type Client struct {
	baseURL     string
	defaultTerm string
	httpClient  *http.Client
}

// NewClient creates a feed client for the given base endpoint. defaultTerm is
// substituted when a search URL is requested for an empty term; the remote
// endpoint does not support unfiltered queries.
func NewClient(baseURL, defaultTerm string) *Client {
	return &Client{
		baseURL:     baseURL,
		defaultTerm: defaultTerm,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// SearchURL builds the request URL for a normalized search term:
// base + ?q=<term>, with the default term standing in for an empty one.
func (c *Client) SearchURL(term string) string {
	if term == "" {
		term = c.defaultTerm
	}
	return c.baseURL + "?q=" + url.QueryEscape(term)
}

// DefaultURL returns the request URL used when no search is active.
func (c *Client) DefaultURL() string {
	return c.SearchURL("")
}

// Fetch issues a GET to requestURL and returns the records in the response.
// An empty slice with a nil error is a valid outcome: the page had no results.
// Errors wrap ErrTransport or ErrPayload and never carry partial results.
func (c *Client) Fetch(ctx context.Context, requestURL string) ([]domain.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrPayload, resp.StatusCode, truncate(string(body), 200))
	}

	var timeline timelineResponse
	if err := json.Unmarshal(body, &timeline); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", ErrPayload, err)
	}

	records := make([]domain.Record, 0, len(timeline.Statuses))
	for _, st := range timeline.Statuses {
		records = append(records, st.toRecord())
	}
	return records, nil
}

// truncate returns the first n characters of s, appending "..." if truncated.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
