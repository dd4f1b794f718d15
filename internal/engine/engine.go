// Package engine coordinates the feed synchronization loop: debounced
// refetches, merges into the record store, display projection, and the local
// authoring path.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/blackmichael/tweetfeed/internal/debounce"
	"github.com/blackmichael/tweetfeed/internal/domain"
)

// Fetcher issues paginated, query-parameterized requests to the remote feed
// endpoint. Implemented by twitter.Client.
type Fetcher interface {
	// Fetch returns the records on the page at requestURL. A nil error with
	// zero records means the page had no results.
	Fetch(ctx context.Context, requestURL string) ([]domain.Record, error)

	// SearchURL builds the request URL for a normalized search term.
	SearchURL(term string) string

	// DefaultURL returns the request URL used when no search is active.
	DefaultURL() string
}

// Config tunes the engine.
type Config struct {
	// SearchDelay is the debounce window for search-driven refetches.
	SearchDelay time.Duration

	// ScrollDelay is the debounce window for scroll-driven refetches.
	ScrollDelay time.Duration

	// LocalAuthor is the fixed profile attached to locally composed records.
	LocalAuthor domain.Author
}

// Defaults for the debounce windows. The search window matches the original
// client's 500ms keystroke settle time.
const (
	DefaultSearchDelay = 500 * time.Millisecond
	DefaultScrollDelay = 200 * time.Millisecond
)

// Engine is the top-level controller. It owns the query state and the display
// sequence; the record store and the fetcher are injected. All methods are
// safe for concurrent use.
type Engine struct {
	store   *domain.Store
	fetcher Fetcher
	logger  *slog.Logger

	localAuthor domain.Author

	searchDeb *debounce.Debouncer
	scrollDeb *debounce.Debouncer

	// seq numbers issued fetches so a stale completion is observable in the
	// logs. Stale completions still merge; last write wins (see Display
	// Sequence semantics in the package docs).
	seq atomic.Uint64

	broker *broker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	term      string // normalized: trimmed, lower-cased
	searchURL string // empty until the first search signal
	display   []domain.Record
}

// New creates an engine around the given store and fetcher. Zero delays in
// cfg fall back to the defaults.
func New(cfg Config, store *domain.Store, fetcher Fetcher, logger *slog.Logger) *Engine {
	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = DefaultSearchDelay
	}
	if cfg.ScrollDelay <= 0 {
		cfg.ScrollDelay = DefaultScrollDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		store:       store,
		fetcher:     fetcher,
		logger:      logger,
		localAuthor: cfg.LocalAuthor,
		searchDeb:   debounce.New(cfg.SearchDelay),
		scrollDeb:   debounce.New(cfg.ScrollDelay),
		broker:      newBroker(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start issues the initial fetch for the default feed so the display is
// populated before any user signal arrives.
func (e *Engine) Start() {
	e.fetchAsync(e.fetcher.DefaultURL())
}

// Close cancels pending debounced triggers and in-flight fetches and waits
// for them to finish. Subscribers' channels are closed.
func (e *Engine) Close() {
	e.searchDeb.Cancel()
	e.scrollDeb.Cancel()
	e.cancel()
	e.wg.Wait()
	e.broker.close()
}

// SetSearchTerm records a change to the raw search input. The display resets
// immediately; the refetch is debounced so a burst of keystrokes settles into
// one request for the final term.
func (e *Engine) SetSearchTerm(raw string) {
	term := domain.NormalizeTerm(raw)

	e.mu.Lock()
	e.term = term
	e.searchURL = e.fetcher.SearchURL(term)
	e.display = nil
	url := e.searchURL
	e.mu.Unlock()

	e.publish()

	e.searchDeb.Do(func() {
		e.fetchAsync(url)
	})
}

// ScrollBottom handles the viewport reaching the end of the rendered list:
// refetch the active search URL, or the default feed when no search is
// active. Results merge additively; identity dedup keeps repeats out.
func (e *Engine) ScrollBottom() {
	e.mu.Lock()
	url := e.searchURL
	e.mu.Unlock()
	if url == "" {
		url = e.fetcher.DefaultURL()
	}

	e.scrollDeb.Do(func() {
		e.fetchAsync(url)
	})
}

// Compose authors a record locally: a fresh local identity, the current time,
// and the fixed local-user profile. The record goes into the store and onto
// the head of the display sequence without passing the filter, so it is
// visible immediately even under an active search.
func (e *Engine) Compose(text string) domain.Record {
	rec := domain.Record{
		ID:        "local:" + ulid.Make().String(),
		Text:      text,
		CreatedAt: time.Now().UTC(),
		Author:    e.localAuthor,
	}

	e.store.UpsertOne(rec)

	e.mu.Lock()
	e.display = append([]domain.Record{rec}, e.display...)
	e.mu.Unlock()

	e.publish()

	e.logger.Info("composed local record", "id", rec.ID, "chars", len(text))
	return rec
}

// Display returns a copy of the current display sequence.
func (e *Engine) Display() []domain.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Record, len(e.display))
	copy(out, e.display)
	return out
}

// Term returns the current normalized search term.
func (e *Engine) Term() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term
}

// Subscribe registers a listener for display-sequence snapshots. The listener
// must drain the channel; full buffers skip snapshots rather than block.
func (e *Engine) Subscribe() chan []domain.Record {
	return e.broker.subscribe()
}

// Unsubscribe removes a listener and closes its channel.
func (e *Engine) Unsubscribe(ch chan []domain.Record) {
	e.broker.unsubscribe(ch)
}

// fetchAsync runs one fetch-merge-project cycle on its own goroutine. A fetch
// failure is logged and dropped: the store stays untouched and the next user
// signal naturally re-attempts.
func (e *Engine) fetchAsync(url string) {
	seq := e.seq.Add(1)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		records, err := e.fetcher.Fetch(e.ctx, url)
		if err != nil {
			e.logger.Error("fetch failed", "url", url, "seq", seq, "error", err)
			return
		}

		if latest := e.seq.Load(); seq != latest {
			// A newer request was issued while this one was in flight. It
			// merges anyway; last write wins on shared identities.
			e.logger.Warn("stale fetch completed", "url", url, "seq", seq, "latest", latest)
		}

		e.logger.Info("fetch complete", "url", url, "seq", seq, "records", len(records))

		if len(records) == 0 {
			return
		}

		e.store.UpsertMany(records)
		e.reproject()
		e.publish()
	}()
}

// reproject recomputes the display sequence from the store snapshot and the
// current term. Chronological order is re-established after every merge.
func (e *Engine) reproject() {
	snapshot := e.store.Snapshot()

	e.mu.Lock()
	e.display = domain.Project(snapshot, e.term)
	e.mu.Unlock()
}

func (e *Engine) publish() {
	e.broker.publish(e.Display())
}
