package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/blackmichael/tweetfeed/internal/config"
	"github.com/blackmichael/tweetfeed/internal/domain"
	"github.com/blackmichael/tweetfeed/internal/engine"
)

// Server is the HTTP boundary between the engine and the rendering layer. It
// serves the display sequence, accepts the search/scroll/compose signals, and
// streams display updates over a WebSocket.
type Server struct {
	cfg        *config.Config
	engine     *engine.Engine
	logger     *slog.Logger
	httpServer *http.Server
}

// NewServer creates a new HTTP server around the given engine.
func NewServer(cfg *config.Config, eng *engine.Engine, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		engine: eng,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /feed", s.handleFeed)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("POST /scroll", s.handleScroll)
	mux.HandleFunc("POST /compose", s.handleCompose)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     withLogging(logger, mux),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: the WebSocket endpoint holds its connection open.
		IdleTimeout: 60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleFeed(w http.ResponseWriter, _ *http.Request) {
	records := s.engine.Display()
	writeJSON(w, http.StatusOK, map[string]any{
		"records": toRecordResponses(records),
	})
}

type searchRequest struct {
	Term string `json:"term"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "body must be JSON with a term field")
		return
	}

	s.engine.SetSearchTerm(req.Term)
	writeJSON(w, http.StatusAccepted, map[string]string{"term": s.engine.Term()})
}

func (s *Server) handleScroll(w http.ResponseWriter, _ *http.Request) {
	s.engine.ScrollBottom()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

type composeRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	var req composeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "body must be JSON with a text field")
		return
	}

	rec := s.engine.Compose(req.Text)
	writeJSON(w, http.StatusCreated, toRecordResponse(rec))
}

// recordResponse mirrors the wire shape the rendering layer already binds to.
type recordResponse struct {
	ID        string         `json:"id"`
	Text      string         `json:"text"`
	CreatedAt time.Time      `json:"created_at"`
	User      authorResponse `json:"user"`
}

type authorResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ScreenName      string `json:"screen_name"`
	ProfileImageURL string `json:"profile_image_url"`
}

func toRecordResponse(rec domain.Record) recordResponse {
	return recordResponse{
		ID:        rec.ID,
		Text:      rec.Text,
		CreatedAt: rec.CreatedAt,
		User: authorResponse{
			ID:              rec.Author.ID,
			Name:            rec.Author.Name,
			ScreenName:      rec.Author.Handle,
			ProfileImageURL: rec.Author.AvatarURL,
		},
	}
}

func toRecordResponses(recs []domain.Record) []recordResponse {
	out := make([]recordResponse, len(recs))
	for i, rec := range recs {
		out[i] = toRecordResponse(rec)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

func withLogging(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Hijack lets the WebSocket upgrade take over the underlying connection.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hj.Hijack()
}
