// Package api provides the REST API server for the news aggregator.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/news/sources"
	"github.com/airtribe-projects/news-aggregator-api-Anirudhcv678/internal/user"
)

// NewsService is the aggregation path the handlers call. It is satisfied by
// *aggregator.Aggregator; tests substitute a fake.
type NewsService interface {
	FetchByPreferences(ctx context.Context, preferences []string) []sources.Article
	SearchByKeyword(ctx context.Context, keyword string) []sources.Article
	CacheSize() int
}

// Server holds the dependencies for the API.
type Server struct {
	userStore *user.Store
	news      NewsService
	jwtSecret []byte
	logger    *slog.Logger
}

// NewServer creates a new API Server instance.
func NewServer(uStore *user.Store, news NewsService, jwtSecret string) *Server {
	return &Server{
		userStore: uStore,
		news:      news,
		jwtSecret: []byte(jwtSecret),
		logger:    slog.Default(),
	}
}

// Routes returns the configured http.Handler for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	// Auth routes (public)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister())
	mux.HandleFunc("POST /api/auth/login", s.handleLogin())

	// Preferences
	mux.Handle("GET /api/users/preferences", s.requireAuth(s.handleGetPreferences()))
	mux.Handle("PUT /api/users/preferences", s.requireAuth(s.handleUpdatePreferences()))

	// News
	mux.Handle("GET /api/news", s.requireAuth(s.handleGetNews()))
	mux.Handle("GET /api/news/search/{keyword}", s.requireAuth(s.handleSearchNews()))
	mux.Handle("GET /api/news/read", s.requireAuth(s.handleListRead()))
	mux.Handle("POST /api/news/read", s.requireAuth(s.handleMarkRead()))
	mux.Handle("GET /api/news/favorites", s.requireAuth(s.handleListFavorites()))
	mux.Handle("POST /api/news/favorites", s.requireAuth(s.handleMarkFavorite()))
	mux.Handle("DELETE /api/news/favorites", s.requireAuth(s.handleUnmarkFavorite()))

	// Health (public)
	mux.HandleFunc("GET /api/health", s.handleHealth())

	return mux
}

// --- Helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
