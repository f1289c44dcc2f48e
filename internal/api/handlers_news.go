package api

import (
	"encoding/json"
	"net/http"
	"time"
)

func (s *Server) handleGetNews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.userStore.GetUserByID(r.Context(), getUserID(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if u == nil {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		articles := s.news.FetchByPreferences(r.Context(), u.Preferences)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"news":  articles,
			"count": len(articles),
		})
	}
}

func (s *Server) handleSearchNews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		keyword := r.PathValue("keyword")
		if keyword == "" {
			respondError(w, http.StatusBadRequest, "Keyword is required")
			return
		}

		articles := s.news.SearchByKeyword(r.Context(), keyword)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"news":  articles,
			"count": len(articles),
		})
	}
}

// ArticleURLRequest carries the article identity for read/favorite marks.
// The URL travels in the body rather than the path because article URLs are
// themselves URLs.
type ArticleURLRequest struct {
	URL string `json:"url"`
}

func (s *Server) decodeArticleURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ArticleURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		respondError(w, http.StatusBadRequest, "Article url is required")
		return "", false
	}
	return req.URL, true
}

func (s *Server) handleMarkRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := s.decodeArticleURL(w, r)
		if !ok {
			return
		}
		if err := s.userStore.MarkRead(r.Context(), getUserID(r), url); err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Article marked as read"})
	}
}

func (s *Server) handleListRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := s.userStore.ReadArticles(r.Context(), getUserID(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"read":  urls,
			"count": len(urls),
		})
	}
}

func (s *Server) handleMarkFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := s.decodeArticleURL(w, r)
		if !ok {
			return
		}
		if err := s.userStore.MarkFavorite(r.Context(), getUserID(r), url); err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Article marked as favorite"})
	}
}

func (s *Server) handleUnmarkFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, ok := s.decodeArticleURL(w, r)
		if !ok {
			return
		}
		if err := s.userStore.UnmarkFavorite(r.Context(), getUserID(r), url); err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Article removed from favorites"})
	}
}

func (s *Server) handleListFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		urls, err := s.userStore.FavoriteArticles(r.Context(), getUserID(r))
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"favorites": urls,
			"count":     len(urls),
		})
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":     "ok",
			"cache_size": s.news.CacheSize(),
			"timestamp":  time.Now().Format(time.RFC3339),
		})
	}
}
