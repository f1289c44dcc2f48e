package api

import (
	"encoding/json"
	"net/http"
)

func (s *Server) handleGetPreferences() http.HandlerFunc {
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

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"preferences": u.Preferences,
		})
	}
}

type UpdatePreferencesRequest struct {
	Preferences []string `json:"preferences"`
}

func (s *Server) handleUpdatePreferences() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdatePreferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Preferences must be an array")
			return
		}
		if err := validatePreferences(req.Preferences); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}

		updated, err := s.userStore.UpdatePreferences(r.Context(), getUserID(r), req.Preferences)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !updated {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"preferences": req.Preferences,
		})
	}
}
