package scores

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/araquiz/backend/internal/models"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := intQueryParam(r.URL.Query(), "limit", defaultLeaderboardLimit)
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	entries, err := h.store.Leaderboard(limit)
	if err != nil {
		log.Printf("[scores] GetLeaderboard error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get leaderboard"})
		return
	}

	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, models.LeaderboardResponse{Entries: entries})
}

func (h *Handler) GetRunHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("user_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	limit := intQueryParam(r.URL.Query(), "limit", 20)
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	runs, err := h.store.RunHistory(userID, limit)
	if err != nil {
		log.Printf("[scores] GetRunHistory error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get run history"})
		return
	}

	if runs == nil {
		runs = []models.QuizRun{}
	}
	writeJSON(w, http.StatusOK, models.RunHistoryResponse{Runs: runs})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func intQueryParam(query url.Values, key string, defaultVal int) int {
	s := query.Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
