package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const defaultLeaderboardLimit = 10

func (that *Server) pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) leaderboardHandler(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "leaderboardHandler")

	limit := defaultLeaderboardLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		limit = parsed
	}

	ratings, err := that.ratings.Leaderboard(req.Context(), limit)
	if err != nil {
		log.Error("failed to get leaderboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(w).Encode(ratings); err != nil {
		log.Error("failed to encode leaderboard", "error", err)
	}
}
