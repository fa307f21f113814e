package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

type ratingService interface {
	Leaderboard(ctx context.Context, limit int) ([]entity.PlayerRating, error)
}

type Server struct {
	logger  *slog.Logger
	ratings ratingService
}

func New(logger *slog.Logger, ratings ratingService) *Server {
	return &Server{
		logger:  logger,
		ratings: ratings,
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", that.pingHandler)
	mux.HandleFunc("/leaderboard", that.leaderboardHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
