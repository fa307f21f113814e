package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

// eloK is the exchange factor applied to every resolved game.
const eloK = 32

type eloRepo interface {
	GetElo(ctx context.Context, username string) (int, error)
	UpdateElo(ctx context.Context, username string, elo int) error
}

type ratingRepo interface {
	Set(ctx context.Context, username string, elo int) error
	Top(ctx context.Context, limit int) ([]entity.PlayerRating, error)
}

type RatingManager struct {
	logger *slog.Logger

	users   eloRepo
	ratings ratingRepo
}

func NewRatingManager(logger *slog.Logger, users eloRepo, ratings ratingRepo) *RatingManager {
	return &RatingManager{
		logger: logger,

		users:   users,
		ratings: ratings,
	}
}

// ApplyResult moves Elo points from loser to winner and mirrors both
// ratings into the leaderboard.
func (that *RatingManager) ApplyResult(ctx context.Context, winner, loser string) error {
	winnerElo, err := that.getEloOrDefault(ctx, winner)
	if err != nil {
		return fmt.Errorf("failed to get winner elo: %w", err)
	}

	loserElo, err := that.getEloOrDefault(ctx, loser)
	if err != nil {
		return fmt.Errorf("failed to get loser elo: %w", err)
	}

	expected := 1 / (1 + math.Pow(10, float64(loserElo-winnerElo)/400))
	delta := int(math.Round(eloK * (1 - expected)))

	if err = that.updateElo(ctx, winner, winnerElo+delta); err != nil {
		return fmt.Errorf("failed to update winner elo: %w", err)
	}

	if err = that.updateElo(ctx, loser, loserElo-delta); err != nil {
		return fmt.Errorf("failed to update loser elo: %w", err)
	}

	that.logger.Info("applied game result", "winner", winner, "loser", loser, "delta", delta)

	return nil
}

func (that *RatingManager) Leaderboard(ctx context.Context, limit int) ([]entity.PlayerRating, error) {
	ratings, err := that.ratings.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	return ratings, nil
}

func (that *RatingManager) getEloOrDefault(ctx context.Context, username string) (int, error) {
	elo, err := that.users.GetElo(ctx, username)
	if errors.Is(err, apperror.ErrUserNotFound) {
		return entity.DefaultElo, nil
	}
	if err != nil {
		return 0, err
	}

	return elo, nil
}

func (that *RatingManager) updateElo(ctx context.Context, username string, elo int) error {
	if err := that.users.UpdateElo(ctx, username, elo); err != nil {
		return err
	}

	if err := that.ratings.Set(ctx, username, elo); err != nil {
		return err
	}

	return nil
}
