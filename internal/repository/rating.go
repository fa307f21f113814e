package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

const leaderboardKey = "leaderboard"

type RatingRepository interface {
	Set(ctx context.Context, username string, elo int) error
	Get(ctx context.Context, username string) (int, error)
	Top(ctx context.Context, limit int) ([]entity.PlayerRating, error)
}

type dbRating struct {
	client *redis.Client
}

func NewRatingRepository(client *redis.Client) RatingRepository {
	return &dbRating{
		client: client,
	}
}

func (that *dbRating) Set(ctx context.Context, username string, elo int) error {
	err := that.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(elo),
		Member: username,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to set rating: %w", err)
	}

	return nil
}

func (that *dbRating) Get(ctx context.Context, username string) (int, error) {
	score, err := that.client.ZScore(ctx, leaderboardKey, username).Result()

	if errors.Is(err, redis.Nil) {
		return 0, apperror.ErrUserNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get rating: %w", err)
	}

	return int(score), nil
}

func (that *dbRating) Top(ctx context.Context, limit int) ([]entity.PlayerRating, error) {
	members, err := that.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	ratings := make([]entity.PlayerRating, 0, len(members))
	for _, member := range members {
		username, ok := member.Member.(string)
		if !ok {
			continue
		}

		ratings = append(ratings, entity.PlayerRating{
			Username: username,
			Elo:      int(member.Score),
		})
	}

	return ratings, nil
}
