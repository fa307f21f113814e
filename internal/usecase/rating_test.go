package usecase

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

type fakeEloRepo struct {
	elos map[string]int
}

func (that *fakeEloRepo) GetElo(_ context.Context, username string) (int, error) {
	elo, ok := that.elos[username]
	if !ok {
		return 0, apperror.ErrUserNotFound
	}

	return elo, nil
}

func (that *fakeEloRepo) UpdateElo(_ context.Context, username string, elo int) error {
	that.elos[username] = elo
	return nil
}

type fakeRatingRepo struct {
	board map[string]int
}

func (that *fakeRatingRepo) Set(_ context.Context, username string, elo int) error {
	that.board[username] = elo
	return nil
}

func (that *fakeRatingRepo) Top(_ context.Context, _ int) ([]entity.PlayerRating, error) {
	return nil, nil
}

func newTestRatingManager(elos map[string]int) (*RatingManager, *fakeEloRepo, *fakeRatingRepo) {
	users := &fakeEloRepo{elos: elos}
	ratings := &fakeRatingRepo{board: make(map[string]int)}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	return NewRatingManager(logger, users, ratings), users, ratings
}

func TestRatingManager_ApplyResult(t *testing.T) {
	ctx := context.Background()

	t.Run("Equal ratings exchange half the K factor", func(t *testing.T) {
		// Given: two evenly rated players
		manager, users, board := newTestRatingManager(map[string]int{"alice": 1000, "bob": 1000})

		// When: alice beats bob
		require.NoError(t, manager.ApplyResult(ctx, "alice", "bob"))

		// Then: sixteen points move from loser to winner, mirrored to the board
		assert.Equal(t, 1016, users.elos["alice"])
		assert.Equal(t, 984, users.elos["bob"])
		assert.Equal(t, 1016, board.board["alice"])
		assert.Equal(t, 984, board.board["bob"])
	})

	t.Run("Upsets move more points than expected wins", func(t *testing.T) {
		manager, users, _ := newTestRatingManager(map[string]int{"alice": 1000, "bob": 1200})

		// When: the underdog wins
		require.NoError(t, manager.ApplyResult(ctx, "alice", "bob"))

		upsetDelta := users.elos["alice"] - 1000

		// And: the favorite wins a fresh matchup
		manager2, users2, _ := newTestRatingManager(map[string]int{"alice": 1000, "bob": 1200})
		require.NoError(t, manager2.ApplyResult(ctx, "bob", "alice"))

		expectedDelta := users2.elos["bob"] - 1200

		// Then: the upset pays out more
		assert.Greater(t, upsetDelta, expectedDelta)
		assert.Positive(t, expectedDelta)
	})

	t.Run("Unrated players start from the default rating", func(t *testing.T) {
		// Given: a winner with no stored rating yet
		manager, users, _ := newTestRatingManager(map[string]int{"bob": 1000})

		// When: they win
		require.NoError(t, manager.ApplyResult(ctx, "alice", "bob"))

		// Then: the exchange is computed from the default
		assert.Equal(t, entity.DefaultElo+16, users.elos["alice"])
		assert.Equal(t, 984, users.elos["bob"])
	})
}
