package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

type stubRatings struct {
	top      []entity.PlayerRating
	gotLimit int
	err      error
}

func (that *stubRatings) Leaderboard(_ context.Context, limit int) ([]entity.PlayerRating, error) {
	that.gotLimit = limit
	return that.top, that.err
}

func newTestRestServer(ratings *stubRatings) *Server {
	return New(slog.New(slog.NewTextHandler(os.Stdout, nil)), ratings)
}

func TestPingHandler(t *testing.T) {
	server := newTestRestServer(&stubRatings{})

	rec := httptest.NewRecorder()
	server.pingHandler(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestLeaderboardHandler(t *testing.T) {
	t.Run("Returns ratings as JSON with the default limit", func(t *testing.T) {
		ratings := &stubRatings{top: []entity.PlayerRating{
			{Username: "carol", Elo: 1200},
			{Username: "alice", Elo: 1100},
		}}
		server := newTestRestServer(ratings)

		rec := httptest.NewRecorder()
		server.leaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, defaultLeaderboardLimit, ratings.gotLimit)

		var got []entity.PlayerRating
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, ratings.top, got)
	})

	t.Run("Honors an explicit limit", func(t *testing.T) {
		ratings := &stubRatings{}
		server := newTestRestServer(ratings)

		rec := httptest.NewRecorder()
		server.leaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/leaderboard?limit=3", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 3, ratings.gotLimit)
	})

	t.Run("Rejects a malformed limit", func(t *testing.T) {
		server := newTestRestServer(&stubRatings{})

		rec := httptest.NewRecorder()
		server.leaderboardHandler(rec, httptest.NewRequest(http.MethodGet, "/leaderboard?limit=abc", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
