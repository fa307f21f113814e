package coordinator

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-social/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

// fakeConn records everything sent to it.
type fakeConn struct {
	mu      sync.Mutex
	sent    []Message
	sendErr error
}

func (that *fakeConn) Send(msg Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.sendErr != nil {
		return that.sendErr
	}

	that.sent = append(that.sent, msg)

	return nil
}

func (that *fakeConn) messages(action string) []Message {
	that.mu.Lock()
	defer that.mu.Unlock()

	var matched []Message
	for _, msg := range that.sent {
		if msg.Action == action {
			matched = append(matched, msg)
		}
	}

	return matched
}

func (that *fakeConn) reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.sent = nil
}

func decodePayload[T any](t *testing.T, msg Message) T {
	t.Helper()

	var payload T
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))

	return payload
}

// stubUsers accepts any credentials unless told otherwise.
type stubUsers struct {
	taken   map[string]bool
	badPass bool
}

func (that *stubUsers) Create(_ context.Context, username, _ string) error {
	if that.taken[username] {
		return apperror.ErrUsernameTaken
	}

	return nil
}

func (that *stubUsers) GetByCredentials(_ context.Context, username, _ string) (*entity.User, error) {
	if that.badPass {
		return nil, apperror.ErrInvalidCredentials
	}

	return &entity.User{Username: username, Elo: entity.DefaultElo}, nil
}

// stubFriends keeps the friend graph in memory.
type stubFriends struct {
	mu    sync.Mutex
	graph map[string][]string
	added [][2]string
}

func newStubFriends(pairs ...[2]string) *stubFriends {
	friends := &stubFriends{graph: make(map[string][]string)}
	for _, pair := range pairs {
		friends.graph[pair[0]] = append(friends.graph[pair[0]], pair[1])
		friends.graph[pair[1]] = append(friends.graph[pair[1]], pair[0])
	}

	return friends
}

func (that *stubFriends) AddFriend(_ context.Context, userA, userB string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.added = append(that.added, [2]string{userA, userB})
	that.graph[userA] = append(that.graph[userA], userB)
	that.graph[userB] = append(that.graph[userB], userA)

	return nil
}

func (that *stubFriends) GetFriends(_ context.Context, username string) ([]string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.graph[username], nil
}

// stubRatings records applied results.
type stubRatings struct {
	mu      sync.Mutex
	results [][2]string
}

func (that *stubRatings) ApplyResult(_ context.Context, winner, loser string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.results = append(that.results, [2]string{winner, loser})

	return nil
}

var errStubFailure = errors.New("stub failure")
