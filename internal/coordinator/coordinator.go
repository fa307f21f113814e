package coordinator

import (
	"context"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-social/internal/entity"
)

type userStore interface {
	Create(ctx context.Context, username, password string) error
	GetByCredentials(ctx context.Context, username, password string) (*entity.User, error)
}

type friendStore interface {
	AddFriend(ctx context.Context, userA, userB string) error
	GetFriends(ctx context.Context, username string) ([]string, error)
}

type ratingService interface {
	ApplyResult(ctx context.Context, winner, loser string) error
}

// Coordinator binds connections to identities, tracks presence, pairs
// connections into rooms and relays turn state between the two peers of a
// room. It owns all session state for the lifetime of the process.
type Coordinator struct {
	logger *slog.Logger

	users   userStore
	friends friendStore
	ratings ratingService

	directory *Directory
	presence  *Presence
	rooms     *Rooms
	gateway   *Gateway

	turnSeconds int
}

func New(logger *slog.Logger, users userStore, friends friendStore, ratings ratingService, turnSeconds int) *Coordinator {
	return &Coordinator{
		logger: logger,

		users:   users,
		friends: friends,
		ratings: ratings,

		directory: NewDirectory(),
		presence:  NewPresence(),
		rooms:     NewRooms(),
		gateway:   NewGateway(logger),

		turnSeconds: turnSeconds,
	}
}

// Connect registers a freshly accepted connection with the gateway.
// Until it authenticates it can only receive global broadcasts.
func (that *Coordinator) Connect(conn Conn) {
	that.gateway.Register(conn)
}

// notifyFriends pushes the user's current presence to every friend that has
// a live connection.
func (that *Coordinator) notifyFriends(ctx context.Context, username string) {
	log := that.logger.With("method", "notifyFriends")

	friends, err := that.friends.GetFriends(ctx, username)
	if err != nil {
		log.Error("failed to get friends", "username", username, "error", err)
		return
	}

	payload := FriendStatusPayload{
		Friend:   username,
		IsOnline: that.presence.IsOnline(username),
	}

	for _, friend := range friends {
		conn, ok := that.directory.ConnByUsername(friend)
		if !ok {
			continue
		}

		that.gateway.Direct(conn, NewMessage(ActionFriendStatusUpdate, payload))
	}
}

// sendFriendList sends the user their current friend list, if they are online.
func (that *Coordinator) sendFriendList(ctx context.Context, username string) {
	log := that.logger.With("method", "sendFriendList")

	conn, ok := that.directory.ConnByUsername(username)
	if !ok {
		return
	}

	friends, err := that.friends.GetFriends(ctx, username)
	if err != nil {
		log.Error("failed to get friends", "username", username, "error", err)
		return
	}

	that.gateway.Direct(conn, NewMessage(ActionFriendListUpdate, FriendListPayload{Friends: friends}))
}
